package models

// EscuelaProfesional es una entrada del catálogo institucional de escuelas.
type EscuelaProfesional struct {
	Id       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Codigo   string `json:"codigo"`
	Facultad string `json:"facultad,omitempty"`
	Activa   bool   `json:"activa"`
}
