package models

// Límites de cada lista dinámica de la solicitud.
const (
	MinAutores   = 1
	MaxAutores   = 2
	MinAsesores  = 1
	MaxAsesores  = 2
	MinJurados   = 3 // presidencia + dos miembros
	MaxJurados   = 4
	MaxCoautores = 5
)

// Roles de coautor. El identificador condicional depende del rol:
// estudiante interno usa código de 6 dígitos, docente interno usa DNI de 8,
// externo no lleva identificador y exige nombres manuales.
const (
	CoautorEstudianteInterno = "estudiante_interno"
	CoautorDocenteInterno    = "docente_interno"
	CoautorExterno           = "externo"
)

// Autor es una fila de la lista de autores de la solicitud.
type Autor struct {
	DNI       string `json:"dni" validate:"required,len=8,numeric"`
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
	Correo    string `json:"correo" validate:"required,email"`
	ORCID     string `json:"orcid,omitempty" validate:"omitempty,len=19"`
}

// Asesor es una fila de la lista de asesores.
type Asesor struct {
	DNI       string `json:"dni" validate:"required,len=8,numeric"`
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
	ORCID     string `json:"orcid,omitempty" validate:"omitempty,len=19"`
}

// Jurado es una fila de la lista de jurados; la primera fila es la presidencia.
type Jurado struct {
	DNI       string `json:"dni" validate:"required,len=8,numeric"`
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
	Cargo     string `json:"cargo,omitempty"`
}

// Coautor es una fila de la lista de coautores. Codigo y DNI son
// condicionales según Rol; la validación vive en internal/rosters.
type Coautor struct {
	Rol       string `json:"rol,omitempty"`
	Codigo    string `json:"codigo,omitempty" validate:"omitempty,len=6,numeric"`
	DNI       string `json:"dni,omitempty" validate:"omitempty,len=8,numeric"`
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
}
