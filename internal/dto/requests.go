package dto

import (
	"github.com/udlperu/repositorio_mid/internal/revision"
	"github.com/udlperu/repositorio_mid/models"
)

// RevisionBody es el cuerpo del guardado de revisión de una solicitud.
type RevisionBody struct {
	Decisiones []revision.Decision `json:"decisiones"`
}

// SolicitudCrear es el payload de radicación de una solicitud nueva.
type SolicitudCrear struct {
	Nombres            string           `json:"nombres" validate:"required"`
	Apellidos          string           `json:"apellidos" validate:"required"`
	Correo             string           `json:"correo" validate:"required,email"`
	EscuelaProfesional string           `json:"escuela_profesional" validate:"required"`
	TituloProyecto     string           `json:"titulo_proyecto" validate:"required"`
	Autores            []models.Autor   `json:"autores"`
	Asesores           []models.Asesor  `json:"asesores"`
	Jurados            []models.Jurado  `json:"jurados"`
	Coautores          []models.Coautor `json:"coautores"`
}

// RecuperacionSolicitar inicia el flujo de recuperación (paso 1).
type RecuperacionSolicitar struct {
	Correo string `json:"correo"`
}

// RecuperacionVerificar valida el código recibido (paso 2).
type RecuperacionVerificar struct {
	Token  string `json:"token"`
	Codigo string `json:"codigo"`
}

// RecuperacionRestablecer fija la clave nueva (paso 3).
type RecuperacionRestablecer struct {
	Token        string `json:"token"`
	Clave        string `json:"clave"`
	Confirmacion string `json:"confirmacion"`
}

// RecuperacionVolver retrocede del paso 2 al 1.
type RecuperacionVolver struct {
	Token string `json:"token"`
}

// RecuperacionEstado es la respuesta común del flujo: paso vigente y
// errores de campo pendientes.
type RecuperacionEstado struct {
	Token   string            `json:"token,omitempty"`
	Paso    int               `json:"paso"`
	Correo  string            `json:"correo,omitempty"`
	Errores map[string]string `json:"errores,omitempty"`
	Mensaje string            `json:"mensaje,omitempty"`
}
