package dto

import (
	"github.com/udlperu/repositorio_mid/internal/historial"
	"github.com/udlperu/repositorio_mid/models"
)

// SolicitudDetalleDTO es el detalle listo para la vista: estados
// normalizados y fechas ya formateadas en hora de Lima.
type SolicitudDetalleDTO struct {
	Solicitud     models.Solicitud     `json:"solicitud"`
	FechaCreacion string               `json:"fecha_creacion_fmt"`
	Historial     []HistorialItemDTO   `json:"historial"`
	Autores       []models.Autor       `json:"autores"`
	Asesores      []models.Asesor      `json:"asesores"`
	Jurados       []models.Jurado      `json:"jurados"`
	Coautores     []models.Coautor     `json:"coautores"`
}

// HistorialItemDTO es un evento del historial con sus estados normalizados
// y la fecha en ambas presentaciones.
type HistorialItemDTO struct {
	Evento          models.HistorialEvento `json:"evento"`
	EstadoAnterior  models.Estado          `json:"estado_anterior"`
	EstadoNuevo     models.Estado          `json:"estado_nuevo"`
	EstadoNombre    string                 `json:"estado_nombre"`
	FechaLima       string                 `json:"fecha_lima"`
	FechaSinZona    string                 `json:"fecha_sin_zona"`
	EsGeneral       bool                   `json:"es_general"`
	ArchivoHistoria string                 `json:"archivo_historia,omitempty"`
}

// ObservacionesDTO agrupa el resultado de la correlación para un evento
// general observado.
type ObservacionesDTO struct {
	Fecha      string                          `json:"fecha"`
	Documentos []historial.DocumentoObservado  `json:"documentos"`
}

// ConsultaPublicaDTO es la vista reducida para el seguimiento del
// solicitante: estado, título y enlace si ya fue publicado.
type ConsultaPublicaDTO struct {
	Id                int64         `json:"id"`
	TituloProyecto    string        `json:"titulo_proyecto"`
	Estado            models.Estado `json:"estado"`
	EstadoNombre      string        `json:"estado_nombre"`
	FechaCreacion     string        `json:"fecha_creacion_fmt"`
	EnlacePublicacion string        `json:"enlace_publicacion,omitempty"`
	EnlaceDisponible  bool          `json:"enlace_disponible"`
}
