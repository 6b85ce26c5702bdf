package models

import "strings"

// Estado representa el estado de una solicitud o de un documento adjunto.
// El conjunto es cerrado; cualquier valor no reconocido se normaliza a
// EstadoDesconocido en la frontera de ingestión.
type Estado string

const (
	EstadoPendiente          Estado = "pendiente"
	EstadoEnRevision         Estado = "en_revision"
	EstadoAprobado           Estado = "aprobado"
	EstadoObservado          Estado = "observado"
	EstadoRequiereCorreccion Estado = "requiere_correccion"
	EstadoPublicado          Estado = "publicado"
	EstadoDesconocido        Estado = "desconocido"

	// Alias legado: los registros antiguos del backend usan "rechazado"
	// con la misma semántica que "observado".
	estadoRechazadoLegado = "rechazado"
)

// NormalizarEstado lleva cualquier cadena de estado del backend al conjunto
// cerrado. El código interno nunca debe ramificar sobre la grafía legada.
func NormalizarEstado(raw string) Estado {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(EstadoPendiente):
		return EstadoPendiente
	case string(EstadoEnRevision):
		return EstadoEnRevision
	case string(EstadoAprobado):
		return EstadoAprobado
	case string(EstadoObservado), estadoRechazadoLegado:
		return EstadoObservado
	case string(EstadoRequiereCorreccion):
		return EstadoRequiereCorreccion
	case string(EstadoPublicado):
		return EstadoPublicado
	default:
		return EstadoDesconocido
	}
}

// EsValido indica si el estado pertenece al conjunto cerrado (excluye desconocido).
func (e Estado) EsValido() bool {
	switch e {
	case EstadoPendiente, EstadoEnRevision, EstadoAprobado, EstadoObservado,
		EstadoRequiereCorreccion, EstadoPublicado:
		return true
	}
	return false
}

// Nombre devuelve la etiqueta visible para el usuario.
func (e Estado) Nombre() string {
	switch e {
	case EstadoPendiente:
		return "Pendiente"
	case EstadoEnRevision:
		return "En revisión"
	case EstadoAprobado:
		return "Aprobado"
	case EstadoObservado:
		return "Observado"
	case EstadoRequiereCorreccion:
		return "Requiere corrección"
	case EstadoPublicado:
		return "Publicado"
	default:
		return "Desconocido"
	}
}

// Tipos de solicitud soportados.
const (
	TipoSolicitudEstudiante = "estudiante"
	TipoSolicitudDocente    = "docente"
)

// Tipos de documento requeridos en una solicitud.
const (
	DocTesisPDF               = "tesis_pdf"
	DocHojaAutorizacion       = "hoja_autorizacion"
	DocConstanciaEmpastado    = "constancia_empastado"
	DocConstanciaOriginalidad = "constancia_originalidad"
)
