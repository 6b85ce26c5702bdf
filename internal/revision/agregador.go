// Package revision calcula el estado agregado de una solicitud a partir de
// las decisiones humanas por documento y gobierna el guardado best-effort.
package revision

import (
	"fmt"
	"strings"

	"github.com/udlperu/repositorio_mid/models"
)

// Decision es la última decisión humana sobre un documento.
type Decision struct {
	DocumentoId int64         `json:"documento_id"`
	Estado      models.Estado `json:"estado"`
	Observacion string        `json:"observacion,omitempty"`
	Imagenes    []string      `json:"imagenes,omitempty"`
}

// ErrorValidacion describe por qué la revisión no puede enviarse.
type ErrorValidacion struct {
	Mensaje string
}

func (e *ErrorValidacion) Error() string {
	return e.Mensaje
}

// normalizarDecision lleva el estado crudo de una decisión al conjunto
// cerrado; la cadena vacía cuenta como pendiente (sin decisión). Los registros
// con la grafía legada "rechazado" quedan como observado.
func normalizarDecision(raw models.Estado) models.Estado {
	if strings.TrimSpace(string(raw)) == "" {
		return models.EstadoPendiente
	}
	return models.NormalizarEstado(string(raw))
}

// Validar normaliza los estados recibidos y rechaza la revisión antes de
// tocar el backend cuando hay un estado no reconocido, cuando no hay ninguna
// decisión tomada, o cuando algún documento observado carece del texto de
// observación que lo acompaña. Las decisiones quedan normalizadas en sitio.
func Validar(decisiones []Decision) error {
	decididas := 0
	for i := range decisiones {
		estado := normalizarDecision(decisiones[i].Estado)
		if estado == models.EstadoDesconocido {
			return &ErrorValidacion{
				Mensaje: fmt.Sprintf("el documento %d tiene un estado no reconocido: %q", decisiones[i].DocumentoId, decisiones[i].Estado),
			}
		}
		decisiones[i].Estado = estado
		if estado == models.EstadoPendiente {
			continue
		}
		decididas++
		if estado == models.EstadoObservado && strings.TrimSpace(decisiones[i].Observacion) == "" {
			return &ErrorValidacion{
				Mensaje: fmt.Sprintf("el documento %d está observado y no tiene texto de observación", decisiones[i].DocumentoId),
			}
		}
	}
	if decididas == 0 {
		return &ErrorValidacion{Mensaje: "no hay ninguna decisión registrada para los documentos"}
	}
	return nil
}

// Decididas devuelve solo las decisiones efectivamente tomadas, ya
// normalizadas; las filas pendientes o sin estado no deben enviarse al
// backend ni contarse en el resumen.
func Decididas(decisiones []Decision) []Decision {
	out := make([]Decision, 0, len(decisiones))
	for _, d := range decisiones {
		d.Estado = normalizarDecision(d.Estado)
		if d.Estado == models.EstadoPendiente || !d.Estado.EsValido() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// CalcularAgregado deriva el estado de la solicitud a partir de las
// decisiones por documento. Las reglas se evalúan en orden y gana la primera
// que aplica:
//
//  1. todos los documentos aprobados            -> aprobado
//  2. al menos uno observado                    -> observado
//  3. al menos uno aprobado (ninguno observado) -> en_revision
//  4. alguno publicado (ruta legada)            -> publicado
//  5. en otro caso                              -> pendiente
func CalcularAgregado(decisiones []Decision, totalDocumentos int) models.Estado {
	var aprobados, observados, publicados int
	for _, d := range decisiones {
		switch normalizarDecision(d.Estado) {
		case models.EstadoAprobado:
			aprobados++
		case models.EstadoObservado:
			observados++
		case models.EstadoPublicado:
			publicados++
		}
	}

	switch {
	case totalDocumentos > 0 && aprobados == totalDocumentos:
		return models.EstadoAprobado
	case observados > 0:
		return models.EstadoObservado
	case aprobados > 0:
		return models.EstadoEnRevision
	case publicados > 0:
		return models.EstadoPublicado
	default:
		return models.EstadoPendiente
	}
}

// Resumen contabiliza el resultado del guardado secuencial por documento.
// El guardado no es atómico: cada documento se envía por separado y el
// agregado solo se actualiza cuando todos los envíos individuales
// tuvieron éxito.
type Resumen struct {
	Total    int      `json:"total"`
	Exitosos int      `json:"exitosos"`
	Fallidos []int64  `json:"fallidos,omitempty"`
	Errores  []string `json:"errores,omitempty"`
}

// Completo indica si todos los envíos individuales tuvieron éxito.
func (r Resumen) Completo() bool {
	return r.Exitosos == r.Total
}

// Mensaje devuelve el texto visible del resultado parcial o total.
func (r Resumen) Mensaje() string {
	if r.Completo() {
		return fmt.Sprintf("%d de %d documentos guardados", r.Exitosos, r.Total)
	}
	return fmt.Sprintf("%d de %d documentos guardados; el estado agregado no fue actualizado", r.Exitosos, r.Total)
}
