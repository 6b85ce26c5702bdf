package historial

import (
	"regexp"
	"strings"

	"github.com/udlperu/repositorio_mid/models"
)

// El campo de comentario puede venir prefijado con una etiqueta generada por
// el backend ("tesis_pdf - observado: ...", "observado: ...") que no debe
// mostrarse al usuario.

var (
	rePrefijoEtiqueta = regexp.MustCompile(`(?i)^\w+(?:_\w+)* - (?:observado|rechazado|requiere_correccion):\s*`)
	rePrefijoTipoDoc  = regexp.MustCompile(`(?i)^(?:tesis_pdf|hoja_autorizacion|constancia_empastado|constancia_originalidad) - `)
	rePrefijoEstado   = regexp.MustCompile(`(?i)^(?:observado|rechazado|requiere_correccion):\s*`)
)

// ExtraerObservacion selecciona el texto de observación de un evento y lo
// limpia. Precedencia (gana el primero no vacío): comentario libre, campo
// legado de razón de rechazo, campo observación/observaciones, cadena vacía.
func ExtraerObservacion(ev models.HistorialEvento) string {
	texto := primeraNoVacia(ev.Comentario, ev.RazonRechazo, ev.Observacion, ev.Observaciones)
	return LimpiarPrefijo(texto)
}

// LimpiarPrefijo elimina las etiquetas mecánicas al inicio del texto. Es
// idempotente: aplicarla sobre un texto ya limpio lo devuelve igual.
func LimpiarPrefijo(texto string) string {
	s := strings.TrimSpace(texto)
	s = strings.TrimSpace(rePrefijoEtiqueta.ReplaceAllString(s, ""))
	s = strings.TrimSpace(rePrefijoTipoDoc.ReplaceAllString(s, ""))
	s = strings.TrimSpace(rePrefijoEstado.ReplaceAllString(s, ""))
	return s
}

func primeraNoVacia(valores ...string) string {
	for _, v := range valores {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
