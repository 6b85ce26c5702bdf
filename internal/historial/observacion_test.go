package historial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udlperu/repositorio_mid/models"
)

func TestLimpiarPrefijoEtiquetaCompleta(t *testing.T) {
	assert.Equal(t, "La carátula no corresponde al formato vigente",
		LimpiarPrefijo("tesis_pdf - observado: La carátula no corresponde al formato vigente"))
}

func TestLimpiarPrefijoEstadoLegado(t *testing.T) {
	assert.Equal(t, "Falta la firma del asesor",
		LimpiarPrefijo("rechazado: Falta la firma del asesor"))
}

func TestLimpiarPrefijoTipoDocumento(t *testing.T) {
	assert.Equal(t, "ilegible en la página 3",
		LimpiarPrefijo("hoja_autorizacion - ilegible en la página 3"))
}

func TestLimpiarPrefijoIgnoraMayusculas(t *testing.T) {
	assert.Equal(t, "texto",
		LimpiarPrefijo("TESIS_PDF - OBSERVADO: texto"))
}

func TestLimpiarPrefijoIdempotente(t *testing.T) {
	casos := []string{
		"tesis_pdf - observado: La carátula no corresponde",
		"observado: sin anexos",
		"constancia_empastado - requiere_correccion: lomo dañado",
		"texto sin prefijo alguno",
		"",
	}
	for _, raw := range casos {
		una := LimpiarPrefijo(raw)
		dos := LimpiarPrefijo(una)
		assert.Equal(t, una, dos, "raw=%q", raw)
	}
}

func TestLimpiarPrefijoNoTocaTextoInterior(t *testing.T) {
	// La etiqueta solo se elimina al inicio; una mención en medio se respeta.
	texto := "El documento fue observado: revisar sección 2"
	assert.Equal(t, texto, LimpiarPrefijo(texto))
}

func TestExtraerObservacionPrecedencia(t *testing.T) {
	ev := models.HistorialEvento{
		Comentario:   "comentario libre",
		RazonRechazo: "razón legada",
		Observacion:  "observación",
	}
	assert.Equal(t, "comentario libre", ExtraerObservacion(ev))

	ev.Comentario = ""
	assert.Equal(t, "razón legada", ExtraerObservacion(ev))

	ev.RazonRechazo = ""
	assert.Equal(t, "observación", ExtraerObservacion(ev))

	ev.Observacion = ""
	ev.Observaciones = "plural legado"
	assert.Equal(t, "plural legado", ExtraerObservacion(ev))

	ev.Observaciones = ""
	assert.Equal(t, "", ExtraerObservacion(ev))
}

func TestExtraerObservacionLimpiaPrefijo(t *testing.T) {
	ev := models.HistorialEvento{Comentario: "tesis_pdf - observado: sin índice"}
	assert.Equal(t, "sin índice", ExtraerObservacion(ev))
}
