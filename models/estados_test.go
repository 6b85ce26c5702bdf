package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizarEstadoConjuntoCerrado(t *testing.T) {
	casos := map[string]Estado{
		"pendiente":           EstadoPendiente,
		"en_revision":         EstadoEnRevision,
		"aprobado":            EstadoAprobado,
		"observado":           EstadoObservado,
		"requiere_correccion": EstadoRequiereCorreccion,
		"publicado":           EstadoPublicado,
	}
	for raw, want := range casos {
		assert.Equal(t, want, NormalizarEstado(raw))
	}
}

func TestNormalizarEstadoAliasLegado(t *testing.T) {
	assert.Equal(t, EstadoObservado, NormalizarEstado("rechazado"))
	assert.Equal(t, EstadoObservado, NormalizarEstado("RECHAZADO"))
}

func TestNormalizarEstadoToleraGrafia(t *testing.T) {
	assert.Equal(t, EstadoAprobado, NormalizarEstado("  Aprobado  "))
	assert.Equal(t, EstadoPublicado, NormalizarEstado("PUBLICADO"))
}

func TestNormalizarEstadoDesconocido(t *testing.T) {
	for _, raw := range []string{"", "archivado", "???", "aprobado_parcial"} {
		assert.Equal(t, EstadoDesconocido, NormalizarEstado(raw), "raw=%q", raw)
	}
}

func TestEsValido(t *testing.T) {
	assert.True(t, EstadoAprobado.EsValido())
	assert.False(t, EstadoDesconocido.EsValido())
	assert.False(t, Estado("archivado").EsValido())
}

func TestNombreVisible(t *testing.T) {
	assert.Equal(t, "En revisión", EstadoEnRevision.Nombre())
	assert.Equal(t, "Requiere corrección", EstadoRequiereCorreccion.Nombre())
	assert.Equal(t, "Desconocido", Estado("archivado").Nombre())
}
