package revision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udlperu/repositorio_mid/models"
)

func TestValidarSinDecisiones(t *testing.T) {
	var verr *ErrorValidacion

	err := Validar(nil)
	require.ErrorAs(t, err, &verr)

	// Documentos que siguen pendientes no cuentan como decisión.
	err = Validar([]Decision{
		{DocumentoId: 301, Estado: models.EstadoPendiente},
		{DocumentoId: 302, Estado: models.EstadoPendiente},
	})
	assert.ErrorAs(t, err, &verr)
}

func TestValidarObservadoSinTexto(t *testing.T) {
	err := Validar([]Decision{
		{DocumentoId: 301, Estado: models.EstadoAprobado},
		{DocumentoId: 302, Estado: models.EstadoObservado, Observacion: "   "},
	})
	var verr *ErrorValidacion
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Mensaje, "302")
}

func TestValidarGrafiaLegadaCuentaComoObservado(t *testing.T) {
	// Los registros antiguos llegan como "rechazado"; deben contar como
	// decisión y exigir texto de observación igual que "observado".
	decisiones := []Decision{
		{DocumentoId: 301, Estado: "rechazado", Observacion: "falta firma"},
	}
	require.NoError(t, Validar(decisiones))
	assert.Equal(t, models.EstadoObservado, decisiones[0].Estado)

	err := Validar([]Decision{
		{DocumentoId: 301, Estado: models.EstadoAprobado},
		{DocumentoId: 302, Estado: "rechazado"},
	})
	var verr *ErrorValidacion
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Mensaje, "302")
}

func TestValidarEstadoNoReconocido(t *testing.T) {
	err := Validar([]Decision{
		{DocumentoId: 301, Estado: "aprovado"},
	})
	var verr *ErrorValidacion
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Mensaje, "301")
	assert.Contains(t, verr.Mensaje, "aprovado")
}

func TestValidarEstadoVacioEsPendiente(t *testing.T) {
	// Una fila sin estado es una fila sin decisión, no un estado inválido.
	decisiones := []Decision{
		{DocumentoId: 301, Estado: ""},
		{DocumentoId: 302, Estado: models.EstadoAprobado},
	}
	require.NoError(t, Validar(decisiones))
	assert.Equal(t, models.EstadoPendiente, decisiones[0].Estado)
}

func TestValidarDecisionesCompletas(t *testing.T) {
	err := Validar([]Decision{
		{DocumentoId: 301, Estado: models.EstadoAprobado},
		{DocumentoId: 302, Estado: models.EstadoObservado, Observacion: "sin anexos"},
	})
	assert.NoError(t, err)
}

func TestAgregadoTodosAprobados(t *testing.T) {
	decisiones := []Decision{
		{DocumentoId: 301, Estado: models.EstadoAprobado},
		{DocumentoId: 302, Estado: models.EstadoAprobado},
	}
	assert.Equal(t, models.EstadoAprobado, CalcularAgregado(decisiones, 2))
}

func TestAgregadoObservadoGanaSobreAprobados(t *testing.T) {
	decisiones := []Decision{
		{DocumentoId: 301, Estado: models.EstadoAprobado},
		{DocumentoId: 302, Estado: models.EstadoObservado, Observacion: "x"},
		{DocumentoId: 303, Estado: models.EstadoAprobado},
	}
	assert.Equal(t, models.EstadoObservado, CalcularAgregado(decisiones, 3))
}

func TestAgregadoParcialmenteAprobado(t *testing.T) {
	decisiones := []Decision{
		{DocumentoId: 301, Estado: models.EstadoAprobado},
		{DocumentoId: 302, Estado: models.EstadoPendiente},
	}
	assert.Equal(t, models.EstadoEnRevision, CalcularAgregado(decisiones, 2))
}

func TestAgregadoPublicadoLegado(t *testing.T) {
	decisiones := []Decision{
		{DocumentoId: 301, Estado: models.EstadoPublicado},
		{DocumentoId: 302, Estado: models.EstadoPendiente},
	}
	assert.Equal(t, models.EstadoPublicado, CalcularAgregado(decisiones, 2))
}

func TestAgregadoSinDecisionesEsPendiente(t *testing.T) {
	assert.Equal(t, models.EstadoPendiente, CalcularAgregado(nil, 4))
	assert.Equal(t, models.EstadoPendiente, CalcularAgregado([]Decision{
		{DocumentoId: 301, Estado: models.EstadoPendiente},
	}, 1))
}

func TestAgregadoAprobadosIncompletosNoAprueban(t *testing.T) {
	// Tres documentos pero solo dos decisiones aprobadas: no alcanza.
	decisiones := []Decision{
		{DocumentoId: 301, Estado: models.EstadoAprobado},
		{DocumentoId: 302, Estado: models.EstadoAprobado},
	}
	assert.Equal(t, models.EstadoEnRevision, CalcularAgregado(decisiones, 3))
}

func TestAgregadoGrafiaLegada(t *testing.T) {
	decisiones := []Decision{
		{DocumentoId: 301, Estado: "rechazado", Observacion: "falta firma"},
	}
	assert.Equal(t, models.EstadoObservado, CalcularAgregado(decisiones, 1))
}

func TestDecididasFiltraPendientesYNormaliza(t *testing.T) {
	decisiones := []Decision{
		{DocumentoId: 301, Estado: models.EstadoAprobado},
		{DocumentoId: 302, Estado: models.EstadoPendiente},
		{DocumentoId: 303, Estado: ""},
		{DocumentoId: 304, Estado: "rechazado", Observacion: "falta firma"},
	}
	decididas := Decididas(decisiones)
	require.Len(t, decididas, 2)
	assert.Equal(t, int64(301), decididas[0].DocumentoId)
	assert.Equal(t, int64(304), decididas[1].DocumentoId)
	assert.Equal(t, models.EstadoObservado, decididas[1].Estado)
}

func TestResumenCompleto(t *testing.T) {
	r := Resumen{Total: 3, Exitosos: 3}
	assert.True(t, r.Completo())
	assert.Equal(t, "3 de 3 documentos guardados", r.Mensaje())
}

func TestResumenParcial(t *testing.T) {
	r := Resumen{Total: 3, Exitosos: 2, Fallidos: []int64{302}}
	assert.False(t, r.Completo())
	assert.Equal(t, "2 de 3 documentos guardados; el estado agregado no fue actualizado", r.Mensaje())
}
