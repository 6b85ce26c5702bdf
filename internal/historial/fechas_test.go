package historial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizarFechaSeparadorEspacio(t *testing.T) {
	got := NormalizarFecha("2025-03-12 14:03:27")
	require.False(t, got.IsZero())
	assert.Equal(t, time.Date(2025, 3, 12, 14, 3, 27, 0, time.UTC), got)
}

func TestNormalizarFechaTruncaFraccion(t *testing.T) {
	got := NormalizarFecha("2025-03-12 14:03:27.123456789")
	require.False(t, got.IsZero())
	assert.Equal(t, 123000000, got.Nanosecond())
}

func TestNormalizarFechaRespetaZonaExplicita(t *testing.T) {
	got := NormalizarFecha("2025-03-12T14:03:27-05:00")
	require.False(t, got.IsZero())
	assert.Equal(t, time.Date(2025, 3, 12, 19, 3, 27, 0, time.UTC), got.UTC())
}

func TestNormalizarFechaNaiveAsumeUTC(t *testing.T) {
	naive := NormalizarFecha("2025-03-12T14:03:27")
	conZeta := NormalizarFecha("2025-03-12T14:03:27Z")
	assert.True(t, naive.Equal(conZeta))
}

func TestNormalizarFechaIlegibleDevuelveCero(t *testing.T) {
	for _, raw := range []string{"", "   ", "no-es-fecha", "12/03/2025", "2025-13-40 99:99:99"} {
		assert.True(t, NormalizarFecha(raw).IsZero(), "raw=%q", raw)
	}
}

func TestFormatearFechaLimaConvierteDesdeUTC(t *testing.T) {
	// 14:03 UTC = 09:03 en Lima.
	assert.Equal(t, "12 de marzo de 2025, 09:03 AM", FormatearFechaLima("2025-03-12 14:03:27"))
}

func TestFormatearFechaLimaCruzaMedianoche(t *testing.T) {
	// 03:10 UTC del día 12 = 22:10 del día 11 en Lima.
	assert.Equal(t, "11 de marzo de 2025, 10:10 PM", FormatearFechaLima("2025-03-12T03:10:00"))
}

func TestFormatearFechaLimaSinFecha(t *testing.T) {
	assert.Equal(t, "Sin fecha", FormatearFechaLima("garbage"))
}

func TestFormatearFechaSinZonaNoInventaZona(t *testing.T) {
	// La cadena naive se presenta tal cual fue emitida, sin correr a Lima.
	assert.Equal(t, "12 de marzo de 2025, 02:03 PM", FormatearFechaSinZona("2025-03-12 14:03:27"))
}

func TestFormatearFechaSinZonaRespetaZonaExplicita(t *testing.T) {
	assert.Equal(t, "12 de marzo de 2025, 02:03 PM", FormatearFechaSinZona("2025-03-12T14:03:27-05:00"))
}

func TestFormatearMediodiaYMedianoche(t *testing.T) {
	assert.Equal(t, "12 de marzo de 2025, 12:00 PM", FormatearFechaSinZona("2025-03-12T12:00:00"))
	assert.Equal(t, "12 de marzo de 2025, 12:00 AM", FormatearFechaSinZona("2025-03-12T00:00:00"))
}
