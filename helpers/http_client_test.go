package helpers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverRutaDocumento(t *testing.T) {
	base := "https://repositorio.udlperu.edu.pe/files"

	assert.Equal(t, base+"/capturas/1.png", ResolverRutaDocumento(base, "capturas/1.png"))
	assert.Equal(t, base+"/capturas/1.png", ResolverRutaDocumento(base+"/", "/capturas/1.png"))
	assert.Equal(t, "https://cdn.example.com/x.png", ResolverRutaDocumento(base, "https://cdn.example.com/x.png"))
	assert.Equal(t, "http://cdn.example.com/x.png", ResolverRutaDocumento(base, "http://cdn.example.com/x.png"))
	assert.Equal(t, "", ResolverRutaDocumento(base, "   "))
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("http://a"))
	assert.True(t, IsHTTPURL("https://a"))
	assert.False(t, IsHTTPURL("ftp://a"))
	assert.False(t, IsHTTPURL("capturas/1.png"))
}

func TestIsHTTPError(t *testing.T) {
	err := &HTTPError{Status: http.StatusNotFound, Body: "no existe"}
	assert.True(t, IsHTTPError(err, http.StatusNotFound))
	assert.False(t, IsHTTPError(err, http.StatusBadRequest))
	assert.False(t, IsHTTPError(assert.AnError, http.StatusNotFound))
}

func TestCrudWrapperDualCase(t *testing.T) {
	minuscula := []byte(`{"success": true, "status": 200, "data": {"id": 1}}`)
	var out map[string]interface{}
	require.NoError(t, decodificar(minuscula, &out, true))
	assert.Equal(t, float64(1), out["id"])

	mayuscula := []byte(`{"Success": true, "Status": 200, "Data": {"id": 2}}`)
	out = nil
	require.NoError(t, decodificar(mayuscula, &out, true))
	assert.Equal(t, float64(2), out["id"])
}

func TestCrudWrapperRechazoDeNegocio(t *testing.T) {
	body := []byte(`{"success": false, "message": "el código expiró"}`)
	var out map[string]interface{}
	err := decodificar(body, &out, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "el código expiró")

	// El mensaje del backend llega intacto al usuario: AsAppError debe
	// conservarlo en lugar del fallback genérico del controlador.
	app := AsAppError(err, "error guardando la revisión")
	assert.Equal(t, http.StatusBadRequest, app.Status)
	assert.Equal(t, "el código expiró", app.Message)
}

func TestAppError(t *testing.T) {
	base := assert.AnError
	app := NewAppError(http.StatusBadRequest, "cuerpo inválido", base)
	assert.Equal(t, http.StatusBadRequest, app.Status)
	assert.ErrorIs(t, app, base)

	// AsAppError conserva un AppError existente.
	mismo := AsAppError(app, "otro mensaje")
	assert.Equal(t, app.Status, mismo.Status)
	assert.Equal(t, app.Message, mismo.Message)

	// Un error plano se envuelve como 500 con el mensaje por defecto.
	generico := AsAppError(base, "falló la operación")
	assert.Equal(t, http.StatusInternalServerError, generico.Status)
	assert.Equal(t, "falló la operación", generico.Message)
}
