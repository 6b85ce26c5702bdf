package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagenEvidenciaDesdeObjeto(t *testing.T) {
	var img ImagenEvidencia
	require.NoError(t, json.Unmarshal([]byte(`{"image_path":"capturas/1.png","file_name":"captura.png"}`), &img))
	assert.Equal(t, "capturas/1.png", img.Ruta)
	assert.Equal(t, "captura.png", img.Nombre)
}

func TestImagenEvidenciaDesdeCadena(t *testing.T) {
	var img ImagenEvidencia
	require.NoError(t, json.Unmarshal([]byte(`"capturas/1.png"`), &img))
	assert.Equal(t, "capturas/1.png", img.Ruta)
	assert.Empty(t, img.Nombre)
}

func TestImagenEvidenciaAliasAlternativos(t *testing.T) {
	var img ImagenEvidencia
	require.NoError(t, json.Unmarshal([]byte(`{"url":"https://cdn/x.png","name":"x.png"}`), &img))
	assert.Equal(t, "https://cdn/x.png", img.Ruta)
	assert.Equal(t, "x.png", img.Nombre)

	require.NoError(t, json.Unmarshal([]byte(`{"path":"y.png"}`), &img))
	assert.Equal(t, "y.png", img.Ruta)
}

func TestImagenEvidenciaDentroDeEvento(t *testing.T) {
	raw := `{
		"fecha_cambio": "2025-03-12 14:03:27",
		"estado_nuevo": "observado",
		"documento_id": 301,
		"imagenes": ["a.png", {"image_path": "b.png"}]
	}`
	var ev HistorialEvento
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))
	require.Len(t, ev.Imagenes, 2)
	assert.Equal(t, "a.png", ev.Imagenes[0].Ruta)
	assert.Equal(t, "b.png", ev.Imagenes[1].Ruta)
}

func TestEsGeneral(t *testing.T) {
	assert.True(t, HistorialEvento{}.EsGeneral())

	id := int64(301)
	assert.False(t, HistorialEvento{DocumentoId: &id}.EsGeneral())
}
