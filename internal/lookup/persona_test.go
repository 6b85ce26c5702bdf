package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udlperu/repositorio_mid/models"
)

func TestLimpiarIdentificador(t *testing.T) {
	casos := []struct {
		raw      string
		longitud int
		want     string
	}{
		{"40712345", LongitudDNI, "40712345"},
		{" 40-712.345 ", LongitudDNI, "40712345"},
		{"407123456789", LongitudDNI, "40712345"},
		{"abc", LongitudDNI, ""},
		{"2012a34", LongitudCodigo, "201234"},
		{"", LongitudCodigo, ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, LimpiarIdentificador(c.raw, c.longitud), "raw=%q", c.raw)
	}
}

func TestExtraerPersonaCamposDirectos(t *testing.T) {
	raw := map[string]interface{}{
		"nombres":   "María Fernanda",
		"apellidos": "Ruiz Campos",
	}
	p := ExtraerPersona(raw)
	assert.Equal(t, models.Persona{Nombres: "María Fernanda", Apellidos: "Ruiz Campos"}, p)
}

func TestExtraerPersonaAliasEnIngles(t *testing.T) {
	raw := map[string]interface{}{
		"first_name": "Jorge",
		"last_name":  "Salas",
	}
	p := ExtraerPersona(raw)
	assert.Equal(t, models.Persona{Nombres: "Jorge", Apellidos: "Salas"}, p)
}

func TestExtraerPersonaPrioridadDeAlias(t *testing.T) {
	// "nombres" gana sobre "name" aunque ambos estén presentes.
	raw := map[string]interface{}{
		"nombres": "Lucía",
		"name":    "otro",
	}
	assert.Equal(t, "Lucía", ExtraerPersona(raw).Nombres)
}

func TestExtraerPersonaDesdeNombreCompleto(t *testing.T) {
	raw := map[string]interface{}{"full_name": "Ana Lucía Torres Vega"}
	p := ExtraerPersona(raw)
	assert.Equal(t, "Ana Lucía", p.Nombres)
	assert.Equal(t, "Torres Vega", p.Apellidos)
}

func TestExtraerPersonaIgnoraValoresNoString(t *testing.T) {
	raw := map[string]interface{}{
		"nombres":   42,
		"full_name": "Carlos Díaz",
	}
	p := ExtraerPersona(raw)
	assert.Equal(t, "Carlos", p.Nombres)
	assert.Equal(t, "Díaz", p.Apellidos)
}

func TestPartirNombreCompleto(t *testing.T) {
	casos := []struct {
		completo  string
		nombres   string
		apellidos string
	}{
		{"Madonna", "Madonna", ""},
		{"Jorge Salas", "Jorge", "Salas"},
		{"Ana Torres Vega", "Ana", "Torres Vega"},
		{"María del Carmen Quispe Huamán", "María del Carmen", "Quispe Huamán"},
		{"   ", "", ""},
	}
	for _, c := range casos {
		p := PartirNombreCompleto(c.completo)
		assert.Equal(t, c.nombres, p.Nombres, "completo=%q", c.completo)
		assert.Equal(t, c.apellidos, p.Apellidos, "completo=%q", c.completo)
	}
}
