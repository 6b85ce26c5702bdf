package lookup

import (
	"strings"

	"github.com/udlperu/repositorio_mid/models"
)

// Longitudes exactas de los identificadores soportados.
const (
	LongitudDNI    = 8
	LongitudCodigo = 6
)

// LimpiarIdentificador descarta todo lo que no sea dígito y trunca a la
// longitud esperada del campo.
func LimpiarIdentificador(raw string, longitud int) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == longitud {
				break
			}
		}
	}
	return b.String()
}

// Los servicios de personas responden con nombres de campo distintos según
// la fuente. La extracción se centraliza aquí como una lista ordenada de
// accesos alternativos por campo lógico, en lugar de cadenas de ?? regadas
// por los llamadores.
var (
	aliasNombres     = []string{"nombres", "nombre", "name", "first_name", "firstName"}
	aliasApellidos   = []string{"apellidos", "apellido", "last_name", "lastName"}
	aliasNombreCompl = []string{"full_name", "fullName", "nombre_completo"}
)

// ExtraerPersona normaliza un registro crudo del backend a Persona. Si solo
// viene el nombre completo, se parte heurísticamente: los últimos 1-2 tokens
// son apellidos y el resto nombres, salvo que haya un único token, que se
// toma entero como nombres.
func ExtraerPersona(raw map[string]interface{}) models.Persona {
	p := models.Persona{
		Nombres:   primerCampo(raw, aliasNombres),
		Apellidos: primerCampo(raw, aliasApellidos),
	}
	if p.Nombres != "" || p.Apellidos != "" {
		return p
	}

	completo := primerCampo(raw, aliasNombreCompl)
	if completo == "" {
		return p
	}
	return PartirNombreCompleto(completo)
}

// PartirNombreCompleto aplica la heurística de separación nombres/apellidos.
func PartirNombreCompleto(completo string) models.Persona {
	tokens := strings.Fields(strings.TrimSpace(completo))
	switch len(tokens) {
	case 0:
		return models.Persona{}
	case 1:
		return models.Persona{Nombres: tokens[0]}
	case 2:
		return models.Persona{Nombres: tokens[0], Apellidos: tokens[1]}
	default:
		corte := len(tokens) - 2
		return models.Persona{
			Nombres:   strings.Join(tokens[:corte], " "),
			Apellidos: strings.Join(tokens[corte:], " "),
		}
	}
}

func primerCampo(raw map[string]interface{}, alias []string) string {
	for _, k := range alias {
		if v, ok := raw[k]; ok {
			if s, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}
