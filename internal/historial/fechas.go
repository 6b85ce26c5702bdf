package historial

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// El backend emite timestamps heterogéneos: "YYYY-MM-DD HH:mm:ss.ffffff" con
// espacio, ISO-8601 con o sin zona, y fracciones de segundo con más dígitos
// de los que interesan. NormalizarFecha los lleva a un instante canónico.

var (
	reFraccion = regexp.MustCompile(`\.(\d+)`)
	reZona     = regexp.MustCompile(`(Z|[+-]\d{2}:\d{2})$`)
)

// NormalizarFecha interpreta un timestamp del backend y devuelve el instante
// correspondiente. Los timestamps sin marcador de zona se asumen UTC: el
// backend los emite "naive" pero en UTC, y sin este supuesto el cliente los
// mostraría corridos a hora local. Si la cadena no es interpretable devuelve
// el tiempo cero (centinela "sin fecha"), nunca entra en pánico.
func NormalizarFecha(raw string) time.Time {
	s := canonizar(raw)
	if s == "" {
		return time.Time{}
	}
	if !reZona.MatchString(s) {
		s += "Z"
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// canonizar aplica los pasos compartidos: recorte, separador espacio -> T y
// truncado de la fracción de segundos a milisegundos.
func canonizar(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if idx := strings.Index(s, " "); idx == 10 {
		s = s[:idx] + "T" + s[idx+1:]
	}
	s = reFraccion.ReplaceAllStringFunc(s, func(m string) string {
		digits := m[1:]
		if len(digits) > 3 {
			digits = digits[:3]
		}
		return "." + digits
	})
	return s
}

var mesesLargos = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// zonaLima es la zona civil institucional (America/Lima, UTC-5, sin DST).
// FixedZone evita depender de la base tzdata del sistema.
var zonaLima = time.FixedZone("-05", -5*60*60)

// FormatearFechaLima presenta un timestamp del backend en hora civil de Lima,
// con mes largo y reloj de 12 horas. Asume UTC cuando no hay zona explícita.
func FormatearFechaLima(raw string) string {
	t := NormalizarFecha(raw)
	if t.IsZero() {
		return "Sin fecha"
	}
	return formatearLargo(t.In(zonaLima))
}

// FormatearFechaSinZona es la variante estricta usada por la vista de
// historial con rutas: no inventa un marcador de zona. Si la cadena ya es un
// instante ISO completo se respeta su zona; si viene "naive" se presenta tal
// cual fue emitida, sin conversión.
//
// Se mantiene separada de FormatearFechaLima a propósito; ver DESIGN.md.
func FormatearFechaSinZona(raw string) string {
	s := canonizar(raw)
	if s == "" {
		return "Sin fecha"
	}
	if reZona.MatchString(s) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return "Sin fecha"
		}
		return formatearLargo(t)
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return formatearLargo(t)
		}
	}
	return "Sin fecha"
}

func formatearLargo(t time.Time) string {
	hora := t.Hour() % 12
	if hora == 0 {
		hora = 12
	}
	meridiano := "AM"
	if t.Hour() >= 12 {
		meridiano = "PM"
	}
	return fmt.Sprintf("%02d de %s de %d, %02d:%02d %s",
		t.Day(), mesesLargos[t.Month()-1], t.Year(), hora, t.Minute(), meridiano)
}
