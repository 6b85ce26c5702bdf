// Package recuperacion modela el flujo de recuperación de credenciales en
// tres pasos: solicitar código, verificar código y restablecer la clave.
// El avance es lineal y sin saltos; el único retroceso permitido es del paso
// de verificación al inicial.
package recuperacion

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Paso identifica el estado del flujo.
type Paso int

const (
	PasoSolicitarCodigo  Paso = 1
	PasoVerificarCodigo  Paso = 2
	PasoRestablecerClave Paso = 3
)

const (
	// LongitudCodigo es la longitud exacta del código de verificación.
	LongitudCodigo = 6
	// LongitudMinimaClave es el mínimo aceptado para la clave nueva.
	LongitudMinimaClave = 6
)

// Validación ligera de correo, suficiente para cortar errores de tipeo antes
// de tocar el backend.
var reCorreo = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrorCampo es un error de validación anclado a un campo del formulario.
// Nunca viaja al backend; se corrige editando el campo.
type ErrorCampo struct {
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

func (e *ErrorCampo) Error() string {
	return e.Campo + ": " + e.Mensaje
}

// ErrorTransicion indica un intento de avance fuera de orden.
type ErrorTransicion struct {
	Desde Paso
	Hacia Paso
}

func (e *ErrorTransicion) Error() string {
	return "transición de paso no permitida"
}

// Flujo es el estado en memoria de una recuperación en curso.
type Flujo struct {
	Token  string
	Paso   Paso
	Correo string
	// Codigo es el código ya verificado en el paso 2; el paso 3 lo reenvía
	// junto con la clave nueva.
	Codigo string

	// errores de campo vigentes y el valor que los produjo; un valor nuevo
	// distinto descarta el error antes de cualquier revalidación.
	errores         map[string]string
	valoresConError map[string]string

	creado time.Time
}

// RegistrarError ancla un error al campo junto al valor que lo causó.
func (f *Flujo) RegistrarError(campo, valor, mensaje string) *ErrorCampo {
	if f.errores == nil {
		f.errores = make(map[string]string)
		f.valoresConError = make(map[string]string)
	}
	f.errores[campo] = mensaje
	f.valoresConError[campo] = valor
	return &ErrorCampo{Campo: campo, Mensaje: mensaje}
}

// DespejarSiEditado elimina el error del campo cuando el valor cambió
// respecto del que lo produjo. Un error viejo nunca sobrevive a la edición.
func (f *Flujo) DespejarSiEditado(campo, valor string) {
	if f.errores == nil {
		return
	}
	if previo, ok := f.valoresConError[campo]; ok && previo != valor {
		delete(f.errores, campo)
		delete(f.valoresConError, campo)
	}
}

// Errores devuelve los errores de campo vigentes.
func (f *Flujo) Errores() map[string]string {
	out := make(map[string]string, len(f.errores))
	for k, v := range f.errores {
		out[k] = v
	}
	return out
}

// Avanzar mueve el flujo hacia delante: 1->2 o 2->3, nada más.
func (f *Flujo) Avanzar(hacia Paso) error {
	if (f.Paso == PasoSolicitarCodigo && hacia == PasoVerificarCodigo) ||
		(f.Paso == PasoVerificarCodigo && hacia == PasoRestablecerClave) {
		f.Paso = hacia
		return nil
	}
	return &ErrorTransicion{Desde: f.Paso, Hacia: hacia}
}

// Volver retrocede de la verificación al paso inicial limpiando todo error.
func (f *Flujo) Volver() error {
	if f.Paso != PasoVerificarCodigo {
		return &ErrorTransicion{Desde: f.Paso, Hacia: PasoSolicitarCodigo}
	}
	f.Paso = PasoSolicitarCodigo
	f.Codigo = ""
	f.errores = nil
	f.valoresConError = nil
	return nil
}

// Rebotar devuelve el flujo al paso inicial cuando el código expiró entre el
// paso 2 y el 3. Conserva el correo; el código y la clave quedan descartados.
func (f *Flujo) Rebotar() {
	f.Paso = PasoSolicitarCodigo
	f.Codigo = ""
	f.errores = nil
	f.valoresConError = nil
}

// Requiere verifica que el flujo esté en el paso esperado.
func (f *Flujo) Requiere(paso Paso) error {
	if f.Paso != paso {
		return &ErrorTransicion{Desde: f.Paso, Hacia: paso}
	}
	return nil
}

// ValidarCorreo aplica la validación local del paso 1.
func ValidarCorreo(correo string) string {
	trimmed := strings.TrimSpace(correo)
	if trimmed == "" {
		return "el correo es obligatorio"
	}
	if !reCorreo.MatchString(trimmed) {
		return "el correo no tiene un formato válido"
	}
	return ""
}

// ValidarCodigo aplica la validación local del paso 2.
func ValidarCodigo(codigo string) string {
	trimmed := strings.TrimSpace(codigo)
	if trimmed == "" {
		return "el código es obligatorio"
	}
	if len(trimmed) != LongitudCodigo {
		return "el código debe tener 6 caracteres"
	}
	return ""
}

// ValidarClave aplica la validación local del paso 3 sobre clave y
// confirmación. Devuelve campo y mensaje, o cadenas vacías si todo está bien.
func ValidarClave(clave, confirmacion string) (string, string) {
	if clave == "" {
		return "clave", "la clave es obligatoria"
	}
	if len(clave) < LongitudMinimaClave {
		return "clave", "la clave debe tener al menos 6 caracteres"
	}
	if confirmacion == "" {
		return "confirmacion", "la confirmación es obligatoria"
	}
	if clave != confirmacion {
		return "confirmacion", "la confirmación no coincide con la clave"
	}
	return "", ""
}

// Almacen guarda los flujos en curso. El estado vive solo en memoria: una
// recuperación abandonada expira por TTL.
type Almacen struct {
	mu     sync.Mutex
	flujos map[string]*Flujo
	ttl    time.Duration
	ahora  func() time.Time
}

// NewAlmacen crea el almacén; ttl <= 0 usa 15 minutos.
func NewAlmacen(ttl time.Duration) *Almacen {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Almacen{
		flujos: make(map[string]*Flujo),
		ttl:    ttl,
		ahora:  time.Now,
	}
}

// Crear inicia un flujo en el paso 1 para el correo dado.
func (a *Almacen) Crear(correo string) *Flujo {
	a.mu.Lock()
	defer a.mu.Unlock()
	f := &Flujo{
		Token:  uuid.NewString(),
		Paso:   PasoSolicitarCodigo,
		Correo: strings.TrimSpace(correo),
		creado: a.ahora(),
	}
	a.flujos[f.Token] = f
	a.purgar()
	return f
}

// Obtener devuelve el flujo del token si existe y no expiró.
func (a *Almacen) Obtener(token string) (*Flujo, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.flujos[token]
	if !ok {
		return nil, false
	}
	if a.ahora().Sub(f.creado) > a.ttl {
		delete(a.flujos, token)
		return nil, false
	}
	return f, true
}

// Eliminar descarta el flujo, típicamente al completar el paso 3.
func (a *Almacen) Eliminar(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.flujos, token)
}

// purgar limpia flujos expirados; se llama con el lock tomado.
func (a *Almacen) purgar() {
	limite := a.ahora().Add(-a.ttl)
	for token, f := range a.flujos {
		if f.creado.Before(limite) {
			delete(a.flujos, token)
		}
	}
}
