// Package rosters gestiona las listas dinámicas de una solicitud (autores,
// asesores, jurados, coautores): altas y bajas con pisos y techos, mensajes
// transitorios por fila y validación por fila, incluida la regla condicional
// del identificador de coautores.
package rosters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/udlperu/repositorio_mid/models"
)

var (
	// ErrListaEnMinimo impide eliminar por debajo del piso de la lista.
	ErrListaEnMinimo = errors.New("la lista está en su mínimo de filas")
	// ErrListaEnMaximo impide agregar por encima del techo de la lista.
	ErrListaEnMaximo = errors.New("la lista está en su máximo de filas")
	// ErrFilaInexistente indica un id de fila desconocido.
	ErrFilaInexistente = errors.New("fila inexistente")
)

// Fila es una entrada de lista con identificador estable. Las filas se
// direccionan por id y no por índice para que una eliminación no corra los
// mensajes de las filas vecinas.
type Fila[T any] struct {
	ID    string `json:"id"`
	Valor T      `json:"valor"`
}

// Lista es una colección acotada de filas con mensajes transitorios por fila
// agrupados en canales independientes (p. ej. "error", "aviso", "info").
type Lista[T any] struct {
	minimo   int
	maximo   int
	filas    []Fila[T]
	mensajes map[string]map[string]string
}

// NewLista crea una lista con los límites dados.
func NewLista[T any](minimo, maximo int) *Lista[T] {
	return &Lista[T]{
		minimo:   minimo,
		maximo:   maximo,
		mensajes: make(map[string]map[string]string),
	}
}

// Agregar añade una fila al final y devuelve su id estable.
func (l *Lista[T]) Agregar(valor T) (string, error) {
	if len(l.filas) >= l.maximo {
		return "", ErrListaEnMaximo
	}
	id := uuid.NewString()
	l.filas = append(l.filas, Fila[T]{ID: id, Valor: valor})
	return id, nil
}

// Eliminar quita la fila por id. Respetar el piso y borrar los mensajes de
// la fila en todos los canales evita que índices corridos corrompan filas
// que no tienen relación con la eliminada.
func (l *Lista[T]) Eliminar(id string) error {
	if len(l.filas) <= l.minimo {
		return ErrListaEnMinimo
	}
	for i, f := range l.filas {
		if f.ID == id {
			l.filas = append(l.filas[:i], l.filas[i+1:]...)
			for _, canal := range l.mensajes {
				delete(canal, id)
			}
			return nil
		}
	}
	return ErrFilaInexistente
}

// Reemplazar sustituye el valor de la fila conservando su id.
func (l *Lista[T]) Reemplazar(id string, valor T) error {
	for i, f := range l.filas {
		if f.ID == id {
			l.filas[i].Valor = valor
			return nil
		}
	}
	return ErrFilaInexistente
}

// PonerMensaje registra un mensaje transitorio para la fila en el canal dado.
func (l *Lista[T]) PonerMensaje(canal, id, mensaje string) {
	if l.mensajes[canal] == nil {
		l.mensajes[canal] = make(map[string]string)
	}
	l.mensajes[canal][id] = mensaje
}

// Mensaje lee el mensaje transitorio de la fila en el canal dado.
func (l *Lista[T]) Mensaje(canal, id string) string {
	return l.mensajes[canal][id]
}

// Filas devuelve una copia del contenido en orden.
func (l *Lista[T]) Filas() []Fila[T] {
	out := make([]Fila[T], len(l.filas))
	copy(out, l.filas)
	return out
}

// Len devuelve la cantidad de filas.
func (l *Lista[T]) Len() int {
	return len(l.filas)
}

// Minimo devuelve el piso de la lista.
func (l *Lista[T]) Minimo() int {
	return l.minimo
}

// Editor agrupa las cuatro listas de una solicitud.
type Editor struct {
	Autores   *Lista[models.Autor]
	Asesores  *Lista[models.Asesor]
	Jurados   *Lista[models.Jurado]
	Coautores *Lista[models.Coautor]

	validar *validator.Validate
}

// NewEditor construye un editor con los límites del modelo.
func NewEditor() *Editor {
	return &Editor{
		Autores:   NewLista[models.Autor](models.MinAutores, models.MaxAutores),
		Asesores:  NewLista[models.Asesor](models.MinAsesores, models.MaxAsesores),
		Jurados:   NewLista[models.Jurado](models.MinJurados, models.MaxJurados),
		Coautores: NewLista[models.Coautor](0, models.MaxCoautores),
		validar:   validator.New(),
	}
}

// DesdeSolicitud arma un editor a partir del payload recibido, verificando
// pisos y techos de cada lista.
func DesdeSolicitud(autores []models.Autor, asesores []models.Asesor, jurados []models.Jurado, coautores []models.Coautor) (*Editor, error) {
	if len(autores) < models.MinAutores || len(autores) > models.MaxAutores {
		return nil, fmt.Errorf("autores: se requieren entre %d y %d", models.MinAutores, models.MaxAutores)
	}
	if len(asesores) < models.MinAsesores || len(asesores) > models.MaxAsesores {
		return nil, fmt.Errorf("asesores: se requieren entre %d y %d", models.MinAsesores, models.MaxAsesores)
	}
	if len(jurados) < models.MinJurados || len(jurados) > models.MaxJurados {
		return nil, fmt.Errorf("jurados: se requieren entre %d y %d (presidencia y dos miembros como mínimo)", models.MinJurados, models.MaxJurados)
	}
	if len(coautores) > models.MaxCoautores {
		return nil, fmt.Errorf("coautores: máximo %d", models.MaxCoautores)
	}

	e := NewEditor()
	for _, a := range autores {
		if _, err := e.Autores.Agregar(a); err != nil {
			return nil, err
		}
	}
	for _, a := range asesores {
		if _, err := e.Asesores.Agregar(a); err != nil {
			return nil, err
		}
	}
	for _, j := range jurados {
		if _, err := e.Jurados.Agregar(j); err != nil {
			return nil, err
		}
	}
	for _, c := range coautores {
		if _, err := e.Coautores.Agregar(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ErrorFila es un error de validación anclado a una fila concreta.
type ErrorFila struct {
	Lista   string `json:"lista"`
	FilaID  string `json:"fila_id"`
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

// Validar recorre todas las filas y devuelve los errores encontrados.
func (e *Editor) Validar() []ErrorFila {
	var errores []ErrorFila
	for _, f := range e.Autores.Filas() {
		errores = append(errores, erroresDeStruct(e.validar, "autores", f.ID, f.Valor)...)
	}
	for _, f := range e.Asesores.Filas() {
		errores = append(errores, erroresDeStruct(e.validar, "asesores", f.ID, f.Valor)...)
	}
	for _, f := range e.Jurados.Filas() {
		errores = append(errores, erroresDeStruct(e.validar, "jurados", f.ID, f.Valor)...)
	}
	for _, f := range e.Coautores.Filas() {
		errores = append(errores, erroresDeStruct(e.validar, "coautores", f.ID, f.Valor)...)
		errores = append(errores, validarCoautorCondicional(f.ID, f.Valor)...)
	}
	return errores
}

// validarCoautorCondicional aplica la regla del identificador según rol:
// estudiante interno lleva código de 6 dígitos, docente interno lleva DNI de
// 8 dígitos, externo (o sin rol) no lleva ninguno y exige nombres manuales.
func validarCoautorCondicional(filaID string, c models.Coautor) []ErrorFila {
	var errores []ErrorFila
	rol := strings.TrimSpace(c.Rol)
	switch rol {
	case models.CoautorEstudianteInterno:
		if strings.TrimSpace(c.Codigo) == "" {
			errores = append(errores, ErrorFila{
				Lista: "coautores", FilaID: filaID, Campo: "codigo",
				Mensaje: "el coautor estudiante interno requiere código de 6 dígitos",
			})
		}
		if strings.TrimSpace(c.DNI) != "" {
			errores = append(errores, ErrorFila{
				Lista: "coautores", FilaID: filaID, Campo: "dni",
				Mensaje: "el coautor estudiante interno se identifica por código, no por DNI",
			})
		}
	case models.CoautorDocenteInterno:
		if strings.TrimSpace(c.DNI) == "" {
			errores = append(errores, ErrorFila{
				Lista: "coautores", FilaID: filaID, Campo: "dni",
				Mensaje: "el coautor docente interno requiere DNI de 8 dígitos",
			})
		}
		if strings.TrimSpace(c.Codigo) != "" {
			errores = append(errores, ErrorFila{
				Lista: "coautores", FilaID: filaID, Campo: "codigo",
				Mensaje: "el coautor docente interno se identifica por DNI, no por código",
			})
		}
	default:
		// Externo o sin rol: sin identificador, los nombres van manuales.
		if strings.TrimSpace(c.Codigo) != "" || strings.TrimSpace(c.DNI) != "" {
			errores = append(errores, ErrorFila{
				Lista: "coautores", FilaID: filaID, Campo: "rol",
				Mensaje: "el coautor externo no lleva identificador; ingrese los nombres manualmente",
			})
		}
	}
	return errores
}

func erroresDeStruct(v *validator.Validate, lista, filaID string, valor interface{}) []ErrorFila {
	err := v.Struct(valor)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorFila{{Lista: lista, FilaID: filaID, Mensaje: err.Error()}}
	}
	errores := make([]ErrorFila, 0, len(verrs))
	for _, fe := range verrs {
		errores = append(errores, ErrorFila{
			Lista:   lista,
			FilaID:  filaID,
			Campo:   strings.ToLower(fe.Field()),
			Mensaje: mensajeDeTag(fe),
		})
	}
	return errores
}

func mensajeDeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "email":
		return "correo inválido"
	case "len":
		return fmt.Sprintf("debe tener exactamente %s caracteres", fe.Param())
	case "numeric":
		return "solo dígitos"
	default:
		return "valor inválido"
	}
}
