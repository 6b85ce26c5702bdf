// Package debounce implementa la coalescencia de operaciones por slot lógico.
// Cada campo de formulario (fila de coautor, caja de búsqueda) posee un slot
// identificado por una clave estable; programar una operación sobre un slot
// cancela primero el timer pendiente y el contexto en vuelo de ese slot, de
// modo que el resultado de una operación reemplazada nunca pueda pisar el
// estado escrito por una posterior.
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

// IntervaloDefecto es el retardo estándar para búsquedas de persona/código.
const IntervaloDefecto = 450 * time.Millisecond

var errCompletada = errors.New("generación completada")

type slot struct {
	timer  *time.Timer
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// Arena mantiene un slot por clave lógica. Las claves deben ser estables
// (identificador de fila, no índice del arreglo) para sobrevivir remociones.
// Un slot se libera al terminar su función, al ser cancelado o al ser
// reemplazado; la arena no retiene entradas de claves que ya corrieron.
type Arena struct {
	mu        sync.Mutex
	intervalo time.Duration
	slots     map[string]*slot
}

// NewArena crea una arena con el intervalo dado; <= 0 usa IntervaloDefecto.
func NewArena(intervalo time.Duration) *Arena {
	if intervalo <= 0 {
		intervalo = IntervaloDefecto
	}
	return &Arena{
		intervalo: intervalo,
		slots:     make(map[string]*slot),
	}
}

// Programar agenda fn para ejecutarse tras el intervalo de la arena. Si el
// slot ya tenía una operación pendiente o en vuelo, se cancela antes de
// agendar. Devuelve el contexto de esta generación: se cancela cuando una
// programación posterior la reemplaza o cuando fn terminó de correr; use
// Completada para distinguir ambos finales.
func (a *Arena) Programar(clave string, fn func(context.Context)) context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()

	if prev, ok := a.slots[clave]; ok {
		prev.timer.Stop()
		prev.cancel(nil)
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	s := &slot{ctx: ctx, cancel: cancel}
	s.timer = time.AfterFunc(a.intervalo, func() {
		defer a.retirar(clave, s)
		if ctx.Err() != nil {
			return
		}
		fn(ctx)
	})
	a.slots[clave] = s
	return ctx
}

// retirar libera el slot cuando su generación terminó de correr. El mapa se
// limpia primero y luego se cancela el contexto con causa de completitud; un
// reemplazo que ya había cancelado conserva su causa original.
func (a *Arena) retirar(clave string, s *slot) {
	a.mu.Lock()
	if actual, ok := a.slots[clave]; ok && actual == s {
		delete(a.slots, clave)
	}
	a.mu.Unlock()
	s.cancel(errCompletada)
}

// Completada informa si el contexto de generación terminó porque su función
// corrió hasta el final, y no porque otra programación la reemplazara.
func Completada(gen context.Context) bool {
	return errors.Is(context.Cause(gen), errCompletada)
}

// Cancelar descarta la operación pendiente o en vuelo del slot, si existe.
func (a *Arena) Cancelar(clave string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.slots[clave]; ok {
		s.timer.Stop()
		s.cancel(nil)
		delete(a.slots, clave)
	}
}

// CancelarGeneracion descarta el slot solo cuando su generación vigente es la
// del contexto dado; una generación que ya fue reemplazada no puede tumbar a
// su sucesora.
func (a *Arena) CancelarGeneracion(clave string, gen context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.slots[clave]
	if !ok || s.ctx != gen {
		return
	}
	s.timer.Stop()
	s.cancel(nil)
	delete(a.slots, clave)
}

// Intervalo expone el retardo configurado.
func (a *Arena) Intervalo() time.Duration {
	return a.intervalo
}
