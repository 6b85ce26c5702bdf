package lookup

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/udlperu/repositorio_mid/internal/debounce"
	"github.com/udlperu/repositorio_mid/models"
)

var (
	// ErrIdentificadorIncompleto indica que el valor limpio no alcanza la
	// longitud exacta requerida; no se consulta el upstream.
	ErrIdentificadorIncompleto = errors.New("identificador incompleto")
	// ErrNoEncontrado es el 404 funcional: la persona no existe en la fuente
	// y el llamador degrada a llenado manual.
	ErrNoEncontrado = errors.New("persona no encontrada")
	// ErrReemplazada indica que una búsqueda posterior sobre el mismo slot
	// reemplazó a esta; se descarta en silencio, no es un error de negocio.
	ErrReemplazada = errors.New("búsqueda reemplazada")
)

// FetchFn consulta una fuente de personas y devuelve el registro crudo.
// Un registro nil sin error significa no-encontrado.
type FetchFn func(ctx context.Context, id string) (map[string]interface{}, error)

const tamanoCache = 512

type entradaNegativa struct {
	hasta time.Time
}

// Buscador coordina las búsquedas de persona por DNI y de estudiante por
// código: coalescencia por slot, deduplicación de búsquedas concurrentes
// idénticas, límite de tasa hacia el upstream y recuerdo de identificadores
// que ya fallaron para no repetir la misma búsqueda fallida.
type Buscador struct {
	arena       *debounce.Arena
	grupo       singleflight.Group
	cache       *lru.Cache
	limitador   *rate.Limiter
	ttlNegativo time.Duration

	porDNI    FetchFn
	porCodigo FetchFn
}

// New construye un Buscador. ttlNegativo <= 0 usa 20s, el mismo lapso tras el
// cual la advertencia "no encontrado, llene manualmente" se auto-descarta.
func New(porDNI, porCodigo FetchFn, intervalo, ttlNegativo time.Duration) *Buscador {
	if ttlNegativo <= 0 {
		ttlNegativo = 20 * time.Second
	}
	cache, _ := lru.New(tamanoCache)
	return &Buscador{
		arena:       debounce.NewArena(intervalo),
		cache:       cache,
		limitador:   rate.NewLimiter(rate.Limit(20), 5),
		ttlNegativo: ttlNegativo,
		porDNI:      porDNI,
		porCodigo:   porCodigo,
	}
}

// PorDNI busca una persona por DNI de 8 dígitos, coalescida por slot.
func (b *Buscador) PorDNI(ctx context.Context, slot, raw string) (models.Persona, error) {
	return b.buscar(ctx, slot, raw, LongitudDNI, "dni:", b.porDNI)
}

// PorCodigo busca un estudiante por código de 6 dígitos, coalescida por slot.
func (b *Buscador) PorCodigo(ctx context.Context, slot, raw string) (models.Persona, error) {
	return b.buscar(ctx, slot, raw, LongitudCodigo, "codigo:", b.porCodigo)
}

// Inmediata resuelve sin coalescencia; la usa el enriquecimiento de filas en
// la radicación, donde no hay tecleo que amortiguar.
func (b *Buscador) Inmediata(ctx context.Context, tipo, raw string) (models.Persona, error) {
	switch tipo {
	case "codigo":
		return b.resolver(ctx, "codigo:", LimpiarIdentificador(raw, LongitudCodigo), LongitudCodigo, b.porCodigo)
	default:
		return b.resolver(ctx, "dni:", LimpiarIdentificador(raw, LongitudDNI), LongitudDNI, b.porDNI)
	}
}

func (b *Buscador) buscar(ctx context.Context, slot, raw string, longitud int, prefijo string, fetch FetchFn) (models.Persona, error) {
	id := LimpiarIdentificador(raw, longitud)
	if len(id) != longitud {
		// Un tecleo que deja el identificador incompleto descarta la
		// búsqueda pendiente del slot: ya no refleja lo escrito.
		b.arena.Cancelar(slot)
		return models.Persona{}, ErrIdentificadorIncompleto
	}

	// Aciertos de caché se responden sin esperar el intervalo.
	if p, err, ok := b.desdeCache(prefijo + id); ok {
		return p, err
	}

	type resultado struct {
		p   models.Persona
		err error
	}
	ch := make(chan resultado, 1)
	gen := b.arena.Programar(slot, func(fctx context.Context) {
		p, err := b.resolver(fctx, prefijo, id, longitud, fetch)
		ch <- resultado{p, err}
	})

	select {
	case r := <-ch:
		return r.p, r.err
	case <-gen.Done():
		// La generación también se cancela al completar; en ese caso el
		// resultado ya fue enviado antes de liberar el slot.
		if debounce.Completada(gen) {
			r := <-ch
			return r.p, r.err
		}
		return models.Persona{}, ErrReemplazada
	case <-ctx.Done():
		b.arena.CancelarGeneracion(slot, gen)
		return models.Persona{}, ctx.Err()
	}
}

func (b *Buscador) resolver(ctx context.Context, prefijo, id string, longitud int, fetch FetchFn) (models.Persona, error) {
	if len(id) != longitud {
		return models.Persona{}, ErrIdentificadorIncompleto
	}
	clave := prefijo + id
	if p, err, ok := b.desdeCache(clave); ok {
		return p, err
	}

	v, err, _ := b.grupo.Do(clave, func() (interface{}, error) {
		if err := b.limitador.Wait(ctx); err != nil {
			return nil, err
		}
		raw, err := fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, ErrNoEncontrado
		}
		p := ExtraerPersona(raw)
		if p.Nombres == "" && p.Apellidos == "" {
			return nil, ErrNoEncontrado
		}
		return p, nil
	})
	if err != nil {
		if errors.Is(err, ErrNoEncontrado) {
			b.cache.Add(clave, entradaNegativa{hasta: time.Now().Add(b.ttlNegativo)})
		}
		return models.Persona{}, err
	}

	p := v.(models.Persona)
	b.cache.Add(clave, p)
	return p, nil
}

func (b *Buscador) desdeCache(clave string) (models.Persona, error, bool) {
	v, ok := b.cache.Get(clave)
	if !ok {
		return models.Persona{}, nil, false
	}
	switch e := v.(type) {
	case models.Persona:
		return e, nil, true
	case entradaNegativa:
		if time.Now().Before(e.hasta) {
			return models.Persona{}, ErrNoEncontrado, true
		}
		b.cache.Remove(clave)
	}
	return models.Persona{}, nil, false
}
