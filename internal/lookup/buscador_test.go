package lookup

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udlperu/repositorio_mid/models"
)

func fetchFija(p map[string]interface{}) FetchFn {
	return func(context.Context, string) (map[string]interface{}, error) {
		return p, nil
	}
}

func fetchNoEncontrado(llamadas *int32) FetchFn {
	return func(context.Context, string) (map[string]interface{}, error) {
		atomic.AddInt32(llamadas, 1)
		return nil, nil
	}
}

func TestBuscadorIdentificadorIncompleto(t *testing.T) {
	b := New(fetchFija(nil), fetchFija(nil), time.Millisecond, time.Second)

	_, err := b.PorDNI(context.Background(), "slot", "4071")
	assert.ErrorIs(t, err, ErrIdentificadorIncompleto)

	_, err = b.PorCodigo(context.Background(), "slot", "12")
	assert.ErrorIs(t, err, ErrIdentificadorIncompleto)
}

func TestBuscadorResuelvePersona(t *testing.T) {
	b := New(fetchFija(map[string]interface{}{
		"nombres":   "María",
		"apellidos": "Ruiz",
	}), fetchFija(nil), time.Millisecond, time.Second)

	p, err := b.PorDNI(context.Background(), "slot", "40712345")
	require.NoError(t, err)
	assert.Equal(t, models.Persona{Nombres: "María", Apellidos: "Ruiz"}, p)
}

func TestBuscadorNoEncontrado(t *testing.T) {
	var llamadas int32
	b := New(fetchNoEncontrado(&llamadas), fetchFija(nil), time.Millisecond, time.Second)

	_, err := b.PorDNI(context.Background(), "slot", "40712345")
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestBuscadorCacheNegativoEvitaReintento(t *testing.T) {
	var llamadas int32
	b := New(fetchNoEncontrado(&llamadas), fetchFija(nil), time.Millisecond, time.Minute)

	_, err := b.PorDNI(context.Background(), "slot", "40712345")
	require.ErrorIs(t, err, ErrNoEncontrado)

	// Mismo identificador dentro del TTL: responde desde el recuerdo negativo.
	_, err = b.PorDNI(context.Background(), "slot", "40712345")
	require.ErrorIs(t, err, ErrNoEncontrado)
	assert.Equal(t, int32(1), atomic.LoadInt32(&llamadas))
}

func TestBuscadorCacheNegativoExpira(t *testing.T) {
	var llamadas int32
	b := New(fetchNoEncontrado(&llamadas), fetchFija(nil), time.Millisecond, 20*time.Millisecond)

	_, _ = b.PorDNI(context.Background(), "slot", "40712345")
	time.Sleep(40 * time.Millisecond)
	_, _ = b.PorDNI(context.Background(), "slot", "40712345")

	assert.Equal(t, int32(2), atomic.LoadInt32(&llamadas))
}

func TestBuscadorEditarIdentificadorEsquivaCacheNegativo(t *testing.T) {
	var llamadas int32
	b := New(fetchNoEncontrado(&llamadas), fetchFija(nil), time.Millisecond, time.Minute)

	_, _ = b.PorDNI(context.Background(), "slot", "40712345")
	_, _ = b.PorDNI(context.Background(), "slot", "40712346")

	assert.Equal(t, int32(2), atomic.LoadInt32(&llamadas))
}

func TestBuscadorReemplazoSilencioso(t *testing.T) {
	bloquea := make(chan struct{})
	b := New(func(context.Context, string) (map[string]interface{}, error) {
		<-bloquea
		return map[string]interface{}{"nombres": "x"}, nil
	}, fetchFija(nil), 50*time.Millisecond, time.Second)

	type res struct {
		err error
	}
	primera := make(chan res, 1)
	go func() {
		_, err := b.PorDNI(context.Background(), "slot", "40712345")
		primera <- res{err}
	}()

	// Dar tiempo a que la primera quede programada y reemplazarla.
	time.Sleep(20 * time.Millisecond)
	segunda := make(chan res, 1)
	go func() {
		_, err := b.PorDNI(context.Background(), "slot", "40712346")
		segunda <- res{err}
	}()

	select {
	case r := <-primera:
		assert.True(t, errors.Is(r.err, ErrReemplazada), "err=%v", r.err)
	case <-time.After(2 * time.Second):
		t.Fatal("la primera búsqueda nunca terminó")
	}

	close(bloquea)
	select {
	case r := <-segunda:
		assert.NoError(t, r.err)
	case <-time.After(2 * time.Second):
		t.Fatal("la segunda búsqueda nunca terminó")
	}
}

func TestBuscadorCompletarNoSeConfundeConReemplazo(t *testing.T) {
	b := New(fetchFija(map[string]interface{}{
		"nombres":   "Ana",
		"apellidos": "Vega",
	}), fetchFija(nil), time.Millisecond, time.Second)

	// Identificadores distintos para esquivar la caché y recorrer el ciclo
	// programar-correr-liberar completo en cada vuelta; liberar el slot al
	// terminar nunca debe leerse como un reemplazo.
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("407%05d", i)
		_, err := b.PorDNI(context.Background(), "slot", id)
		require.NoError(t, err, "vuelta %d", i)
	}
}

func TestBuscadorIdentificadorIncompletoCancelaPendiente(t *testing.T) {
	b := New(fetchFija(map[string]interface{}{"nombres": "x"}), fetchFija(nil), 50*time.Millisecond, time.Second)

	pendiente := make(chan error, 1)
	go func() {
		_, err := b.PorDNI(context.Background(), "slot", "40712345")
		pendiente <- err
	}()
	time.Sleep(20 * time.Millisecond)

	// Borrar un dígito deja el identificador incompleto y descarta la
	// búsqueda programada del slot: ya no refleja lo escrito.
	_, err := b.PorDNI(context.Background(), "slot", "4071234")
	require.ErrorIs(t, err, ErrIdentificadorIncompleto)

	select {
	case err := <-pendiente:
		assert.ErrorIs(t, err, ErrReemplazada)
	case <-time.After(2 * time.Second):
		t.Fatal("la búsqueda pendiente nunca terminó")
	}
}

func TestBuscadorContextoDelLlamadorCancelado(t *testing.T) {
	b := New(fetchFija(map[string]interface{}{"nombres": "x"}), fetchFija(nil), 80*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	hecho := make(chan error, 1)
	go func() {
		_, err := b.PorDNI(ctx, "slot", "40712345")
		hecho <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-hecho:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("la búsqueda nunca observó la cancelación")
	}

	// El slot quedó libre: una búsqueda posterior sobre la misma clave corre
	// con normalidad.
	p, err := b.PorDNI(context.Background(), "slot", "40712345")
	require.NoError(t, err)
	assert.Equal(t, "x", p.Nombres)
}

func TestBuscadorInmediataSinAmortiguar(t *testing.T) {
	inicio := time.Now()
	b := New(fetchFija(map[string]interface{}{"nombres": "Ana", "apellidos": "Vega"}), fetchFija(nil), time.Second, time.Second)

	p, err := b.Inmediata(context.Background(), "dni", "40712345")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Nombres)
	// Con intervalo de 1s, una resolución casi instantánea prueba que no pasó
	// por la arena.
	assert.Less(t, time.Since(inicio), 500*time.Millisecond)
}

func TestBuscadorCachePositivo(t *testing.T) {
	var llamadas int32
	b := New(func(context.Context, string) (map[string]interface{}, error) {
		atomic.AddInt32(&llamadas, 1)
		return map[string]interface{}{"nombres": "Ana", "apellidos": "Vega"}, nil
	}, fetchFija(nil), time.Millisecond, time.Second)

	_, err := b.PorDNI(context.Background(), "slot", "40712345")
	require.NoError(t, err)
	_, err = b.PorDNI(context.Background(), "otro-slot", "40712345")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&llamadas))
}
