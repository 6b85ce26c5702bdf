package services

import (
	"context"
	"sync"

	"github.com/udlperu/repositorio_mid/internal/clients"
	"github.com/udlperu/repositorio_mid/internal/lookup"
	"github.com/udlperu/repositorio_mid/models"
	rootservices "github.com/udlperu/repositorio_mid/services"
)

var (
	buscadorOnce sync.Once
	buscador     *lookup.Buscador
)

// Lookup devuelve el buscador singleton cableado contra el backend.
func Lookup() *lookup.Buscador {
	buscadorOnce.Do(func() {
		cfg := rootservices.GetConfig()
		crud := clients.RepositorioCRUD()
		buscador = lookup.New(crud.GetPersonaPorDNI, crud.GetEstudiantePorCodigo, cfg.DebounceLookup, cfg.CacheNegativoTTL)
	})
	return buscador
}

// BuscarPersonaPorDNI resuelve un DNI de 8 dígitos coalescido por slot.
func BuscarPersonaPorDNI(ctx context.Context, slot, dni string) (models.Persona, error) {
	return Lookup().PorDNI(ctx, slot, dni)
}

// BuscarEstudiantePorCodigo resuelve un código de 6 dígitos coalescido por slot.
func BuscarEstudiantePorCodigo(ctx context.Context, slot, codigo string) (models.Persona, error) {
	return Lookup().PorCodigo(ctx, slot, codigo)
}
