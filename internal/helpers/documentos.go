package helpers

import (
	"strings"
	"sync"

	"github.com/beego/beego/v2/core/logs"

	roothelpers "github.com/udlperu/repositorio_mid/helpers"
	rootservices "github.com/udlperu/repositorio_mid/services"
)

type documentosClient struct{}

// Documentos agrupa helpers sobre los archivos servidos por el repositorio.
var Documentos = documentosClient{}

var (
	sondearOnce    sync.Once
	sondearEnlaces bool
)

// Disponible verifica con un HEAD que la ruta responda. Con el sondeo
// desactivado informa disponible sin tocar la red.
func (documentosClient) Disponible(ruta string) bool {
	if !debeSondear() {
		return true
	}
	enlace := strings.TrimSpace(ruta)
	if enlace == "" {
		return false
	}

	cfg := rootservices.GetConfig()
	status, _, err := roothelpers.DoHEAD(enlace, nil, cfg.RequestTimeout)
	if err != nil {
		logs.Warn("documentos: el sondeo de %s falló: %v", enlace, err)
		return false
	}
	return status >= 200 && status < 400
}

// Resolver antepone la base de documentos a las rutas relativas.
func (documentosClient) Resolver(ruta string) string {
	return roothelpers.ResolverRutaDocumento(rootservices.GetConfig().DocumentosBaseURL, ruta)
}

func debeSondear() bool {
	sondearOnce.Do(func() {
		sondearEnlaces = EnvBool("SONDEAR_ENLACES", true)
	})
	return sondearEnlaces
}
