package helpers

import (
	"strings"

	"github.com/beego/beego/v2/core/logs"
	"github.com/beego/beego/v2/server/web/context"

	roothelpers "github.com/udlperu/repositorio_mid/helpers"
	rootservices "github.com/udlperu/repositorio_mid/services"
)

type notificacionesClient struct{}

// Notificaciones expone el wrapper al servicio de correos transaccionales.
var Notificaciones = notificacionesClient{}

// Enviar dispara un correo al solicitante. Es best-effort: sin base
// configurada o con fallo de transporte solo se deja registro, nunca se
// interrumpe la operación que lo originó.
func (notificacionesClient) Enviar(ctx *context.Context, correo, asunto, mensaje string) {
	cfg := rootservices.GetConfig()
	if cfg.NotificacionesBaseURL == "" {
		return
	}
	destino := strings.TrimSpace(correo)
	if destino == "" {
		return
	}

	body := map[string]string{
		"correo":  destino,
		"asunto":  asunto,
		"mensaje": mensaje,
	}
	endpoint := rootservices.BuildURL(cfg.NotificacionesBaseURL, "correos")
	headers := EncabezadosSalientes(ctx)

	var resp map[string]interface{}
	if err := roothelpers.DoJSONWithHeaders("POST", endpoint, headers, body, &resp, cfg.RequestTimeout, false); err != nil {
		logs.Warn("notificaciones: no se pudo enviar '%s' a %s: %v", asunto, destino, err)
	}
}
