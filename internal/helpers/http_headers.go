package helpers

import (
	"strings"

	"github.com/beego/beego/v2/server/web/context"
	"github.com/google/uuid"
)

// EncabezadosSalientes propaga auth y correlación del request entrante hacia
// los servicios aguas arriba. Si no viene id de correlación, genera uno para
// poder rastrear la cadena completa.
func EncabezadosSalientes(ctx *context.Context) map[string]string {
	headers := make(map[string]string)
	if ctx == nil {
		return headers
	}
	if idem := strings.TrimSpace(ctx.Input.Header("Idempotency-Key")); idem != "" {
		headers["Idempotency-Key"] = idem
	}
	if auth := strings.TrimSpace(ctx.Input.Header("Authorization")); auth != "" {
		headers["Authorization"] = auth
	}
	corr := strings.TrimSpace(ctx.Input.Header("X-Request-Id"))
	if corr == "" {
		corr = strings.TrimSpace(ctx.Input.Header("X-Correlation-Id"))
	}
	if corr == "" {
		corr = uuid.NewString()
	}
	headers["X-Request-Id"] = corr
	return headers
}
