package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	webctx "github.com/beego/beego/v2/server/web/context"
)

var httpClient = &http.Client{
	Timeout: 20 * time.Second,
}

// GetJSON hace un GET propagando auth y correlación del request entrante y
// decodifica JSON en out. Es la variante atada al contexto Beego; los
// clientes de backend sin request entrante usan el transporte raíz.
func GetJSON(ctx *webctx.Context, url string, out interface{}, extra map[string]string) error {
	var stdctx context.Context
	if ctx != nil && ctx.Request != nil {
		stdctx = ctx.Request.Context()
	} else {
		stdctx = context.Background()
	}

	req, err := http.NewRequestWithContext(stdctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range EncabezadosSalientes(ctx) {
		req.Header.Set(k, v)
	}
	for k, v := range extra {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s -> %d: %s", url, resp.StatusCode, string(body))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
