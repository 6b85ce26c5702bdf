// helpers/http_client.go
package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"
)

// ---------- Utilidades URL ----------

func IsHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ResolverRutaDocumento convierte una ruta relativa del backend en URL
// absoluta anteponiendo la base configurada. Una URL ya absoluta pasa tal cual.
func ResolverRutaDocumento(base, ruta string) string {
	trimmed := strings.TrimSpace(ruta)
	if trimmed == "" {
		return ""
	}
	if IsHTTPURL(trimmed) {
		return trimmed
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(trimmed, "/")
}

func DoHEAD(url string, headers map[string]string, timeout time.Duration) (int, http.Header, error) {
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
	req, err := http.NewRequest("HEAD", url, nil)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, resp.Header, nil
}

// ---------- Cliente JSON (wrapped y no wrapped) + RETRIES ----------

// CrudWrapper es el sobre estándar {success,message,data} que emite el
// backend del repositorio. Acepta ambas capitalizaciones de llave.
type CrudWrapper struct {
	Success    bool            `json:"success"`
	SuccessAlt *bool           `json:"Success,omitempty"`
	Message    string          `json:"message"`
	MessageAlt string          `json:"Message,omitempty"`
	Data       json.RawMessage `json:"data"`
	DataAlt    json.RawMessage `json:"Data,omitempty"`
}

func (w CrudWrapper) ok() bool {
	if w.SuccessAlt != nil {
		return *w.SuccessAlt
	}
	return w.Success
}

func (w CrudWrapper) mensaje() string {
	if strings.TrimSpace(w.Message) != "" {
		return w.Message
	}
	return w.MessageAlt
}

func (w CrudWrapper) payload() json.RawMessage {
	if len(w.Data) > 0 {
		return w.Data
	}
	return w.DataAlt
}

// HTTPError envuelve códigos de estado no exitosos para permitir un manejo granular.
type HTTPError struct {
	Status int
	Body   string
}

// Error imprime el estado y cuerpo asociado.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// IsHTTPError permite consultar si el error corresponde a un status específico.
func IsHTTPError(err error, status int) bool {
	if err == nil {
		return false
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status == status
	}
	return false
}

// Config global de reintentos (retro-compatible)
var (
	defaultRetryCount  = 0
	defaultBackoffBase = 300 * time.Millisecond
	maxBackoff         = 3 * time.Second
)

func SetDefaultRetryCount(n int) {
	if n < 0 {
		n = 0
	}
	defaultRetryCount = n
}

func SetRetryBackoff(baseMs int) {
	if baseMs <= 0 {
		baseMs = 300
	}
	defaultBackoffBase = time.Duration(baseMs) * time.Millisecond
}

// Retro-compatible: asume wrapped=true y sin headers
func DoJSON(method, url string, in any, out any, timeout time.Duration) error {
	return DoJSONWithHeaders(method, url, nil, in, out, timeout, true)
}

// Con headers y control de envoltura; aplica reintentos
func DoJSONWithHeaders(method, url string, headers map[string]string, in any, out any, timeout time.Duration, wrapped bool) error {
	// Serializa body una vez
	var body []byte
	var err error
	if in != nil {
		body, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	doOnce := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewBuffer(body)
		}
		req, err := http.NewRequest(method, url, reader)
		if err != nil {
			return err
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		client := &http.Client{Timeout: timeout}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			b, _ := io.ReadAll(resp.Body)
			return &HTTPError{
				Status: resp.StatusCode,
				Body:   strings.TrimSpace(string(b)),
			}
		}

		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if len(bodyBytes) == 0 {
			return nil
		}

		return decodificar(bodyBytes, out, wrapped)
	}

	var attempt int
	for {
		err = doOnce()
		if err == nil {
			return nil
		}
		if attempt >= defaultRetryCount || !isRetryableErr(err) {
			return err
		}
		time.Sleep(backoffFor(attempt))
		attempt++
	}
}

// DoMultipart envía un formulario multipart construyendo el cuerpo con los
// campos y archivos provistos. files mapea nombre de campo -> (nombre de
// archivo, contenido). No aplica reintentos: los envíos multipart del flujo
// de revisión son best-effort secuencial y el que llama contabiliza fallos.
func DoMultipart(method, url string, headers map[string]string, fields map[string]string, files map[string]MultipartFile, out any, timeout time.Duration, wrapped bool) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return err
		}
	}
	for field, f := range files {
		part, err := writer.CreateFormFile(field, f.Nombre)
		if err != nil {
			return err
		}
		if _, err := part.Write(f.Contenido); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bodyBytes) == 0 {
		return nil
	}
	return decodificar(bodyBytes, out, wrapped)
}

// MultipartFile es un archivo en memoria para DoMultipart.
type MultipartFile struct {
	Nombre    string
	Contenido []byte
}

func decodificar(bodyBytes []byte, out any, wrapped bool) error {
	if !wrapped {
		return json.Unmarshal(bodyBytes, out)
	}
	var w CrudWrapper
	if err := json.Unmarshal(bodyBytes, &w); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && (ute.Type == reflect.TypeOf(CrudWrapper{}) || ute.Type == reflect.TypeOf(&CrudWrapper{})) {
			return json.Unmarshal(bodyBytes, out)
		}
		return err
	}
	if !w.ok() {
		msg := w.mensaje()
		if msg == "" {
			msg = "operación fallida (success=false)"
		}
		// Rechazo de negocio con HTTP 2xx: el mensaje del backend debe
		// llegar tal cual al usuario, no el fallback genérico del
		// controlador.
		return NewAppError(http.StatusBadRequest, msg, nil)
	}
	data := w.payload()
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func isRetryableErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var he *HTTPError
	if errors.As(err, &he) {
		switch he.Status {
		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	l := strings.ToLower(err.Error())
	return strings.Contains(l, "timeout") ||
		strings.Contains(l, "connection reset") ||
		strings.Contains(l, "temporary") ||
		strings.Contains(l, "server closed idle connection")
}

func backoffFor(attempt int) time.Duration {
	d := defaultBackoffBase << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
