package services

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/udlperu/repositorio_mid/helpers"

	beego "github.com/beego/beego/v2/server/web"
)

// Config centraliza la configuración necesaria para los servicios externos.
type Config struct {
	AppName            string
	HTTPPort           int
	RunMode            string
	RepositorioBaseURL string
	AuthBaseURL        string
	DocumentosBaseURL  string
	// NotificacionesBaseURL apunta al servicio de correos transaccionales;
	// vacío desactiva los avisos sin afectar el flujo principal.
	NotificacionesBaseURL string
	// ParametrosBaseURL apunta al catálogo institucional (escuelas
	// profesionales); vacío degrada a catálogo vacío.
	ParametrosBaseURL string
	RequestTimeout    time.Duration
	RetryCount        int
	RetryBackoffMs    int

	// Ventana de correlación entre el evento general "observado" y los
	// eventos de documento que lo causaron. Heurística, no regla de negocio
	// comprobada; por eso es configurable.
	VentanaCorrelacion time.Duration

	// Retardo de coalescencia para las búsquedas de persona/código y TTL del
	// recuerdo negativo (identificador que ya falló).
	DebounceLookup   time.Duration
	CacheNegativoTTL time.Duration
}

var (
	cfg  Config
	once sync.Once
)

// GetConfig devuelve la configuración cargada desde variables de entorno o app.conf.
func GetConfig() Config {
	once.Do(func() {
		authBase := normalizeBase(getString("AUTH_BASE_URL", "auth_base_url", ""))
		repoBase := normalizeBase(getString("REPOSITORIO_CRUD_BASE_URL", "repositorio_crud_base_url", ""))
		if authBase == "" && repoBase != "" {
			authBase = repoBase
		}

		cfg = Config{
			AppName:               getString("APP_NAME", "appname", "repositorio_mid"),
			HTTPPort:              getInt("HTTP_PORT", "httpport", 8080),
			RunMode:               getString("RUN_MODE", "runmode", "dev"),
			RepositorioBaseURL:    repoBase,
			AuthBaseURL:           authBase,
			DocumentosBaseURL:     normalizeBase(getString("DOCUMENTOS_BASE_URL", "documentos_base_url", "")),
			NotificacionesBaseURL: normalizeBase(getString("NOTIFICACIONES_BASE_URL", "notificaciones_base_url", "")),
			ParametrosBaseURL:     normalizeBase(getString("PARAMETROS_BASE_URL", "parametros_base_url", "")),
			RequestTimeout:        time.Duration(getInt("REQUEST_TIMEOUT_MS", "request_timeout_ms", 10000)) * time.Millisecond,
			RetryCount:            getInt("RETRY_COUNT", "retry_count", 2),
			RetryBackoffMs:        getInt("RETRY_BACKOFF_MS", "retry_backoff_ms", 300),
			VentanaCorrelacion:    time.Duration(getInt("VENTANA_CORRELACION_MIN", "ventana_correlacion_min", 10)) * time.Minute,
			DebounceLookup:        time.Duration(getInt("DEBOUNCE_LOOKUP_MS", "debounce_lookup_ms", 450)) * time.Millisecond,
			CacheNegativoTTL:      time.Duration(getInt("CACHE_NEGATIVO_SEG", "cache_negativo_seg", 20)) * time.Second,
		}

		if cfg.RepositorioBaseURL == "" {
			panic("REPOSITORIO_CRUD_BASE_URL no configurado")
		}
		if cfg.DocumentosBaseURL == "" {
			cfg.DocumentosBaseURL = BuildURL(cfg.RepositorioBaseURL, "files")
		}

		helpers.SetDefaultRetryCount(cfg.RetryCount)
		helpers.SetRetryBackoff(cfg.RetryBackoffMs)
	})
	return cfg
}

func getString(envKey, confKey, def string) string {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		return val
	}
	if val, err := beego.AppConfig.String(confKey); err == nil && strings.TrimSpace(val) != "" {
		return val
	}
	return def
}

func getInt(envKey, confKey string, def int) int {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	if val, err := beego.AppConfig.Int(confKey); err == nil {
		return val
	}
	return def
}

func normalizeBase(value string) string {
	return strings.TrimSpace(value)
}

// BuildURL compone una URL asegurando que no haya dobles slashes.
func BuildURL(base string, elems ...string) string {
	trimmed := strings.TrimSuffix(base, "/")
	for _, e := range elems {
		trimmed += "/" + strings.Trim(e, "/")
	}
	return trimmed
}

// MustBuildURL es un helper para construir URLs y fallar rápido en caso de base vacía.
func MustBuildURL(base string, elems ...string) string {
	if base == "" {
		panic("base URL vacía")
	}
	return BuildURL(base, elems...)
}
