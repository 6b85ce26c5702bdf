package helpers

import (
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	webctx "github.com/beego/beego/v2/server/web/context"

	"github.com/udlperu/repositorio_mid/models"
	rootservices "github.com/udlperu/repositorio_mid/services"
)

// El catálogo de escuelas cambia una vez por semestre; un caché corto evita
// golpear parametros_crud en cada radicación.
const catalogoTTL = 10 * time.Minute

var (
	catalogoMu    sync.Mutex
	catalogoCache []models.EscuelaProfesional
	catalogoCorte time.Time
)

type escuelasWrapper struct {
	Success bool                        `json:"success"`
	Data    []models.EscuelaProfesional `json:"data"`
}

// GetEscuelasProfesionales consulta el catálogo institucional de escuelas,
// ordenado por nombre y solo las activas. Sin base configurada devuelve
// catálogo vacío sin error.
func GetEscuelasProfesionales(ctx *webctx.Context) ([]models.EscuelaProfesional, error) {
	cfg := rootservices.GetConfig()
	if cfg.ParametrosBaseURL == "" {
		return []models.EscuelaProfesional{}, nil
	}

	catalogoMu.Lock()
	if catalogoCache != nil && time.Since(catalogoCorte) < catalogoTTL {
		out := append([]models.EscuelaProfesional(nil), catalogoCache...)
		catalogoMu.Unlock()
		return out, nil
	}
	catalogoMu.Unlock()

	u, err := url.Parse(cfg.ParametrosBaseURL)
	if err != nil {
		return nil, err
	}
	u.Path = path.Join(u.Path, "escuelas")
	q := url.Values{}
	q.Set("activa", "true")
	u.RawQuery = q.Encode()

	var w escuelasWrapper
	if err := GetJSON(ctx, u.String(), &w, nil); err != nil {
		return nil, err
	}

	escuelas := make([]models.EscuelaProfesional, 0, len(w.Data))
	for _, e := range w.Data {
		if strings.TrimSpace(e.Nombre) == "" {
			continue
		}
		escuelas = append(escuelas, e)
	}
	sort.Slice(escuelas, func(i, j int) bool {
		return escuelas[i].Nombre < escuelas[j].Nombre
	})

	catalogoMu.Lock()
	catalogoCache = append([]models.EscuelaProfesional(nil), escuelas...)
	catalogoCorte = time.Now()
	catalogoMu.Unlock()

	return escuelas, nil
}
