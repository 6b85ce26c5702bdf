package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/beego/beego/v2/core/logs"
	"github.com/go-playground/validator/v10"

	"github.com/udlperu/repositorio_mid/helpers"
	"github.com/udlperu/repositorio_mid/internal/clients"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	"github.com/udlperu/repositorio_mid/internal/lookup"
	"github.com/udlperu/repositorio_mid/internal/rosters"
	"github.com/udlperu/repositorio_mid/models"
)

// ErroresRadicacion agrupa los errores de fila detectados antes de radicar.
type ErroresRadicacion struct {
	Errores []rosters.ErrorFila `json:"errores"`
}

func (e *ErroresRadicacion) Error() string {
	return "la solicitud tiene filas con errores de validación"
}

var validarSolicitud = validator.New()

// RadicarSolicitud valida las listas de personas, enriquece los nombres
// desde el padrón cuando el identificador resuelve, y radica la solicitud.
// Devuelve el id asignado por el backend.
func RadicarSolicitud(ctx context.Context, tipo string, body internaldto.SolicitudCrear, archivos map[string]helpers.MultipartFile) (int64, error) {
	if tipo != models.TipoSolicitudEstudiante && tipo != models.TipoSolicitudDocente {
		return 0, helpers.NewAppError(http.StatusBadRequest, "tipo de solicitud no reconocido", nil)
	}
	if err := validarSolicitud.Struct(body); err != nil {
		return 0, helpers.NewAppError(http.StatusBadRequest, "la solicitud tiene campos inválidos: "+err.Error(), err)
	}

	editor, err := rosters.DesdeSolicitud(body.Autores, body.Asesores, body.Jurados, body.Coautores)
	if err != nil {
		return 0, helpers.NewAppError(http.StatusBadRequest, err.Error(), err)
	}

	enriquecerFilas(ctx, editor)

	if errores := editor.Validar(); len(errores) > 0 {
		detalle := &ErroresRadicacion{Errores: errores}
		return 0, helpers.NewAppError(http.StatusBadRequest, detalle.Error(), detalle)
	}

	campos := map[string]interface{}{
		"nombres":             strings.TrimSpace(body.Nombres),
		"apellidos":           strings.TrimSpace(body.Apellidos),
		"correo":              strings.TrimSpace(body.Correo),
		"escuela_profesional": strings.TrimSpace(body.EscuelaProfesional),
		"titulo_proyecto":     strings.TrimSpace(body.TituloProyecto),
		"autores":             valoresDe(editor.Autores),
		"asesores":            valoresDe(editor.Asesores),
		"jurados":             valoresDe(editor.Jurados),
		"coautores":           valoresDe(editor.Coautores),
	}

	id, err := clients.RepositorioCRUD().CrearSolicitud(ctx, tipo, campos, archivos)
	if err != nil {
		return 0, helpers.AsAppError(err, "error radicando la solicitud")
	}
	return id, nil
}

// enriquecerFilas completa nombres y apellidos desde el padrón para las filas
// cuyo identificador resuelve. Un identificador que no resuelve no es error:
// la fila se queda con lo tecleado manualmente.
func enriquecerFilas(ctx context.Context, editor *rosters.Editor) {
	buscador := Lookup()

	for _, f := range editor.Autores.Filas() {
		if p, ok := resolverPersona(ctx, buscador, "dni", f.Valor.DNI); ok {
			v := f.Valor
			v.Nombres, v.Apellidos = p.Nombres, p.Apellidos
			editor.Autores.Reemplazar(f.ID, v)
		}
	}
	for _, f := range editor.Asesores.Filas() {
		if p, ok := resolverPersona(ctx, buscador, "dni", f.Valor.DNI); ok {
			v := f.Valor
			v.Nombres, v.Apellidos = p.Nombres, p.Apellidos
			editor.Asesores.Reemplazar(f.ID, v)
		}
	}
	for _, f := range editor.Jurados.Filas() {
		if p, ok := resolverPersona(ctx, buscador, "dni", f.Valor.DNI); ok {
			v := f.Valor
			v.Nombres, v.Apellidos = p.Nombres, p.Apellidos
			editor.Jurados.Reemplazar(f.ID, v)
		}
	}
	for _, f := range editor.Coautores.Filas() {
		var p models.Persona
		var ok bool
		switch f.Valor.Rol {
		case models.CoautorEstudianteInterno:
			p, ok = resolverPersona(ctx, buscador, "codigo", f.Valor.Codigo)
		case models.CoautorDocenteInterno:
			p, ok = resolverPersona(ctx, buscador, "dni", f.Valor.DNI)
		}
		if ok {
			v := f.Valor
			v.Nombres, v.Apellidos = p.Nombres, p.Apellidos
			editor.Coautores.Reemplazar(f.ID, v)
		}
	}
}

func resolverPersona(ctx context.Context, b *lookup.Buscador, tipo, id string) (models.Persona, bool) {
	if strings.TrimSpace(id) == "" {
		return models.Persona{}, false
	}
	p, err := b.Inmediata(ctx, tipo, id)
	if err != nil {
		if !errors.Is(err, lookup.ErrNoEncontrado) && !errors.Is(err, lookup.ErrIdentificadorIncompleto) {
			logs.Warn("radicación: fallo consultando el padrón para %s %s: %v", tipo, id, err)
		}
		return models.Persona{}, false
	}
	return p, true
}

func valoresDe[T any](l *rosters.Lista[T]) []T {
	filas := l.Filas()
	out := make([]T, 0, len(filas))
	for _, f := range filas {
		out = append(out, f.Valor)
	}
	return out
}
