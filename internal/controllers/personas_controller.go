package controllers

import (
	"errors"
	"net/http"
	"strings"

	rootcontrollers "github.com/udlperu/repositorio_mid/controllers"
	"github.com/udlperu/repositorio_mid/helpers"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	internalhelpers "github.com/udlperu/repositorio_mid/internal/helpers"
	"github.com/udlperu/repositorio_mid/internal/lookup"
	internalservices "github.com/udlperu/repositorio_mid/internal/services"
)

// PersonasController expone las búsquedas amortiguadas de persona por DNI y
// de estudiante por código.
type PersonasController struct {
	rootcontrollers.BaseController
}

// GetPorDNI busca una persona por DNI de 8 dígitos.
// @Summary Buscar persona por DNI
// @Description La búsqueda se amortigua por slot: una búsqueda posterior sobre el mismo slot reemplaza en silencio a la anterior (204).
// @Tags Personas
// @Accept json
// @Produce json
// @Param dni path string true "DNI de 8 dígitos" Example(40712345)
// @Param slot query string false "Clave estable del campo que origina la búsqueda" Example(autor-0)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *PersonasController) GetPorDNI() {
	dni := c.Ctx.Input.Param(":dni")
	slot := c.slot("dni")

	persona, err := internalservices.BuscarPersonaPorDNI(c.Ctx.Request.Context(), slot, dni)
	if err != nil {
		c.respondLookupError(err)
		return
	}

	resp := internalhelpers.Ok(persona)
	c.writeJSON(resp.Status, resp)
}

// GetEstudiantePorCodigo busca un estudiante por código de 6 dígitos.
// @Summary Buscar estudiante por código
// @Description Mismas reglas de amortiguación y caché negativo que la búsqueda por DNI.
// @Tags Personas
// @Accept json
// @Produce json
// @Param codigo path string true "Código de estudiante de 6 dígitos" Example(201234)
// @Param slot query string false "Clave estable del campo que origina la búsqueda" Example(coautor-2)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *PersonasController) GetEstudiantePorCodigo() {
	codigo := c.Ctx.Input.Param(":codigo")
	slot := c.slot("codigo")

	persona, err := internalservices.BuscarEstudiantePorCodigo(c.Ctx.Request.Context(), slot, codigo)
	if err != nil {
		c.respondLookupError(err)
		return
	}

	resp := internalhelpers.Ok(persona)
	c.writeJSON(resp.Status, resp)
}

func (c *PersonasController) slot(fallback string) string {
	if s := strings.TrimSpace(c.GetString("slot")); s != "" {
		return s
	}
	return fallback
}

func (c *PersonasController) respondLookupError(err error) {
	switch {
	case errors.Is(err, lookup.ErrReemplazada):
		// Reemplazo silencioso: el caller ya disparó otra búsqueda.
		c.Ctx.Output.SetStatus(http.StatusNoContent)
	case errors.Is(err, lookup.ErrIdentificadorIncompleto):
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "identificador incompleto", err), "identificador incompleto")
	case errors.Is(err, lookup.ErrNoEncontrado):
		c.respondError(helpers.NewAppError(http.StatusNotFound, "no se encontró a la persona, complete los datos manualmente", err), "persona no encontrada")
	default:
		c.respondError(err, "error consultando el padrón")
	}
}

func (c *PersonasController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *PersonasController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
