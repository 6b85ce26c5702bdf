package controllers

import (
	rootcontrollers "github.com/udlperu/repositorio_mid/controllers"
	"github.com/udlperu/repositorio_mid/helpers"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	internalhelpers "github.com/udlperu/repositorio_mid/internal/helpers"
	internalservices "github.com/udlperu/repositorio_mid/internal/services"
)

// ConsultaController expone la página pública de seguimiento del solicitante.
type ConsultaController struct {
	rootcontrollers.BaseController
}

// GetEstado entrega la vista reducida de seguimiento por código.
// @Summary Consulta pública de estado
// @Description Solo estado, título y enlace de publicación verificado; nunca documentos ni historial.
// @Tags Consulta
// @Accept json
// @Produce json
// @Param codigo path string true "Código de seguimiento" Example(118)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *ConsultaController) GetEstado() {
	codigo := c.Ctx.Input.Param(":codigo")

	result, err := internalservices.ConsultarEstado(c.Ctx.Request.Context(), codigo)
	if err != nil {
		c.respondError(err, "error consultando el estado")
		return
	}

	resp := internalhelpers.Ok(result)
	c.writeJSON(resp.Status, resp)
}

func (c *ConsultaController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *ConsultaController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
