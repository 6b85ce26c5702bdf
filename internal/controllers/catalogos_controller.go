package controllers

import (
	rootcontrollers "github.com/udlperu/repositorio_mid/controllers"
	"github.com/udlperu/repositorio_mid/helpers"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	internalhelpers "github.com/udlperu/repositorio_mid/internal/helpers"
)

// CatalogosController expone los catálogos institucionales de solo lectura.
type CatalogosController struct {
	rootcontrollers.BaseController
}

// GetEscuelas lista las escuelas profesionales activas.
// @Summary Catálogo de escuelas profesionales
// @Description Catálogo ordenado por nombre; sin servicio de parámetros configurado devuelve lista vacía.
// @Tags Catalogos
// @Accept json
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *CatalogosController) GetEscuelas() {
	escuelas, err := internalhelpers.GetEscuelasProfesionales(c.Ctx)
	if err != nil {
		c.respondError(err, "error consultando el catálogo de escuelas")
		return
	}

	resp := internalhelpers.Ok(escuelas)
	c.writeJSON(resp.Status, resp)
}

func (c *CatalogosController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *CatalogosController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
