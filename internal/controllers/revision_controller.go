package controllers

import (
	"net/http"

	"github.com/beego/beego/v2/core/logs"

	rootcontrollers "github.com/udlperu/repositorio_mid/controllers"
	"github.com/udlperu/repositorio_mid/helpers"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	internalhelpers "github.com/udlperu/repositorio_mid/internal/helpers"
	internalservices "github.com/udlperu/repositorio_mid/internal/services"
)

// RevisionController expone el guardado de la revisión documental, reservado
// a los roles revisores.
type RevisionController struct {
	rootcontrollers.BaseController
}

// PostGuardar persiste las decisiones por documento y el estado agregado.
// @Summary Guardar revisión de la solicitud
// @Description Guardado secuencial por documento; el agregado solo se actualiza cuando todos los documentos se guardaron. Ejemplo de request: {"decisiones":[{"documento_id":301,"estado":"aprobado"},{"documento_id":302,"estado":"observado","observacion":"La carátula no corresponde al formato vigente"}]}
// @Tags Revision
// @Accept json
// @Produce json
// @Param id path int true "Id de la solicitud" Example(118)
// @Param body body internaldto.RevisionBody true "Decisiones por documento"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 401 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *RevisionController) PostGuardar() {
	if err := internalhelpers.RequireRole(c.Ctx, "admin", "revisor"); err != nil {
		c.respondError(helpers.NewAppError(http.StatusForbidden, "el rol no permite revisar solicitudes", err), "rol insuficiente")
		return
	}

	id, err := internalhelpers.ParamInt64(c.Ctx, ":id")
	if err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id inválido", err), "id inválido")
		return
	}

	var body internaldto.RevisionBody
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(err, "cuerpo inválido")
		return
	}

	// Rastro de auditoría: quién revisó qué solicitud.
	if usuario, err := internalhelpers.GetUsuarioID(c.Ctx); err == nil {
		logs.Info("revisión de la solicitud %d por el usuario %d", id, usuario)
	}

	resumen, err := internalservices.GuardarRevision(c.Ctx.Request.Context(), id, body.Decisiones)
	if err != nil {
		c.respondError(err, "error guardando la revisión")
		return
	}

	resp := internalhelpers.Ok(resumen)
	resp.Message = resumen.Mensaje()
	if !resumen.Completo() {
		resp.Status = http.StatusMultiStatus
	}
	c.writeJSON(resp.Status, resp)
}

func (c *RevisionController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *RevisionController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
