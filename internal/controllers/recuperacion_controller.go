package controllers

import (
	rootcontrollers "github.com/udlperu/repositorio_mid/controllers"
	"github.com/udlperu/repositorio_mid/helpers"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	internalhelpers "github.com/udlperu/repositorio_mid/internal/helpers"
	internalservices "github.com/udlperu/repositorio_mid/internal/services"
)

// RecuperacionController expone el flujo de recuperación de credenciales en
// tres pasos. Los errores de campo viajan dentro del estado del flujo, no
// como errores HTTP.
type RecuperacionController struct {
	rootcontrollers.BaseController
}

// PostSolicitar ejecuta el paso 1: valida el correo y pide el código.
// @Summary Solicitar código de recuperación
// @Description Ejemplo de request: {"correo":"mruiz@udlperu.edu.pe"}
// @Tags Recuperacion
// @Accept json
// @Produce json
// @Param body body internaldto.RecuperacionSolicitar true "Correo registrado"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *RecuperacionController) PostSolicitar() {
	var body internaldto.RecuperacionSolicitar
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(err, "cuerpo inválido")
		return
	}

	estado, err := internalservices.SolicitarRecuperacion(c.Ctx.Request.Context(), body)
	if err != nil {
		c.respondError(err, "error solicitando el código")
		return
	}

	resp := internalhelpers.Ok(estado)
	c.writeJSON(resp.Status, resp)
}

// PostVerificar ejecuta el paso 2: valida el código de 6 caracteres.
// @Summary Verificar código de recuperación
// @Description Un código inválido o expirado deja un error de campo y el flujo permanece en el paso 2.
// @Tags Recuperacion
// @Accept json
// @Produce json
// @Param body body internaldto.RecuperacionVerificar true "Token del flujo y código recibido"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *RecuperacionController) PostVerificar() {
	var body internaldto.RecuperacionVerificar
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(err, "cuerpo inválido")
		return
	}

	estado, err := internalservices.VerificarRecuperacion(c.Ctx.Request.Context(), body)
	if err != nil {
		c.respondError(err, "error verificando el código")
		return
	}

	resp := internalhelpers.Ok(estado)
	c.writeJSON(resp.Status, resp)
}

// PostRestablecer ejecuta el paso 3: fija la clave nueva.
// @Summary Restablecer la clave
// @Description Si el código expiró entre pasos, el flujo rebota al paso 1 conservando el correo.
// @Tags Recuperacion
// @Accept json
// @Produce json
// @Param body body internaldto.RecuperacionRestablecer true "Token, clave nueva y confirmación"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *RecuperacionController) PostRestablecer() {
	var body internaldto.RecuperacionRestablecer
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(err, "cuerpo inválido")
		return
	}

	estado, err := internalservices.RestablecerRecuperacion(c.Ctx.Request.Context(), body)
	if err != nil {
		c.respondError(err, "error restableciendo la clave")
		return
	}

	resp := internalhelpers.Ok(estado)
	c.writeJSON(resp.Status, resp)
}

// PostVolver retrocede del paso 2 al 1.
// @Summary Volver al paso inicial
// @Description Único retroceso permitido; limpia los errores y conserva el correo.
// @Tags Recuperacion
// @Accept json
// @Produce json
// @Param body body internaldto.RecuperacionVolver true "Token del flujo"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 409 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *RecuperacionController) PostVolver() {
	var body internaldto.RecuperacionVolver
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(err, "cuerpo inválido")
		return
	}

	estado, err := internalservices.VolverRecuperacion(body)
	if err != nil {
		c.respondError(err, "error volviendo al paso inicial")
		return
	}

	resp := internalhelpers.Ok(estado)
	c.writeJSON(resp.Status, resp)
}

func (c *RecuperacionController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *RecuperacionController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
