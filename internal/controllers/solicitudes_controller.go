package controllers

import (
	"net/http"
	"strings"

	rootcontrollers "github.com/udlperu/repositorio_mid/controllers"
	"github.com/udlperu/repositorio_mid/helpers"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	internalhelpers "github.com/udlperu/repositorio_mid/internal/helpers"
	internalservices "github.com/udlperu/repositorio_mid/internal/services"
)

// SolicitudesController expone el detalle, historial y observaciones de una
// solicitud de publicación.
type SolicitudesController struct {
	rootcontrollers.BaseController
}

// GetDetalle entrega el detalle de la solicitud con estados normalizados.
// @Summary Detalle de la solicitud
// @Description Estados normalizados y fechas formateadas en hora de Lima.
// @Tags Solicitudes
// @Accept json
// @Produce json
// @Param id path int true "Id de la solicitud" Example(118)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *SolicitudesController) GetDetalle() {
	id, ok := c.parseID()
	if !ok {
		return
	}

	result, err := internalservices.ObtenerDetalle(c.Ctx.Request.Context(), id)
	if err != nil {
		c.respondError(err, "error consultando la solicitud")
		return
	}

	resp := internalhelpers.Ok(result)
	c.writeJSON(resp.Status, resp)
}

// GetHistorial entrega el historial de transiciones con rutas de archivo.
// @Summary Historial de la solicitud
// @Description Cada evento trae la fecha en las dos presentaciones disponibles.
// @Tags Solicitudes
// @Accept json
// @Produce json
// @Param id path int true "Id de la solicitud" Example(118)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *SolicitudesController) GetHistorial() {
	id, ok := c.parseID()
	if !ok {
		return
	}

	result, err := internalservices.ObtenerHistorial(c.Ctx.Request.Context(), id)
	if err != nil {
		c.respondError(err, "error consultando el historial")
		return
	}

	resp := internalhelpers.Ok(result)
	c.writeJSON(resp.Status, resp)
}

// GetObservaciones correlaciona los documentos observados alrededor del
// evento general indicado por la fecha.
// @Summary Observaciones de un evento
// @Description Un resultado vacío es válido: significa que ningún documento quedó dentro de la ventana.
// @Tags Solicitudes
// @Accept json
// @Produce json
// @Param id path int true "Id de la solicitud" Example(118)
// @Param fecha query string true "Fecha del evento general observado" Example(2025-03-12 14:03:27.123456)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *SolicitudesController) GetObservaciones() {
	id, ok := c.parseID()
	if !ok {
		return
	}
	fecha := strings.TrimSpace(c.GetString("fecha"))
	if fecha == "" {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "fecha requerida", nil), "fecha requerida")
		return
	}

	result, err := internalservices.ObtenerObservaciones(c.Ctx.Request.Context(), id, fecha)
	if err != nil {
		c.respondError(err, "error correlacionando observaciones")
		return
	}

	resp := internalhelpers.Ok(result)
	c.writeJSON(resp.Status, resp)
}

// GetListado lista las solicitudes con paginación y filtro por texto.
// @Summary Listado de solicitudes
// @Description Paginación del lado del MID sobre el listado del backend.
// @Tags Solicitudes
// @Accept json
// @Produce json
// @Param q query string false "Texto a buscar en título, nombres o escuela" Example(redes neuronales)
// @Param page query int false "Página" Example(1)
// @Param size query int false "Tamaño de página" Example(20)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *SolicitudesController) GetListado() {
	page, size := internalhelpers.ParsePageSize(c.GetString("page"), c.GetString("size"))

	result, err := internalservices.ListarSolicitudes(c.Ctx.Request.Context(), c.GetString("q"), page, size)
	if err != nil {
		c.respondError(err, "error consultando solicitudes")
		return
	}

	resp := internalhelpers.Ok(result)
	c.writeJSON(resp.Status, resp)
}

func (c *SolicitudesController) parseID() (int64, bool) {
	id, err := internalhelpers.ParamInt64(c.Ctx, ":id")
	if err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id inválido", err), "id inválido")
		return 0, false
	}
	return id, true
}

func (c *SolicitudesController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *SolicitudesController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
