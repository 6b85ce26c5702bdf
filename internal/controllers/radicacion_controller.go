package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	rootcontrollers "github.com/udlperu/repositorio_mid/controllers"
	"github.com/udlperu/repositorio_mid/helpers"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	internalhelpers "github.com/udlperu/repositorio_mid/internal/helpers"
	internalservices "github.com/udlperu/repositorio_mid/internal/services"
	"github.com/udlperu/repositorio_mid/models"
)

// tiposAdjuntos son los nombres de los archivos esperados en el formulario.
var tiposAdjuntos = []string{
	models.DocTesisPDF,
	models.DocHojaAutorizacion,
	models.DocConstanciaEmpastado,
	models.DocConstanciaOriginalidad,
}

// RadicacionController recibe las solicitudes nuevas de estudiantes y
// docentes como formulario multipart: un campo "datos" con el JSON de la
// solicitud y los adjuntos nombrados por tipo de documento.
type RadicacionController struct {
	rootcontrollers.BaseController
}

// PostEstudiantes radica una solicitud de estudiante.
// @Summary Radicar solicitud de estudiante
// @Description Formulario multipart con el campo "datos" (JSON de la solicitud) y los archivos tesis_pdf, hoja_autorizacion, constancia_empastado y constancia_originalidad.
// @Tags Radicacion
// @Accept mpfd
// @Produce json
// @Param datos formData string true "JSON de la solicitud"
// @Param tesis_pdf formData file true "Tesis en PDF"
// @Success 201 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *RadicacionController) PostEstudiantes() {
	c.radicar(models.TipoSolicitudEstudiante)
}

// PostDocentes radica una solicitud de docente.
// @Summary Radicar solicitud de docente
// @Description Mismo formulario que la radicación de estudiante.
// @Tags Radicacion
// @Accept mpfd
// @Produce json
// @Param datos formData string true "JSON de la solicitud"
// @Param tesis_pdf formData file true "Trabajo de investigación en PDF"
// @Success 201 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *RadicacionController) PostDocentes() {
	c.radicar(models.TipoSolicitudDocente)
}

func (c *RadicacionController) radicar(tipo string) {
	body, ok := c.parseDatos()
	if !ok {
		return
	}
	archivos, ok := c.leerAdjuntos()
	if !ok {
		return
	}

	id, err := internalservices.RadicarSolicitud(c.Ctx.Request.Context(), tipo, body, archivos)
	if err != nil {
		var filas *internalservices.ErroresRadicacion
		if errors.As(err, &filas) {
			resp := internalhelpers.Fail(http.StatusBadRequest, filas.Error())
			resp.Data = filas.Errores
			c.writeJSON(resp.Status, resp)
			return
		}
		c.respondError(err, "error radicando la solicitud")
		return
	}

	internalhelpers.Notificaciones.Enviar(c.Ctx, body.Correo,
		"Solicitud recibida",
		fmt.Sprintf("Su solicitud fue registrada con el código de seguimiento %d.", id))

	resp := internalhelpers.Ok(map[string]interface{}{"id": id})
	resp.Status = http.StatusCreated
	resp.Message = "Solicitud radicada"
	c.writeJSON(resp.Status, resp)
}

func (c *RadicacionController) parseDatos() (internaldto.SolicitudCrear, bool) {
	var body internaldto.SolicitudCrear
	raw := strings.TrimSpace(c.GetString("datos"))
	if raw == "" {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "campo datos requerido", nil), "campo datos requerido")
		return body, false
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "campo datos ilegible", err), "campo datos ilegible")
		return body, false
	}
	return body, true
}

func (c *RadicacionController) leerAdjuntos() (map[string]helpers.MultipartFile, bool) {
	archivos := make(map[string]helpers.MultipartFile)
	for _, tipo := range tiposAdjuntos {
		f, header, err := c.GetFile(tipo)
		if err != nil {
			if err == http.ErrMissingFile {
				continue
			}
			c.respondError(helpers.NewAppError(http.StatusBadRequest, "adjunto "+tipo+" ilegible", err), "adjunto ilegible")
			return nil, false
		}
		contenido, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			c.respondError(helpers.NewAppError(http.StatusBadRequest, "adjunto "+tipo+" ilegible", err), "adjunto ilegible")
			return nil, false
		}
		archivos[tipo] = helpers.MultipartFile{
			Nombre:    header.Filename,
			Contenido: contenido,
		}
	}

	if _, ok := archivos[models.DocTesisPDF]; !ok {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "el adjunto tesis_pdf es obligatorio", nil), "adjunto obligatorio")
		return nil, false
	}
	return archivos, true
}

func (c *RadicacionController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *RadicacionController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}
