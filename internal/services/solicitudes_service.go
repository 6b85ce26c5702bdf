package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/udlperu/repositorio_mid/helpers"
	"github.com/udlperu/repositorio_mid/internal/clients"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	"github.com/udlperu/repositorio_mid/internal/historial"
	"github.com/udlperu/repositorio_mid/models"
	rootservices "github.com/udlperu/repositorio_mid/services"
)

// ObtenerDetalle trae el detalle de la solicitud con estados normalizados y
// fechas formateadas para la vista.
func ObtenerDetalle(ctx context.Context, id int64) (*internaldto.SolicitudDetalleDTO, error) {
	det, err := clients.RepositorioCRUD().GetSolicitudDetalle(ctx, id)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, helpers.NewAppError(http.StatusNotFound, "solicitud no encontrada", err)
		}
		return nil, helpers.AsAppError(err, "error consultando la solicitud")
	}

	return &internaldto.SolicitudDetalleDTO{
		Solicitud:     det.Solicitud,
		FechaCreacion: historial.FormatearFechaLima(det.Solicitud.FechaCreacion),
		Historial:     mapHistorial(det.Historial),
		Autores:       det.Autores,
		Asesores:      det.Asesores,
		Jurados:       det.Jurados,
		Coautores:     det.Coautores,
	}, nil
}

// ObtenerHistorial trae el historial aumentado con rutas. Esta vista usa la
// variante estricta de formato que no inventa zona horaria.
func ObtenerHistorial(ctx context.Context, id int64) ([]internaldto.HistorialItemDTO, error) {
	eventos, err := clients.RepositorioCRUD().GetHistorialConRutas(ctx, id)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, helpers.NewAppError(http.StatusNotFound, "solicitud no encontrada", err)
		}
		return nil, helpers.AsAppError(err, "error consultando el historial")
	}
	return mapHistorial(eventos), nil
}

// ObtenerObservaciones corre la correlación para el evento general cuya
// fecha se indica: qué documentos fueron observados alrededor de ese
// instante y con qué texto y evidencias. Un resultado vacío es válido.
func ObtenerObservaciones(ctx context.Context, id int64, fecha string) (*internaldto.ObservacionesDTO, error) {
	det, err := clients.RepositorioCRUD().GetSolicitudDetalle(ctx, id)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, helpers.NewAppError(http.StatusNotFound, "solicitud no encontrada", err)
		}
		return nil, helpers.AsAppError(err, "error consultando la solicitud")
	}

	cfg := rootservices.GetConfig()
	evento := models.HistorialEvento{
		Fecha:       fecha,
		EstadoNuevo: string(models.EstadoObservado),
	}
	docs := historial.CorrelacionarObservados(evento, det.Historial, det.Solicitud.Documentos, cfg.VentanaCorrelacion, cfg.DocumentosBaseURL)

	return &internaldto.ObservacionesDTO{
		Fecha:      historial.FormatearFechaLima(fecha),
		Documentos: docs,
	}, nil
}

// ListarSolicitudes pagina en el MID el listado que entrega el backend,
// con filtro opcional por texto en el título del proyecto.
func ListarSolicitudes(ctx context.Context, query string, page, size int) (internaldto.PageDTO[map[string]interface{}], error) {
	out := internaldto.PageDTO[map[string]interface{}]{
		Items: []map[string]interface{}{},
		Page:  page,
		Size:  size,
	}

	filtros := map[string]string{}
	raw, err := clients.RepositorioCRUD().ListSolicitudes(ctx, filtros)
	if err != nil {
		return out, helpers.AsAppError(err, "error consultando solicitudes")
	}

	q := strings.ToLower(strings.TrimSpace(query))
	filtradas := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if q != "" && !coincideBusqueda(item, q) {
			continue
		}
		if estado, ok := item["status"].(string); ok {
			norm := models.NormalizarEstado(estado)
			item["estado"] = norm
			item["estado_nombre"] = norm.Nombre()
		}
		if fecha, ok := item["application_date"].(string); ok {
			item["fecha_creacion_fmt"] = historial.FormatearFechaLima(fecha)
		}
		filtradas = append(filtradas, item)
	}

	out.Total = int64(len(filtradas))
	inicio := (page - 1) * size
	if inicio >= len(filtradas) {
		return out, nil
	}
	fin := inicio + size
	if fin > len(filtradas) {
		fin = len(filtradas)
	}
	out.Items = filtradas[inicio:fin]
	return out, nil
}

func coincideBusqueda(item map[string]interface{}, q string) bool {
	for _, campo := range []string{"project_name", "nombres", "apellidos", "professional_school"} {
		if v, ok := item[campo].(string); ok && strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func mapHistorial(eventos []models.HistorialEvento) []internaldto.HistorialItemDTO {
	items := make([]internaldto.HistorialItemDTO, 0, len(eventos))
	for _, ev := range eventos {
		nuevo := models.NormalizarEstado(ev.EstadoNuevo)
		items = append(items, internaldto.HistorialItemDTO{
			Evento:          ev,
			EstadoAnterior:  models.NormalizarEstado(ev.EstadoAnterior),
			EstadoNuevo:     nuevo,
			EstadoNombre:    nuevo.Nombre(),
			FechaLima:       historial.FormatearFechaLima(ev.Fecha),
			FechaSinZona:    historial.FormatearFechaSinZona(ev.Fecha),
			EsGeneral:       ev.EsGeneral(),
			ArchivoHistoria: strings.TrimSpace(ev.NombreArchivo),
		})
	}
	return items
}
