package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/beego/beego/v2/core/logs"

	"github.com/udlperu/repositorio_mid/helpers"
	"github.com/udlperu/repositorio_mid/internal/clients"
	"github.com/udlperu/repositorio_mid/internal/revision"
)

// GuardarRevision valida y persiste las decisiones de revisión. El guardado
// es best-effort documento por documento; el estado agregado de la solicitud
// solo se actualiza cuando todos los documentos se guardaron.
func GuardarRevision(ctx context.Context, solicitudID int64, decisiones []revision.Decision) (*revision.Resumen, error) {
	if err := revision.Validar(decisiones); err != nil {
		return nil, helpers.NewAppError(http.StatusBadRequest, err.Error(), err)
	}

	det, err := clients.RepositorioCRUD().GetSolicitudDetalle(ctx, solicitudID)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, helpers.NewAppError(http.StatusNotFound, "solicitud no encontrada", err)
		}
		return nil, helpers.AsAppError(err, "error consultando la solicitud")
	}

	// Solo se envían los documentos con decisión tomada; las filas
	// pendientes no deben resetear el estado en el backend ni inflar
	// el conteo del resumen.
	porEnviar := revision.Decididas(decisiones)

	resumen := revision.Resumen{}
	for _, d := range porEnviar {
		resumen.Total++
		imgs, err := imagenesAdjuntas(d)
		if err == nil {
			err = clients.RepositorioCRUD().PatchDocumentoRevision(ctx, d.DocumentoId, d.Estado, d.Observacion, imgs)
		}
		if err != nil {
			logs.Warn("revisión: fallo guardando el documento %d de la solicitud %d: %v", d.DocumentoId, solicitudID, err)
			resumen.Fallidos = append(resumen.Fallidos, d.DocumentoId)
			resumen.Errores = append(resumen.Errores, fmt.Sprintf("documento %d: %v", d.DocumentoId, err))
			continue
		}
		resumen.Exitosos++
	}

	if !resumen.Completo() {
		return &resumen, nil
	}

	agregado := revision.CalcularAgregado(porEnviar, len(det.Solicitud.Documentos))
	observaciones := concatenarObservaciones(porEnviar)
	if err := clients.RepositorioCRUD().PatchSolicitudRevision(ctx, solicitudID, agregado, observaciones); err != nil {
		return &resumen, helpers.AsAppError(err, "los documentos se guardaron pero el estado agregado no pudo actualizarse")
	}
	return &resumen, nil
}

// imagenesAdjuntas decodifica las capturas de evidencia enviadas como data
// URLs o base64 plano.
func imagenesAdjuntas(d revision.Decision) ([]helpers.MultipartFile, error) {
	files := make([]helpers.MultipartFile, 0, len(d.Imagenes))
	for i, img := range d.Imagenes {
		datos := img
		if idx := strings.Index(datos, ","); idx >= 0 && strings.HasPrefix(datos, "data:") {
			datos = datos[idx+1:]
		}
		contenido, err := base64.StdEncoding.DecodeString(datos)
		if err != nil {
			return nil, fmt.Errorf("imagen %d ilegible: %w", i, err)
		}
		files = append(files, helpers.MultipartFile{
			Nombre:    fmt.Sprintf("evidencia_%d_%d.png", d.DocumentoId, i),
			Contenido: contenido,
		})
	}
	return files, nil
}

func concatenarObservaciones(decisiones []revision.Decision) string {
	var partes []string
	for _, d := range decisiones {
		if txt := strings.TrimSpace(d.Observacion); txt != "" {
			partes = append(partes, txt)
		}
	}
	return strings.Join(partes, "\n")
}
