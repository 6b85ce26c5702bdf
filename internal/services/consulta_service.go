package services

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/udlperu/repositorio_mid/helpers"
	"github.com/udlperu/repositorio_mid/internal/clients"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	internalhelpers "github.com/udlperu/repositorio_mid/internal/helpers"
	"github.com/udlperu/repositorio_mid/internal/historial"
	"github.com/udlperu/repositorio_mid/models"
)

// ConsultarEstado arma la vista pública de seguimiento: estado vigente,
// título y, si la solicitud ya fue publicada, el enlace verificado. Nunca
// expone documentos ni historial.
func ConsultarEstado(ctx context.Context, codigo string) (*internaldto.ConsultaPublicaDTO, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(codigo), 10, 64)
	if err != nil || id <= 0 {
		return nil, helpers.NewAppError(http.StatusBadRequest, "código de seguimiento inválido", err)
	}

	det, err := clients.RepositorioCRUD().GetSolicitudDetalle(ctx, id)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, helpers.NewAppError(http.StatusNotFound, "no existe una solicitud con ese código", err)
		}
		return nil, helpers.AsAppError(err, "error consultando la solicitud")
	}

	sol := det.Solicitud
	out := &internaldto.ConsultaPublicaDTO{
		Id:             sol.Id,
		TituloProyecto: sol.TituloProyecto,
		Estado:         sol.Estado,
		EstadoNombre:   sol.Estado.Nombre(),
		FechaCreacion:  historial.FormatearFechaLima(sol.FechaCreacion),
	}

	if sol.Estado == models.EstadoPublicado && strings.TrimSpace(sol.EnlacePublicacion) != "" {
		enlace := internalhelpers.Documentos.Resolver(sol.EnlacePublicacion)
		out.EnlacePublicacion = enlace
		out.EnlaceDisponible = internalhelpers.Documentos.Disponible(enlace)
	}
	return out, nil
}
