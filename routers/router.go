package routers

import (
	"github.com/udlperu/repositorio_mid/controllers/errorhandler"
	internalcontrollers "github.com/udlperu/repositorio_mid/internal/controllers"
	"github.com/udlperu/repositorio_mid/internal/middlewares"

	beego "github.com/beego/beego/v2/server/web"
)

func init() {
	// Manejador de errores
	beego.ErrorController(&errorhandler.ErrorHandlerController{})

	middlewares.UseAuth()

	beego.Router("/v1/solicitudes", &internalcontrollers.SolicitudesController{}, "get:GetListado")
	beego.Router("/v1/solicitudes/estudiantes", &internalcontrollers.RadicacionController{}, "post:PostEstudiantes")
	beego.Router("/v1/solicitudes/docentes", &internalcontrollers.RadicacionController{}, "post:PostDocentes")
	beego.Router("/v1/solicitudes/:id/detalle", &internalcontrollers.SolicitudesController{}, "get:GetDetalle")
	beego.Router("/v1/solicitudes/:id/historial", &internalcontrollers.SolicitudesController{}, "get:GetHistorial")
	beego.Router("/v1/solicitudes/:id/observaciones", &internalcontrollers.SolicitudesController{}, "get:GetObservaciones")
	beego.Router("/v1/solicitudes/:id/revision", &internalcontrollers.RevisionController{}, "post:PostGuardar")

	beego.Router("/v1/consulta/:codigo", &internalcontrollers.ConsultaController{}, "get:GetEstado")

	beego.Router("/v1/personas/dni/:dni", &internalcontrollers.PersonasController{}, "get:GetPorDNI")
	beego.Router("/v1/lookup/estudiantes/:codigo", &internalcontrollers.PersonasController{}, "get:GetEstudiantePorCodigo")

	beego.Router("/v1/recuperacion/solicitar", &internalcontrollers.RecuperacionController{}, "post:PostSolicitar")
	beego.Router("/v1/recuperacion/verificar", &internalcontrollers.RecuperacionController{}, "post:PostVerificar")
	beego.Router("/v1/recuperacion/restablecer", &internalcontrollers.RecuperacionController{}, "post:PostRestablecer")
	beego.Router("/v1/recuperacion/volver", &internalcontrollers.RecuperacionController{}, "post:PostVolver")

	beego.Router("/v1/catalogos/escuelas", &internalcontrollers.CatalogosController{}, "get:GetEscuelas")
}
