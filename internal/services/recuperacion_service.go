package services

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/udlperu/repositorio_mid/helpers"
	"github.com/udlperu/repositorio_mid/internal/clients"
	internaldto "github.com/udlperu/repositorio_mid/internal/dto"
	"github.com/udlperu/repositorio_mid/internal/recuperacion"
)

var (
	almacenOnce sync.Once
	almacen     *recuperacion.Almacen
)

func almacenRecuperacion() *recuperacion.Almacen {
	almacenOnce.Do(func() {
		almacen = recuperacion.NewAlmacen(0)
	})
	return almacen
}

// SolicitarRecuperacion ejecuta el paso 1: valida el correo localmente y, si
// pasa, pide al backend el envío del código. Un correo no registrado queda
// como error de campo, no como error HTTP.
func SolicitarRecuperacion(ctx context.Context, body internaldto.RecuperacionSolicitar) (*internaldto.RecuperacionEstado, error) {
	correo := strings.TrimSpace(body.Correo)
	flujo := almacenRecuperacion().Crear(correo)

	if msg := recuperacion.ValidarCorreo(correo); msg != "" {
		flujo.RegistrarError("correo", correo, msg)
		return estadoDe(flujo, ""), nil
	}

	err := clients.RepositorioCRUD().SolicitarCodigoRecuperacion(ctx, correo)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			flujo.RegistrarError("correo", correo, "el correo no está registrado")
			return estadoDe(flujo, ""), nil
		}
		return nil, helpers.AsAppError(err, "error solicitando el código de recuperación")
	}

	if err := flujo.Avanzar(recuperacion.PasoVerificarCodigo); err != nil {
		return nil, helpers.NewAppError(http.StatusConflict, "el flujo no admite esa transición", err)
	}
	return estadoDe(flujo, "código enviado al correo"), nil
}

// VerificarRecuperacion ejecuta el paso 2 contra el backend. Un código
// inválido o expirado se reporta como error de campo y el flujo permanece en
// el paso 2.
func VerificarRecuperacion(ctx context.Context, body internaldto.RecuperacionVerificar) (*internaldto.RecuperacionEstado, error) {
	flujo, ok := almacenRecuperacion().Obtener(body.Token)
	if !ok {
		return nil, helpers.NewAppError(http.StatusNotFound, "la recuperación no existe o expiró", nil)
	}
	if err := flujo.Requiere(recuperacion.PasoVerificarCodigo); err != nil {
		return nil, helpers.NewAppError(http.StatusConflict, "el flujo no está en el paso de verificación", err)
	}

	codigo := strings.TrimSpace(body.Codigo)
	flujo.DespejarSiEditado("codigo", codigo)
	if msg := recuperacion.ValidarCodigo(codigo); msg != "" {
		flujo.RegistrarError("codigo", codigo, msg)
		return estadoDe(flujo, ""), nil
	}

	err := clients.RepositorioCRUD().VerificarCodigoRecuperacion(ctx, flujo.Correo, codigo)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusBadRequest) || helpers.IsHTTPError(err, http.StatusUnauthorized) {
			flujo.RegistrarError("codigo", codigo, "el código es inválido o expiró")
			return estadoDe(flujo, ""), nil
		}
		return nil, helpers.AsAppError(err, "error verificando el código")
	}

	flujo.Codigo = codigo
	if err := flujo.Avanzar(recuperacion.PasoRestablecerClave); err != nil {
		return nil, helpers.NewAppError(http.StatusConflict, "el flujo no admite esa transición", err)
	}
	return estadoDe(flujo, "código verificado"), nil
}

// RestablecerRecuperacion ejecuta el paso 3. Si el backend ya no acepta el
// código (expiró entre pasos), el flujo rebota al paso 1 conservando el
// correo para reintentar.
func RestablecerRecuperacion(ctx context.Context, body internaldto.RecuperacionRestablecer) (*internaldto.RecuperacionEstado, error) {
	flujo, ok := almacenRecuperacion().Obtener(body.Token)
	if !ok {
		return nil, helpers.NewAppError(http.StatusNotFound, "la recuperación no existe o expiró", nil)
	}
	if err := flujo.Requiere(recuperacion.PasoRestablecerClave); err != nil {
		return nil, helpers.NewAppError(http.StatusConflict, "el flujo no está en el paso de restablecimiento", err)
	}

	flujo.DespejarSiEditado("clave", body.Clave)
	flujo.DespejarSiEditado("confirmacion", body.Confirmacion)
	if campo, msg := recuperacion.ValidarClave(body.Clave, body.Confirmacion); campo != "" {
		valor := body.Clave
		if campo == "confirmacion" {
			valor = body.Confirmacion
		}
		flujo.RegistrarError(campo, valor, msg)
		return estadoDe(flujo, ""), nil
	}

	err := clients.RepositorioCRUD().RestablecerClave(ctx, flujo.Correo, flujo.Codigo, body.Clave)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusBadRequest) || helpers.IsHTTPError(err, http.StatusUnauthorized) {
			flujo.Rebotar()
			return estadoDe(flujo, "el código expiró, solicite uno nuevo"), nil
		}
		return nil, helpers.AsAppError(err, "error restableciendo la clave")
	}

	almacenRecuperacion().Eliminar(flujo.Token)
	return &internaldto.RecuperacionEstado{
		Paso:    int(recuperacion.PasoSolicitarCodigo),
		Mensaje: "la clave fue restablecida",
	}, nil
}

// VolverRecuperacion retrocede del paso 2 al 1 descartando código y errores.
func VolverRecuperacion(body internaldto.RecuperacionVolver) (*internaldto.RecuperacionEstado, error) {
	flujo, ok := almacenRecuperacion().Obtener(body.Token)
	if !ok {
		return nil, helpers.NewAppError(http.StatusNotFound, "la recuperación no existe o expiró", nil)
	}
	if err := flujo.Volver(); err != nil {
		return nil, helpers.NewAppError(http.StatusConflict, "solo se puede volver desde la verificación", err)
	}
	return estadoDe(flujo, ""), nil
}

func estadoDe(f *recuperacion.Flujo, mensaje string) *internaldto.RecuperacionEstado {
	return &internaldto.RecuperacionEstado{
		Token:   f.Token,
		Paso:    int(f.Paso),
		Correo:  f.Correo,
		Errores: f.Errores(),
		Mensaje: mensaje,
	}
}
