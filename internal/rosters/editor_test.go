package rosters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udlperu/repositorio_mid/models"
)

func autorValido() models.Autor {
	return models.Autor{
		DNI:       "40712345",
		Nombres:   "María",
		Apellidos: "Ruiz",
		Correo:    "mruiz@udlperu.edu.pe",
	}
}

func juradoValido() models.Jurado {
	return models.Jurado{DNI: "40712345", Nombres: "Hugo", Apellidos: "Paredes"}
}

func TestListaRespetoDelTecho(t *testing.T) {
	l := NewLista[models.Autor](models.MinAutores, models.MaxAutores)
	_, err := l.Agregar(autorValido())
	require.NoError(t, err)
	_, err = l.Agregar(autorValido())
	require.NoError(t, err)

	_, err = l.Agregar(autorValido())
	assert.ErrorIs(t, err, ErrListaEnMaximo)
	assert.Equal(t, 2, l.Len())
}

func TestListaRespetoDelPiso(t *testing.T) {
	l := NewLista[models.Autor](1, 2)
	id, err := l.Agregar(autorValido())
	require.NoError(t, err)

	err = l.Eliminar(id)
	assert.ErrorIs(t, err, ErrListaEnMinimo)
	assert.Equal(t, 1, l.Len())
}

func TestListaEliminarFilaInexistente(t *testing.T) {
	l := NewLista[models.Autor](0, 2)
	_, err := l.Agregar(autorValido())
	require.NoError(t, err)

	assert.ErrorIs(t, l.Eliminar("no-existe"), ErrFilaInexistente)
}

func TestEliminarNoCorreMensajesDeVecinas(t *testing.T) {
	l := NewLista[models.Jurado](0, 4)
	a, _ := l.Agregar(juradoValido())
	b, _ := l.Agregar(juradoValido())
	c, _ := l.Agregar(juradoValido())

	l.PonerMensaje("error", a, "dni duplicado")
	l.PonerMensaje("error", c, "falta cargo")
	l.PonerMensaje("aviso", b, "verificar nombre")

	require.NoError(t, l.Eliminar(b))

	// Los mensajes siguen anclados a sus filas originales.
	assert.Equal(t, "dni duplicado", l.Mensaje("error", a))
	assert.Equal(t, "falta cargo", l.Mensaje("error", c))
	// Los de la fila eliminada desaparecen en todos los canales.
	assert.Empty(t, l.Mensaje("aviso", b))
	assert.Empty(t, l.Mensaje("error", b))
}

func TestReemplazarConservaID(t *testing.T) {
	l := NewLista[models.Autor](0, 2)
	id, _ := l.Agregar(autorValido())

	v := autorValido()
	v.Nombres = "María Fernanda"
	require.NoError(t, l.Reemplazar(id, v))

	filas := l.Filas()
	require.Len(t, filas, 1)
	assert.Equal(t, id, filas[0].ID)
	assert.Equal(t, "María Fernanda", filas[0].Valor.Nombres)

	assert.ErrorIs(t, l.Reemplazar("no-existe", v), ErrFilaInexistente)
}

func TestDesdeSolicitudVerificaLimites(t *testing.T) {
	autores := []models.Autor{autorValido()}
	asesores := []models.Asesor{{DNI: "40712345", Nombres: "Luis", Apellidos: "Campos"}}
	jurados := []models.Jurado{juradoValido(), juradoValido(), juradoValido()}

	_, err := DesdeSolicitud(autores, asesores, jurados, nil)
	assert.NoError(t, err)

	// Sin autores viola el piso.
	_, err = DesdeSolicitud(nil, asesores, jurados, nil)
	assert.Error(t, err)

	// Dos jurados violan el piso de tres.
	_, err = DesdeSolicitud(autores, asesores, jurados[:2], nil)
	assert.Error(t, err)

	// Seis coautores violan el techo de cinco.
	muchos := make([]models.Coautor, 6)
	for i := range muchos {
		muchos[i] = models.Coautor{Nombres: "X", Apellidos: "Y"}
	}
	_, err = DesdeSolicitud(autores, asesores, jurados, muchos)
	assert.Error(t, err)
}

func TestValidarFilasValidasSinErrores(t *testing.T) {
	e, err := DesdeSolicitud(
		[]models.Autor{autorValido()},
		[]models.Asesor{{DNI: "40712345", Nombres: "Luis", Apellidos: "Campos"}},
		[]models.Jurado{juradoValido(), juradoValido(), juradoValido()},
		[]models.Coautor{{Rol: models.CoautorExterno, Nombres: "Eva", Apellidos: "Mora"}},
	)
	require.NoError(t, err)
	assert.Empty(t, e.Validar())
}

func TestValidarCamposPorFila(t *testing.T) {
	autorMalo := autorValido()
	autorMalo.DNI = "123"
	autorMalo.Correo = "no-es-correo"

	e, err := DesdeSolicitud(
		[]models.Autor{autorMalo},
		[]models.Asesor{{DNI: "40712345", Nombres: "Luis", Apellidos: "Campos"}},
		[]models.Jurado{juradoValido(), juradoValido(), juradoValido()},
		nil,
	)
	require.NoError(t, err)

	errores := e.Validar()
	require.NotEmpty(t, errores)

	campos := make(map[string]bool)
	for _, fe := range errores {
		assert.Equal(t, "autores", fe.Lista)
		campos[fe.Campo] = true
	}
	assert.True(t, campos["dni"])
	assert.True(t, campos["correo"])
}

func TestCoautorEstudianteInternoRequiereCodigo(t *testing.T) {
	e := NewEditor()
	_, err := e.Coautores.Agregar(models.Coautor{
		Rol: models.CoautorEstudianteInterno, Nombres: "Eva", Apellidos: "Mora",
	})
	require.NoError(t, err)

	errores := e.Validar()
	require.NotEmpty(t, errores)
	assert.Equal(t, "codigo", errores[0].Campo)
}

func TestCoautorEstudianteInternoRechazaDNI(t *testing.T) {
	e := NewEditor()
	_, err := e.Coautores.Agregar(models.Coautor{
		Rol: models.CoautorEstudianteInterno, Codigo: "201234",
		DNI: "40712345", Nombres: "Eva", Apellidos: "Mora",
	})
	require.NoError(t, err)

	errores := e.Validar()
	require.Len(t, errores, 1)
	assert.Equal(t, "dni", errores[0].Campo)
}

func TestCoautorDocenteInternoRequiereDNI(t *testing.T) {
	e := NewEditor()
	_, err := e.Coautores.Agregar(models.Coautor{
		Rol: models.CoautorDocenteInterno, Nombres: "Eva", Apellidos: "Mora",
	})
	require.NoError(t, err)

	errores := e.Validar()
	require.Len(t, errores, 1)
	assert.Equal(t, "dni", errores[0].Campo)
}

func TestCoautorExternoNoLlevaIdentificador(t *testing.T) {
	e := NewEditor()
	_, err := e.Coautores.Agregar(models.Coautor{
		Rol: models.CoautorExterno, DNI: "40712345", Nombres: "Eva", Apellidos: "Mora",
	})
	require.NoError(t, err)

	errores := e.Validar()
	require.Len(t, errores, 1)
	assert.Equal(t, "rol", errores[0].Campo)
}

func TestCoautorSinRolSeTrataComoExterno(t *testing.T) {
	e := NewEditor()
	_, err := e.Coautores.Agregar(models.Coautor{
		Codigo: "201234", Nombres: "Eva", Apellidos: "Mora",
	})
	require.NoError(t, err)

	errores := e.Validar()
	require.NotEmpty(t, errores)
	assert.Equal(t, "rol", errores[0].Campo)
}
