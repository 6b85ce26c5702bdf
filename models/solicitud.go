package models

import (
	"encoding/json"
	"strings"
)

// Solicitud es la vista de solo lectura de una solicitud de publicación.
// El backend es dueño del registro; el MID solo lee y re-deriva vistas.
type Solicitud struct {
	Id                 int64       `json:"id"`
	Nombres            string      `json:"nombres"`
	Apellidos          string      `json:"apellidos"`
	EscuelaProfesional string      `json:"escuela_profesional"`
	TituloProyecto     string      `json:"titulo_proyecto"`
	TipoSolicitud      string      `json:"tipo_solicitud"`
	Estado             Estado      `json:"estado"`
	EstadoNombre       string      `json:"estado_nombre"`
	FechaCreacion      string      `json:"fecha_creacion"`
	EnlacePublicacion  string      `json:"enlace_publicacion,omitempty"`
	Documentos         []Documento `json:"documentos"`
}

// Documento es un adjunto requerido dentro de una solicitud. Su estado se
// muta de forma independiente al estado agregado de la solicitud.
type Documento struct {
	Id            int64  `json:"id"`
	Tipo          string `json:"tipo"`
	Estado        Estado `json:"estado"`
	EstadoNombre  string `json:"estado_nombre"`
	RutaArchivo   string `json:"ruta_archivo"`
	NombreArchivo string `json:"nombre_archivo"`
	Tamano        int64  `json:"tamano,omitempty"`
}

// HistorialEvento es un registro inmutable de una transición de estado.
// DocumentoId nil significa evento general (a nivel de solicitud); presente,
// evento a nivel de documento. El backend NO garantiza llave foránea ni
// igualdad exacta de timestamps entre el evento general "observado" y los
// eventos de documento que lo causaron; solo hay proximidad temporal.
type HistorialEvento struct {
	Fecha          string            `json:"fecha_cambio"`
	EstadoAnterior string            `json:"estado_anterior"`
	EstadoNuevo    string            `json:"estado_nuevo"`
	DocumentoId    *int64            `json:"documento_id,omitempty"`
	Comentario     string            `json:"comentario,omitempty"`
	RazonRechazo   string            `json:"razon_rechazo,omitempty"`
	Observacion    string            `json:"observacion,omitempty"`
	Observaciones  string            `json:"observaciones,omitempty"`
	RutaArchivo    string            `json:"ruta_archivo,omitempty"`
	NombreArchivo  string            `json:"nombre_archivo,omitempty"`
	Imagenes       []ImagenEvidencia `json:"imagenes,omitempty"`
}

// EsGeneral indica si el evento es una transición a nivel de solicitud.
func (e HistorialEvento) EsGeneral() bool {
	return e.DocumentoId == nil
}

// ImagenEvidencia es una captura adjunta a un evento de documento. El backend
// la entrega como objeto {image_path|path|url, file_name|name} o como una
// cadena con la ruta; ambas formas deben aceptarse.
type ImagenEvidencia struct {
	Ruta   string `json:"image_path"`
	Nombre string `json:"file_name,omitempty"`
}

// UnmarshalJSON acepta tanto la forma objeto como la cadena simple.
func (i *ImagenEvidencia) UnmarshalJSON(data []byte) error {
	var ruta string
	if err := json.Unmarshal(data, &ruta); err == nil {
		i.Ruta = strings.TrimSpace(ruta)
		i.Nombre = ""
		return nil
	}

	var obj struct {
		ImagePath string `json:"image_path"`
		Path      string `json:"path"`
		URL       string `json:"url"`
		FileName  string `json:"file_name"`
		Name      string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	i.Ruta = strings.TrimSpace(primeraNoVacia(obj.ImagePath, obj.Path, obj.URL))
	i.Nombre = strings.TrimSpace(primeraNoVacia(obj.FileName, obj.Name))
	return nil
}

func primeraNoVacia(valores ...string) string {
	for _, v := range valores {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Persona es el resultado normalizado de una búsqueda por DNI o código.
type Persona struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
}
