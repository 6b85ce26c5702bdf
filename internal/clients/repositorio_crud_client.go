package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/udlperu/repositorio_mid/helpers"
	"github.com/udlperu/repositorio_mid/models"
	rootservices "github.com/udlperu/repositorio_mid/services"
)

// RepositorioCRUDClient envuelve las operaciones contra el backend del
// repositorio institucional que necesita el MID.
type RepositorioCRUDClient struct {
	cfg rootservices.Config
}

var (
	repoClient     *RepositorioCRUDClient
	repoClientOnce sync.Once
)

// RepositorioCRUD devuelve un cliente singleton listo para llamar al backend.
func RepositorioCRUD() *RepositorioCRUDClient {
	repoClientOnce.Do(func() {
		repoClient = &RepositorioCRUDClient{
			cfg: rootservices.GetConfig(),
		}
	})
	return repoClient
}

// GetSolicitudDetalle trae el detalle completo de una solicitud: datos
// generales, documentos, historial y listas de personas.
func (c *RepositorioCRUDClient) GetSolicitudDetalle(ctx context.Context, id int64) (*SolicitudDetalle, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.RepositorioBaseURL, "applications", "details", strconv.FormatInt(id, 10))

	var raw solicitudDetalleRecord
	if err := helpers.DoJSON("GET", endpoint, nil, &raw, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	det := mapSolicitudDetalle(raw)
	return &det, nil
}

// GetHistorialConRutas trae el historial aumentado con rutas y nombres de
// archivo históricos por evento de documento.
func (c *RepositorioCRUDClient) GetHistorialConRutas(ctx context.Context, id int64) ([]models.HistorialEvento, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.RepositorioBaseURL, "applications", strconv.FormatInt(id, 10), "history-with-paths")

	var raw []models.HistorialEvento
	if err := helpers.DoJSON("GET", endpoint, nil, &raw, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	return raw, nil
}

// ListSolicitudes lista solicitudes aplicando filtros simples del backend.
func (c *RepositorioCRUDClient) ListSolicitudes(ctx context.Context, filtros map[string]string) ([]map[string]interface{}, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.RepositorioBaseURL, "applications")
	if encoded := encodeFiltros(filtros); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}

	var raw []map[string]interface{}
	if err := helpers.DoJSON("GET", endpoint, nil, &raw, c.cfg.RequestTimeout); err != nil {
		return nil, err
	}
	return raw, nil
}

// PatchDocumentoRevision envía la decisión sobre un documento: estado,
// observación y capturas de evidencia, como formulario multipart.
func (c *RepositorioCRUDClient) PatchDocumentoRevision(ctx context.Context, documentoID int64, estado models.Estado, observacion string, imagenes []helpers.MultipartFile) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	endpoint := rootservices.BuildURL(c.cfg.RepositorioBaseURL, "applications", "documents", strconv.FormatInt(documentoID, 10), "review")

	fields := map[string]string{
		"status": string(estado),
	}
	if note := strings.TrimSpace(observacion); note != "" {
		fields["observation"] = note
	}
	files := make(map[string]helpers.MultipartFile, len(imagenes))
	for i, img := range imagenes {
		files[fmt.Sprintf("images[%d]", i)] = img
	}

	var resp map[string]interface{}
	return helpers.DoMultipart("PATCH", endpoint, nil, fields, files, &resp, c.cfg.RequestTimeout, true)
}

// PatchSolicitudRevision actualiza el estado agregado de la solicitud.
func (c *RepositorioCRUDClient) PatchSolicitudRevision(ctx context.Context, solicitudID int64, estado models.Estado, observaciones string) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	endpoint := rootservices.BuildURL(c.cfg.RepositorioBaseURL, "applications", strconv.FormatInt(solicitudID, 10), "review")

	body := map[string]interface{}{
		"status": string(estado),
	}
	if note := strings.TrimSpace(observaciones); note != "" {
		body["observations"] = note
	}

	var resp map[string]interface{}
	return helpers.DoJSONWithHeaders("PATCH", endpoint, nil, body, &resp, c.cfg.RequestTimeout, true)
}

// GetPersonaPorDNI consulta el padrón de personas. Devuelve nil sin error
// cuando la persona no existe (404 funcional).
func (c *RepositorioCRUDClient) GetPersonaPorDNI(ctx context.Context, dni string) (map[string]interface{}, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.RepositorioBaseURL, "personas", "dni", dni)

	var raw map[string]interface{}
	if err := helpers.DoJSON("GET", endpoint, nil, &raw, c.cfg.RequestTimeout); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// GetEstudiantePorCodigo consulta el registro de estudiantes por código de
// matrícula. Devuelve nil sin error cuando no existe.
func (c *RepositorioCRUDClient) GetEstudiantePorCodigo(ctx context.Context, codigo string) (map[string]interface{}, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.RepositorioBaseURL, "lookup", "students", codigo)

	var raw map[string]interface{}
	if err := helpers.DoJSON("GET", endpoint, nil, &raw, c.cfg.RequestTimeout); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// CrearSolicitud radica una solicitud nueva. Las listas de personas viajan
// como sub-objetos JSON serializados dentro del formulario multipart, junto
// con los archivos adjuntos, tal como lo espera el backend.
func (c *RepositorioCRUDClient) CrearSolicitud(ctx context.Context, tipo string, campos map[string]interface{}, archivos map[string]helpers.MultipartFile) (int64, error) {
	if err := ctxErr(ctx); err != nil {
		return 0, err
	}
	recurso := "students"
	if tipo == models.TipoSolicitudDocente {
		recurso = "teachers"
	}
	endpoint := rootservices.BuildURL(c.cfg.RepositorioBaseURL, "applications", recurso)

	fields := make(map[string]string, len(campos))
	for k, v := range campos {
		switch val := v.(type) {
		case string:
			fields[k] = val
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return 0, err
			}
			fields[k] = string(b)
		}
	}

	var data struct {
		ApplicationId int64 `json:"applicationId"`
	}
	if err := helpers.DoMultipart("POST", endpoint, nil, fields, archivos, &data, c.cfg.RequestTimeout, true); err != nil {
		return 0, err
	}
	return data.ApplicationId, nil
}

// SolicitarCodigoRecuperacion pide el envío del código al correo dado.
func (c *RepositorioCRUDClient) SolicitarCodigoRecuperacion(ctx context.Context, correo string) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	endpoint := rootservices.BuildURL(c.cfg.AuthBaseURL, "auth", "forgot-password")
	body := map[string]string{"email": strings.TrimSpace(correo)}
	var resp map[string]interface{}
	return helpers.DoJSONWithHeaders("POST", endpoint, nil, body, &resp, c.cfg.RequestTimeout, true)
}

// VerificarCodigoRecuperacion valida el código de 6 caracteres.
func (c *RepositorioCRUDClient) VerificarCodigoRecuperacion(ctx context.Context, correo, codigo string) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	endpoint := rootservices.BuildURL(c.cfg.AuthBaseURL, "auth", "verify-code")
	body := map[string]string{
		"email": strings.TrimSpace(correo),
		"code":  strings.TrimSpace(codigo),
	}
	var resp map[string]interface{}
	return helpers.DoJSONWithHeaders("POST", endpoint, nil, body, &resp, c.cfg.RequestTimeout, true)
}

// RestablecerClave fija la clave nueva usando el código vigente.
func (c *RepositorioCRUDClient) RestablecerClave(ctx context.Context, correo, codigo, clave string) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	endpoint := rootservices.BuildURL(c.cfg.AuthBaseURL, "auth", "reset-password")
	body := map[string]string{
		"email":    strings.TrimSpace(correo),
		"code":     strings.TrimSpace(codigo),
		"password": clave,
	}
	var resp map[string]interface{}
	return helpers.DoJSONWithHeaders("POST", endpoint, nil, body, &resp, c.cfg.RequestTimeout, true)
}

// ---------- mapeo de registros crudos ----------

// SolicitudDetalle es el detalle mapeado con estados normalizados.
type SolicitudDetalle struct {
	Solicitud models.Solicitud
	Historial []models.HistorialEvento
	Autores   []models.Autor
	Asesores  []models.Asesor
	Jurados   []models.Jurado
	Coautores []models.Coautor
}

type solicitudDetalleRecord struct {
	Id                 int64                    `json:"id"`
	Status             string                   `json:"status"`
	Nombres            string                   `json:"nombres"`
	Apellidos          string                   `json:"apellidos"`
	ProfessionalSchool string                   `json:"professional_school"`
	ProjectName        string                   `json:"project_name"`
	ApplicationType    string                   `json:"application_type"`
	ApplicationDate    string                   `json:"application_date"`
	PublishedLink      string                   `json:"published_thesis_link"`
	Documents          []documentoRecord        `json:"documents"`
	History            []models.HistorialEvento `json:"history"`
	Authors            []models.Autor           `json:"authors"`
	Advisors           []models.Asesor          `json:"advisors"`
	Jury               []models.Jurado          `json:"jury"`
	Coauthors          []models.Coautor         `json:"coauthors"`
}

type documentoRecord struct {
	Id       int64           `json:"id"`
	Type     string          `json:"type"`
	Status   string          `json:"status"`
	FilePath string          `json:"file_path"`
	FileName string          `json:"file_name"`
	Size     json.RawMessage `json:"size"`
}

func mapSolicitudDetalle(raw solicitudDetalleRecord) SolicitudDetalle {
	estado := models.NormalizarEstado(raw.Status)
	sol := models.Solicitud{
		Id:                 raw.Id,
		Nombres:            strings.TrimSpace(raw.Nombres),
		Apellidos:          strings.TrimSpace(raw.Apellidos),
		EscuelaProfesional: strings.TrimSpace(raw.ProfessionalSchool),
		TituloProyecto:     strings.TrimSpace(raw.ProjectName),
		TipoSolicitud:      strings.TrimSpace(raw.ApplicationType),
		Estado:             estado,
		EstadoNombre:       estado.Nombre(),
		FechaCreacion:      strings.TrimSpace(raw.ApplicationDate),
		EnlacePublicacion:  strings.TrimSpace(raw.PublishedLink),
	}
	sol.Documentos = make([]models.Documento, 0, len(raw.Documents))
	for _, d := range raw.Documents {
		sol.Documentos = append(sol.Documentos, mapDocumento(d))
	}
	return SolicitudDetalle{
		Solicitud: sol,
		Historial: raw.History,
		Autores:   raw.Authors,
		Asesores:  raw.Advisors,
		Jurados:   raw.Jury,
		Coautores: raw.Coauthors,
	}
}

func mapDocumento(raw documentoRecord) models.Documento {
	estado := models.NormalizarEstado(raw.Status)
	doc := models.Documento{
		Id:            raw.Id,
		Tipo:          strings.TrimSpace(raw.Type),
		Estado:        estado,
		EstadoNombre:  estado.Nombre(),
		RutaArchivo:   strings.TrimSpace(raw.FilePath),
		NombreArchivo: strings.TrimSpace(raw.FileName),
	}
	if tam, ok := normalizeToInt64(decodeRaw(raw.Size)); ok {
		doc.Tamano = tam
	}
	return doc
}

func decodeRaw(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func encodeFiltros(filtros map[string]string) string {
	values := url.Values{}
	for k, v := range filtros {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		values.Set(k, trimmed)
	}
	return values.Encode()
}

func normalizeToInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case json.Number:
		if parsed, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return parsed, true
		}
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			if parsed, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
