package historial

import (
	"time"

	"github.com/beego/beego/v2/core/logs"

	"github.com/udlperu/repositorio_mid/helpers"
	"github.com/udlperu/repositorio_mid/models"
)

// VentanaDefecto es la tolerancia con la que se asocia un evento general
// "observado" con los eventos de documento que presumiblemente lo causaron.
// Es una heurística afinada al ritmo de revisión de los administradores
// (varios documentos revisados en una sesión y luego un evento agregado),
// no una invariante; por eso se recibe por parámetro.
const VentanaDefecto = 10 * time.Minute

// DocumentoObservado es un documento correlacionado con su evento de
// observación, el texto ya limpio y las evidencias resueltas a URL.
type DocumentoObservado struct {
	Documento models.Documento       `json:"documento"`
	Evento    models.HistorialEvento `json:"evento"`
	Texto     string                 `json:"texto"`
	Imagenes  []string               `json:"imagenes"`
}

// CorrelacionarObservados reconstruye, para un evento general cuyo estado
// nuevo es "observado", qué documentos y evidencias le pertenecen. El log de
// historial es plano: no existe llave foránea entre el evento agregado y los
// eventos de documento, así que la única señal disponible es la proximidad
// temporal dentro de la ventana (simétrica, antes o después).
func CorrelacionarObservados(evento models.HistorialEvento, historial []models.HistorialEvento, documentos []models.Documento, ventana time.Duration, baseDocumentos string) []DocumentoObservado {
	if ventana <= 0 {
		ventana = VentanaDefecto
	}

	t := NormalizarFecha(evento.Fecha)
	if t.IsZero() {
		// Sin instante de referencia no hay correlación posible.
		return []DocumentoObservado{}
	}

	// Mejor evento por documento dentro de la ventana; empata el más cercano.
	type candidato struct {
		evento    models.HistorialEvento
		distancia time.Duration
	}
	mejores := make(map[int64]candidato)
	orden := make([]int64, 0)

	for _, ev := range historial {
		if ev.EsGeneral() {
			continue
		}
		if models.NormalizarEstado(ev.EstadoNuevo) != models.EstadoObservado {
			continue
		}
		te := NormalizarFecha(ev.Fecha)
		if te.IsZero() {
			continue
		}
		d := te.Sub(t)
		if d < 0 {
			d = -d
		}
		if d > ventana {
			continue
		}
		docID := *ev.DocumentoId
		actual, visto := mejores[docID]
		if !visto {
			orden = append(orden, docID)
		}
		if !visto || d < actual.distancia {
			mejores[docID] = candidato{evento: ev, distancia: d}
		}
	}

	porID := make(map[int64]models.Documento, len(documentos))
	for _, doc := range documentos {
		porID[doc.Id] = doc
	}

	resultado := make([]DocumentoObservado, 0, len(mejores))
	for _, docID := range orden {
		cand := mejores[docID]
		doc, ok := porID[docID]
		if !ok {
			// El historial referencia un documento que ya no está en la
			// solicitud; se descarta sin abortar la correlación.
			logs.Warn("correlación: evento sin documento asociado, documento_id=%d", docID)
			continue
		}
		resultado = append(resultado, DocumentoObservado{
			Documento: doc,
			Evento:    cand.evento,
			Texto:     ExtraerObservacion(cand.evento),
			Imagenes:  resolverImagenes(cand.evento.Imagenes, baseDocumentos),
		})
	}
	return resultado
}

func resolverImagenes(imagenes []models.ImagenEvidencia, base string) []string {
	urls := make([]string, 0, len(imagenes))
	for _, img := range imagenes {
		if url := helpers.ResolverRutaDocumento(base, img.Ruta); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
