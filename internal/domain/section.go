package domain

import "time"

// SectionLabel names a canonical part of a procurement document.
type SectionLabel string

const (
	SectionConvocatoria             SectionLabel = "CONVOCATORIA"
	SectionObjetoContratacion       SectionLabel = "OBJETO_CONTRATACION"
	SectionCondicionesProcedimiento SectionLabel = "CONDICIONES_PROCEDIMIENTO"
	SectionVerificacionEvaluacion   SectionLabel = "VERIFICACION_EVALUACION"
	SectionPuja                     SectionLabel = "PUJA"
	SectionObligacionesPartes       SectionLabel = "OBLIGACIONES_PARTES"
	SectionFormularios              SectionLabel = "FORMULARIOS"
)

// ExtractionDateLayout is the date layout used for extraction dates in output rows.
const ExtractionDateLayout = "2006-01-02"

// SectionRecord tags one page of the primary document with one section label.
type SectionRecord struct {
	DocumentID     string       `json:"proceso_id"`
	SectionLabel   SectionLabel `json:"seccion"`
	PageText       string       `json:"texto_original"`
	PageNumber     int          `json:"pagina"`
	SourceDocument string       `json:"archivo_pdf"`
	ExtractionDate time.Time    `json:"fecha_extraccion"`
}

// Page is the raw text of one page of a rendered document, 1-indexed.
type Page struct {
	Number int
	Text   string
}
