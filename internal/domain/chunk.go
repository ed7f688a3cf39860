package domain

import "time"

// ChunkRecord is a token window cut from a section record's text.
type ChunkRecord struct {
	ChunkID        string       `json:"chunk_id"`
	DocumentID     string       `json:"proceso_id"`
	SectionLabel   SectionLabel `json:"seccion"`
	ChunkIndex     int          `json:"chunk_index"`
	Text           string       `json:"texto_chunk"`
	TokenCount     int          `json:"tokens_count"`
	SourceDocument string       `json:"archivo_pdf"`
	PageNumber     int          `json:"pagina"`
	ExtractionDate time.Time    `json:"fecha_extraccion"`
}
