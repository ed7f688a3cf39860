package repository

import (
	"strconv"

	"ushay-etl/internal/domain"
)

// Column layouts shared by every output. Names match the curated corpus
// columns that downstream notebooks read.
var (
	ProbeColumns    = []string{"file", "size_bytes", "pk_offset", "zip_ok", "n_adjuntos", "has_proceso_xml", "error"}
	SectionColumns  = []string{"proceso_id", "seccion", "texto_original", "pagina", "archivo_pdf", "fecha_extraccion"}
	ChunkColumns    = []string{"chunk_id", "proceso_id", "seccion", "chunk_index", "texto_chunk", "tokens_count", "archivo_pdf", "pagina", "fecha_extraccion"}
	ContentsColumns = []string{"archivo_ushay", "archivo_interno"}
	FieldColumns    = []string{"file", "tag", "value"}
)

func probeRecord(p domain.ContainerProbe) []string {
	offset := ""
	if p.SignatureOffset != nil {
		offset = strconv.Itoa(*p.SignatureOffset)
	}
	return []string{
		p.SourceFile,
		strconv.Itoa(p.SourceByteLength),
		offset,
		strconv.FormatBool(p.ArchiveOpenable),
		strconv.Itoa(p.AttachmentCount),
		strconv.FormatBool(p.HasMetadataEntry),
		p.ErrorReason,
	}
}

func sectionRecord(s domain.SectionRecord) []string {
	return []string{
		s.DocumentID,
		string(s.SectionLabel),
		s.PageText,
		strconv.Itoa(s.PageNumber),
		s.SourceDocument,
		s.ExtractionDate.Format(domain.ExtractionDateLayout),
	}
}

func chunkRecord(c domain.ChunkRecord) []string {
	return []string{
		c.ChunkID,
		c.DocumentID,
		string(c.SectionLabel),
		strconv.Itoa(c.ChunkIndex),
		c.Text,
		strconv.Itoa(c.TokenCount),
		c.SourceDocument,
		strconv.Itoa(c.PageNumber),
		c.ExtractionDate.Format(domain.ExtractionDateLayout),
	}
}

func contentsRecord(c domain.ContentsEntry) []string {
	return []string{c.ContainerFile, c.EntryName}
}

// FieldHeader returns the wide fields.csv header: "file" followed by either
// the wanted keys or the union of every tag seen, in first-seen order.
func FieldHeader(rows []domain.FieldRow, wanted []string) []string {
	header := []string{"file"}
	if wanted != nil {
		return append(header, wanted...)
	}
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, tag := range r.Fields.Tags() {
			if !seen[tag] {
				seen[tag] = true
				header = append(header, tag)
			}
		}
	}
	return header
}

func fieldRecord(r domain.FieldRow, header []string) []string {
	out := make([]string, len(header))
	out[0] = r.SourceFile
	for i, tag := range header[1:] {
		out[i+1], _ = r.Fields.Get(tag)
	}
	return out
}

// Long-format rows for the database sinks, one row per (file, tag).
type fieldValue struct {
	File  string
	Tag   string
	Value string
}

func fieldValues(rows []domain.FieldRow) []fieldValue {
	var out []fieldValue
	for _, r := range rows {
		for _, f := range r.Fields.List() {
			out = append(out, fieldValue{File: r.SourceFile, Tag: f.Tag, Value: f.Value})
		}
	}
	return out
}
