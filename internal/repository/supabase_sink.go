package repository

import (
	"context"
	"fmt"

	"ushay-etl/internal/domain"
)

// Supabase table names.
const (
	TableProbes   = "ushay_probes"
	TableFields   = "ushay_fields"
	TableSections = "ushay_sections"
	TableChunks   = "ushay_chunks"
)

const defaultInsertBatch = 500

// TableInserter inserts a slice of rows into a table.
type TableInserter interface {
	Insert(table string, rows interface{}) error
}

// SupabaseSink implements domain.RowSink on Supabase tables via PostgREST.
type SupabaseSink struct {
	client    TableInserter
	logger    domain.Logger
	batchSize int
}

// NewSupabaseSink creates a new Supabase row sink
func NewSupabaseSink(client TableInserter, logger domain.Logger) *SupabaseSink {
	return &SupabaseSink{
		client:    client,
		logger:    logger,
		batchSize: defaultInsertBatch,
	}
}

func (s *SupabaseSink) Name() string { return "supabase" }

// Write inserts the probes, fields, cleaned sections and chunks of a run.
func (s *SupabaseSink) Write(ctx context.Context, out *domain.BatchOutput) error {
	tables := []struct {
		name string
		rows []map[string]interface{}
	}{
		{TableProbes, probeRows(out)},
		{TableFields, fieldRows(out)},
		{TableSections, sectionRows(out)},
		{TableChunks, chunkRows(out)},
	}

	for _, t := range tables {
		for start := 0; start < len(t.rows); start += s.batchSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			end := start + s.batchSize
			if end > len(t.rows) {
				end = len(t.rows)
			}
			if err := s.client.Insert(t.name, t.rows[start:end]); err != nil {
				return fmt.Errorf("failed to insert %s rows: %w", t.name, err)
			}
		}
		s.logger.Debug("Supabase rows inserted", "table", t.name, "rows", len(t.rows))
	}
	return nil
}

func probeRows(out *domain.BatchOutput) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(out.Results))
	for _, p := range out.Probes() {
		rows = append(rows, map[string]interface{}{
			"run_id":          out.RunID,
			"file":            p.SourceFile,
			"size_bytes":      p.SourceByteLength,
			"pk_offset":       p.SignatureOffset,
			"zip_ok":          p.ArchiveOpenable,
			"n_adjuntos":      p.AttachmentCount,
			"has_proceso_xml": p.HasMetadataEntry,
			"error":           p.ErrorReason,
		})
	}
	return rows
}

func fieldRows(out *domain.BatchOutput) []map[string]interface{} {
	values := fieldValues(out.FieldRows())
	rows := make([]map[string]interface{}, 0, len(values))
	for _, v := range values {
		rows = append(rows, map[string]interface{}{
			"run_id": out.RunID,
			"file":   v.File,
			"tag":    v.Tag,
			"value":  v.Value,
		})
	}
	return rows
}

func sectionRows(out *domain.BatchOutput) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(out.CleanSections))
	for _, s := range out.CleanSections {
		rows = append(rows, map[string]interface{}{
			"run_id":           out.RunID,
			"proceso_id":       s.DocumentID,
			"seccion":          string(s.SectionLabel),
			"texto_original":   s.PageText,
			"pagina":           s.PageNumber,
			"archivo_pdf":      s.SourceDocument,
			"fecha_extraccion": s.ExtractionDate.Format(domain.ExtractionDateLayout),
		})
	}
	return rows
}

func chunkRows(out *domain.BatchOutput) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(out.Chunks))
	for _, c := range out.Chunks {
		rows = append(rows, map[string]interface{}{
			"run_id":           out.RunID,
			"chunk_id":         c.ChunkID,
			"proceso_id":       c.DocumentID,
			"seccion":          string(c.SectionLabel),
			"chunk_index":      c.ChunkIndex,
			"texto_chunk":      c.Text,
			"tokens_count":     c.TokenCount,
			"archivo_pdf":      c.SourceDocument,
			"pagina":           c.PageNumber,
			"fecha_extraccion": c.ExtractionDate.Format(domain.ExtractionDateLayout),
		})
	}
	return rows
}
