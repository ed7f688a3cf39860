package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ushay-etl/internal/domain"
)

// schema mirrors the Supabase tables so either sink can feed the same queries.
const schema = `
CREATE TABLE IF NOT EXISTS ushay_probes (
	run_id          text NOT NULL,
	file            text NOT NULL,
	size_bytes      bigint NOT NULL,
	pk_offset       bigint,
	zip_ok          boolean NOT NULL,
	n_adjuntos      integer NOT NULL,
	has_proceso_xml boolean NOT NULL,
	error           text NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS ushay_fields (
	run_id text NOT NULL,
	file   text NOT NULL,
	tag    text NOT NULL,
	value  text NOT NULL
);
CREATE TABLE IF NOT EXISTS ushay_sections (
	run_id           text NOT NULL,
	proceso_id       text NOT NULL,
	seccion          text NOT NULL,
	texto_original   text NOT NULL,
	pagina           integer NOT NULL,
	archivo_pdf      text NOT NULL,
	fecha_extraccion date NOT NULL
);
CREATE TABLE IF NOT EXISTS ushay_chunks (
	run_id           text NOT NULL,
	chunk_id         text PRIMARY KEY,
	proceso_id       text NOT NULL,
	seccion          text NOT NULL,
	chunk_index      integer NOT NULL,
	texto_chunk      text NOT NULL,
	tokens_count     integer NOT NULL,
	archivo_pdf      text NOT NULL,
	pagina           integer NOT NULL,
	fecha_extraccion date NOT NULL
);`

// CopyExecer is the subset of *pgxpool.Pool the sink needs.
type CopyExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresSink implements domain.RowSink with COPY into plain Postgres tables.
type PostgresSink struct {
	db     CopyExecer
	logger domain.Logger
}

// NewPostgresPool opens and pings a pgx connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

func NewPostgresSink(db CopyExecer, logger domain.Logger) *PostgresSink {
	return &PostgresSink{db: db, logger: logger}
}

func (s *PostgresSink) Name() string { return "postgres" }

// EnsureSchema creates the tables when they do not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	return nil
}

// Write copies every table of a run.
func (s *PostgresSink) Write(ctx context.Context, out *domain.BatchOutput) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	tables := []struct {
		name    string
		columns []string
		rows    [][]any
	}{
		{TableProbes, append([]string{"run_id"}, ProbeColumns...), probeValues(out)},
		{TableFields, append([]string{"run_id"}, FieldColumns...), fieldValueRows(out)},
		{TableSections, append([]string{"run_id"}, SectionColumns...), sectionValues(out)},
		{TableChunks, append([]string{"run_id"}, ChunkColumns...), chunkValues(out)},
	}

	for _, t := range tables {
		if len(t.rows) == 0 {
			continue
		}
		n, err := s.db.CopyFrom(ctx, pgx.Identifier{t.name}, t.columns, pgx.CopyFromRows(t.rows))
		if err != nil {
			return fmt.Errorf("copy into %s: %w", t.name, err)
		}
		s.logger.Debug("Postgres rows copied", "table", t.name, "rows", n)
	}
	return nil
}

func probeValues(out *domain.BatchOutput) [][]any {
	var rows [][]any
	for _, p := range out.Probes() {
		var offset any
		if p.SignatureOffset != nil {
			offset = int64(*p.SignatureOffset)
		}
		rows = append(rows, []any{
			out.RunID, p.SourceFile, int64(p.SourceByteLength), offset,
			p.ArchiveOpenable, int32(p.AttachmentCount), p.HasMetadataEntry, p.ErrorReason,
		})
	}
	return rows
}

func fieldValueRows(out *domain.BatchOutput) [][]any {
	var rows [][]any
	for _, v := range fieldValues(out.FieldRows()) {
		rows = append(rows, []any{out.RunID, v.File, v.Tag, v.Value})
	}
	return rows
}

func sectionValues(out *domain.BatchOutput) [][]any {
	var rows [][]any
	for _, r := range out.CleanSections {
		rows = append(rows, []any{
			out.RunID, r.DocumentID, string(r.SectionLabel), r.PageText,
			int32(r.PageNumber), r.SourceDocument, r.ExtractionDate,
		})
	}
	return rows
}

func chunkValues(out *domain.BatchOutput) [][]any {
	var rows [][]any
	for _, c := range out.Chunks {
		rows = append(rows, []any{
			out.RunID, c.ChunkID, c.DocumentID, string(c.SectionLabel), int32(c.ChunkIndex),
			c.Text, int32(c.TokenCount), c.SourceDocument, int32(c.PageNumber), c.ExtractionDate,
		})
	}
	return rows
}
