package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"ushay-etl/internal/domain"
)

// Output names one CSV artifact of a batch run.
type Output string

const (
	OutputProbes        Output = "probes.csv"
	OutputFields        Output = "fields.csv"
	OutputSections      Output = "sections.csv"
	OutputSectionsClean Output = "sections_clean.csv"
	OutputChunks        Output = "chunks.csv"
	OutputContents      Output = "contents_index.csv"
)

// AllOutputs is every artifact, in the order they are written.
var AllOutputs = []Output{
	OutputProbes, OutputFields, OutputContents, OutputSections, OutputSectionsClean, OutputChunks,
}

// CSVWriter implements domain.ArtifactWriter with one UTF-8 CSV file per
// output, each with a header row.
type CSVWriter struct {
	dir     string
	outputs []Output
	wanted  []string
	logger  domain.Logger
}

// NewCSVWriter writes outputs into dir. A non-nil wanted list restricts
// fields.csv to those columns.
func NewCSVWriter(dir string, outputs []Output, wanted []string, logger domain.Logger) *CSVWriter {
	if len(outputs) == 0 {
		outputs = AllOutputs
	}
	return &CSVWriter{dir: dir, outputs: outputs, wanted: wanted, logger: logger}
}

// WriteArtifacts implements domain.ArtifactWriter.
func (w *CSVWriter) WriteArtifacts(ctx context.Context, out *domain.BatchOutput) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var paths []string
	for _, o := range w.outputs {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		header, records := w.table(o, out)
		p := filepath.Join(w.dir, string(o))
		if err := writeCSV(p, header, records); err != nil {
			return paths, err
		}
		w.logger.Info("CSV written", "path", p, "rows", len(records))
		paths = append(paths, p)
	}
	return paths, nil
}

func (w *CSVWriter) table(o Output, out *domain.BatchOutput) ([]string, [][]string) {
	var records [][]string
	switch o {
	case OutputProbes:
		for _, p := range out.Probes() {
			records = append(records, probeRecord(p))
		}
		return ProbeColumns, records
	case OutputFields:
		rows := out.FieldRows()
		header := FieldHeader(rows, w.wanted)
		for _, r := range rows {
			records = append(records, fieldRecord(r, header))
		}
		return header, records
	case OutputSections:
		for _, s := range out.Sections() {
			records = append(records, sectionRecord(s))
		}
		return SectionColumns, records
	case OutputSectionsClean:
		for _, s := range out.CleanSections {
			records = append(records, sectionRecord(s))
		}
		return SectionColumns, records
	case OutputChunks:
		for _, c := range out.Chunks {
			records = append(records, chunkRecord(c))
		}
		return ChunkColumns, records
	case OutputContents:
		for _, c := range out.Contents() {
			records = append(records, contentsRecord(c))
		}
		return ContentsColumns, records
	default:
		return nil, nil
	}
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
