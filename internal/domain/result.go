package domain

// FileResult gathers everything recovered from one container. Failures are
// carried as diagnostic text; a FileResult exists for every attempted file.
type FileResult struct {
	Probe           ContainerProbe  `json:"probe"`
	Fields          *Fields         `json:"-"`
	FieldsError     string          `json:"fields_error,omitempty"`
	PrimaryDocument string          `json:"primary_document,omitempty"`
	Sections        []SectionRecord `json:"sections"`
	SectionsError   string          `json:"sections_error,omitempty"`
	Contents        []ContentsEntry `json:"contents,omitempty"`
}

// FieldList returns the recovered fields in tag order.
func (r *FileResult) FieldList() []MetadataField {
	return r.Fields.List()
}

// BatchOutput is everything a batch run emits.
type BatchOutput struct {
	RunID         string
	Results       []FileResult
	CleanSections []SectionRecord
	Chunks        []ChunkRecord
}

// Probes returns the probe rows in input order.
func (b *BatchOutput) Probes() []ContainerProbe {
	out := make([]ContainerProbe, 0, len(b.Results))
	for _, r := range b.Results {
		out = append(out, r.Probe)
	}
	return out
}

// FieldRows returns one field row per input file, including files with no fields.
func (b *BatchOutput) FieldRows() []FieldRow {
	out := make([]FieldRow, 0, len(b.Results))
	for _, r := range b.Results {
		out = append(out, FieldRow{SourceFile: r.Probe.SourceFile, Fields: r.Fields})
	}
	return out
}

// Sections returns every section record in input order.
func (b *BatchOutput) Sections() []SectionRecord {
	var out []SectionRecord
	for _, r := range b.Results {
		out = append(out, r.Sections...)
	}
	return out
}

// Contents returns the contents index across all files.
func (b *BatchOutput) Contents() []ContentsEntry {
	var out []ContentsEntry
	for _, r := range b.Results {
		out = append(out, r.Contents...)
	}
	return out
}

// RunSummary is the machine-readable report printed at the end of a run.
type RunSummary struct {
	RunID      string            `json:"run_id"`
	Processed  int               `json:"processed"`
	MetaSample []ContainerProbe  `json:"meta_sample"`
	Artifacts  []string          `json:"artifacts,omitempty"`
	Uploaded   []string          `json:"uploaded,omitempty"`
	SinkErrors map[string]string `json:"sink_errors,omitempty"`
}

// MetaSampleSize is how many probes a RunSummary carries.
const MetaSampleSize = 3
