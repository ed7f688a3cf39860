package domain

// ContainerProbe describes what could be recovered from a single .ushay file.
// It is produced once per input file and never mutated afterwards.
type ContainerProbe struct {
	SourceFile       string `json:"file"`
	SourceByteLength int    `json:"size_bytes"`
	// SignatureOffset is nil when no archive signature was found.
	SignatureOffset  *int   `json:"pk_offset"`
	ArchiveOpenable  bool   `json:"zip_ok"`
	AttachmentCount  int    `json:"n_adjuntos"`
	HasMetadataEntry bool   `json:"has_proceso_xml"`
	ErrorReason      string `json:"error"`
}

// HasSignature reports whether an embedded archive signature was located.
func (p ContainerProbe) HasSignature() bool {
	return p.SignatureOffset != nil
}

// Offset returns the signature offset, or -1 when absent.
func (p ContainerProbe) Offset() int {
	if p.SignatureOffset == nil {
		return -1
	}
	return *p.SignatureOffset
}
