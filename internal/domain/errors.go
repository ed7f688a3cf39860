package domain

import "errors"

// Probe diagnostics, as rendered in output rows.
const (
	ReasonNoSignature = "No ZIP signature found"
)

// Domain errors
var (
	ErrSignatureNotFound = errors.New("no ZIP signature found")
	ErrArchiveOpen       = errors.New("archive could not be opened")
	ErrMissingEntry      = errors.New("entry not found in archive")
	ErrMetadataParse     = errors.New("metadata could not be parsed")
	ErrNoPrimaryDocument = errors.New("no primary document in archive")
	ErrDocumentExtract   = errors.New("document text could not be extracted")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// MissingEntryError reports an entry name absent from the archive listing.
type MissingEntryError struct {
	Name string
}

func (e *MissingEntryError) Error() string {
	return e.Name + " not found"
}

func (e *MissingEntryError) Is(target error) bool {
	return target == ErrMissingEntry
}

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
