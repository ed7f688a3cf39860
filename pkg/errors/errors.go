package errors

import (
	"errors"
	"fmt"
	"net/http"

	"ushay-etl/internal/domain"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeSignatureNotFound ErrorType = "signature_not_found"
	ErrorTypeArchiveOpen       ErrorType = "archive_open"
	ErrorTypeMissingEntry      ErrorType = "missing_entry"
	ErrorTypeMetadataParse     ErrorType = "metadata_parse"
	ErrorTypeDocumentExtract   ErrorType = "document_extract"
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeInternal          ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

var sentinels = map[ErrorType]error{
	ErrorTypeSignatureNotFound: domain.ErrSignatureNotFound,
	ErrorTypeArchiveOpen:       domain.ErrArchiveOpen,
	ErrorTypeMissingEntry:      domain.ErrMissingEntry,
	ErrorTypeMetadataParse:     domain.ErrMetadataParse,
	ErrorTypeDocumentExtract:   domain.ErrDocumentExtract,
}

// Is matches the domain sentinel for the error's type.
func (e *AppError) Is(target error) bool {
	sentinel, ok := sentinels[e.Type]
	return ok && target == sentinel
}

// NewSignatureNotFoundError is informational: the blob has no embedded archive.
func NewSignatureNotFoundError() *AppError {
	return &AppError{
		Type:       ErrorTypeSignatureNotFound,
		Message:    domain.ReasonNoSignature,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewArchiveOpenError wraps a failure to open a signature-matched archive.
func NewArchiveOpenError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeArchiveOpen,
		Message:    "archive could not be opened",
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewMissingEntryError reports an expected archive entry that is absent.
func NewMissingEntryError(name string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMissingEntry,
		Message:    "entry not found",
		Details:    name,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewMetadataParseError wraps a malformed metadata payload.
func NewMetadataParseError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMetadataParse,
		Message:    "metadata could not be parsed",
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewDocumentExtractError wraps a failure rendering the primary document.
func NewDocumentExtractError(name string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDocumentExtract,
		Message:    "document text could not be extracted",
		Details:    name,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error, or anything it wraps, is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Reason renders an error as the short diagnostic stored in output rows:
// the innermost cause when there is one, otherwise the message.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		if appErr.Details != "" {
			return appErr.Details + ": " + appErr.Message
		}
		return appErr.Message
	}
	return err.Error()
}
