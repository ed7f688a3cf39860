package domain

import (
	"context"
	"io"
)

// PageExtractor renders a document entry into page texts.
type PageExtractor interface {
	ExtractPages(ctx context.Context, name string, data []byte) ([]Page, error)
}

// Tokenizer splits text into an ordered sequence of tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// ContainerService processes a single container end to end.
type ContainerService interface {
	Inspect(ctx context.Context, fileName string, data []byte) *FileResult
}

// RowSink persists the rows of a batch run somewhere downstream.
type RowSink interface {
	Name() string
	Write(ctx context.Context, out *BatchOutput) error
}

// ObjectStore uploads batch artifacts.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// Config defines the interface for configuration management
type Config interface {
	GetLogLevel() string
	GetInputGlob() string
	GetOutputDir() string
	GetExtractionDir() string
	GetWorkers() int
	GetChunkMaxTokens() int
	GetChunkOverlap() int
	GetPageTimeoutSec() int
	GetWantedKeys() []string
	GetServerPort() string
	GetMaxFileSize() int64
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseBucket() string
	GetDatabaseURL() string
	GetAWSRegion() string
	GetAWSAccessKey() string
	GetAWSSecretKey() string
	GetS3Bucket() string
	GetS3Prefix() string
}

// ArtifactWriter renders a batch run into files and returns their paths.
type ArtifactWriter interface {
	WriteArtifacts(ctx context.Context, out *BatchOutput) ([]string, error)
}
