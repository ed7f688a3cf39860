// Package chunk cuts cleaned section text into overlapping token windows.
package chunk

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ushay-etl/internal/domain"
)

const (
	DefaultMaxTokens = 80
	DefaultOverlap   = 10
)

// Chunker produces fixed-size token windows. Consecutive windows share
// Overlap tokens.
type Chunker struct {
	tokenizer domain.Tokenizer
	maxTokens int
	overlap   int
	newID     func() string
}

// NewChunker validates the window configuration.
func NewChunker(tokenizer domain.Tokenizer, maxTokens, overlap int) (*Chunker, error) {
	if tokenizer == nil {
		tokenizer = WordTokenizer{}
	}
	if maxTokens <= 0 {
		return nil, &domain.ValidationError{Field: "max_tokens", Message: "must be positive"}
	}
	if overlap < 0 || overlap >= maxTokens {
		return nil, &domain.ValidationError{
			Field:   "overlap",
			Message: fmt.Sprintf("must be in [0, %d), got %d", maxTokens, overlap),
		}
	}
	return &Chunker{
		tokenizer: tokenizer,
		maxTokens: maxTokens,
		overlap:   overlap,
		newID:     func() string { return uuid.New().String() },
	}, nil
}

// Split returns the windows of text, each as space-joined tokens.
func (c *Chunker) Split(text string) []string {
	tokens := c.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	step := c.maxTokens - c.overlap
	var out []string
	for start := 0; start < len(tokens); start += step {
		end := start + c.maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		out = append(out, strings.Join(tokens[start:end], " "))
		if end == len(tokens) {
			break
		}
	}
	return out
}

// Chunk turns one section record into chunk records. Empty text yields none.
func (c *Chunker) Chunk(rec domain.SectionRecord) []domain.ChunkRecord {
	windows := c.Split(rec.PageText)
	out := make([]domain.ChunkRecord, 0, len(windows))
	for i, w := range windows {
		out = append(out, domain.ChunkRecord{
			ChunkID:        c.newID(),
			DocumentID:     rec.DocumentID,
			SectionLabel:   rec.SectionLabel,
			ChunkIndex:     i,
			Text:           w,
			TokenCount:     len(strings.Fields(w)),
			SourceDocument: rec.SourceDocument,
			PageNumber:     rec.PageNumber,
			ExtractionDate: rec.ExtractionDate,
		})
	}
	return out
}

// ChunkAll chunks every record in order.
func (c *Chunker) ChunkAll(records []domain.SectionRecord) []domain.ChunkRecord {
	var out []domain.ChunkRecord
	for _, r := range records {
		out = append(out, c.Chunk(r)...)
	}
	return out
}
