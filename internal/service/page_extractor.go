package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"code.sajari.com/docconv"
	"github.com/gen2brain/go-fitz"

	"ushay-etl/internal/domain"
)

const (
	defaultPageTimeout = 90 * time.Second
	msWordContentType  = "application/msword"
)

// PageExtractor renders the primary document of a container into page texts.
// PDFs go through MuPDF page by page; legacy Word files through docconv.
type PageExtractor struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewPageExtractor creates a new page extractor. A non-positive timeout
// falls back to 90 seconds per page.
func NewPageExtractor(logger domain.Logger, pageTimeout time.Duration) *PageExtractor {
	if pageTimeout <= 0 {
		pageTimeout = defaultPageTimeout
	}
	return &PageExtractor{
		logger:      logger,
		pageTimeout: pageTimeout,
	}
}

// ExtractPages implements domain.PageExtractor.
func (p *PageExtractor) ExtractPages(ctx context.Context, name string, data []byte) ([]domain.Page, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return p.extractPDF(ctx, data)
	case ".doc":
		return p.extractDoc(ctx, data)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
	}
}

func (p *PageExtractor) extractPDF(ctx context.Context, data []byte) ([]domain.Page, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	type pageResult struct {
		text string
		err  error
	}

	// pending is a render still running after a timeout or cancellation.
	// go-fitz serializes calls on a document, so nothing else can be
	// rendered until it returns, and Close must wait for it too.
	var pending chan pageResult
	defer func() {
		if pending == nil {
			doc.Close()
			return
		}
		go func(ch chan pageResult) {
			<-ch
			doc.Close()
		}(pending)
	}()

	numPages := doc.NumPage()
	pages := make([]domain.Page, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if pending != nil {
			pages = append(pages, domain.Page{Number: pageNum + 1})
			continue
		}
		p.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)

		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var text string
		select {
		case res := <-resultCh:
			if res.err != nil {
				p.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", res.err)
			}
			text = res.text
		case <-time.After(p.pageTimeout):
			p.logger.Warn("PDF page extraction timeout; remaining pages left empty", "page", pageNum+1, "total", numPages, "timeout_sec", int(p.pageTimeout.Seconds()))
			pending = resultCh
		case <-ctx.Done():
			pending = resultCh
			return nil, ctx.Err()
		}

		pages = append(pages, domain.Page{Number: pageNum + 1, Text: sanitizeText(text)})
	}

	return pages, nil
}

func (p *PageExtractor) extractDoc(ctx context.Context, data []byte) ([]domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := docconv.Convert(bytes.NewReader(data), msWordContentType, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert doc: %w", err)
	}

	// Word page breaks come through as form feeds.
	parts := strings.Split(res.Body, "\f")
	pages := make([]domain.Page, 0, len(parts))
	for i, part := range parts {
		pages = append(pages, domain.Page{Number: i + 1, Text: sanitizeText(part)})
	}
	return pages, nil
}

// sanitizeText removes NUL and other control characters that PostgreSQL
// rejects in text columns. Tab, newline and carriage return are kept.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == 0x09 || r == 0x0A || r == 0x0D:
			result.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			continue
		case r >= 0xD800 && r <= 0xDFFF:
			continue
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
