package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"ushay-etl/internal/archive"
	"ushay-etl/internal/domain"
	"ushay-etl/internal/locator"
	"ushay-etl/internal/metadata"
	"ushay-etl/internal/section"
	pkgerrors "ushay-etl/pkg/errors"
)

// ContainerService runs the per-file pipeline: locate the embedded archive,
// probe it, recover metadata fields and segment the primary document.
// Every failure is caught here and turned into diagnostic fields.
type ContainerService struct {
	pages         domain.PageExtractor
	segmenter     *section.Segmenter
	logger        domain.Logger
	extractionDir string
	skipSections  bool
	now           func() time.Time
}

// NewContainerService creates a container service. extractionDir, when not
// empty, receives a copy of every archive entry.
func NewContainerService(pages domain.PageExtractor, logger domain.Logger, extractionDir string) *ContainerService {
	return &ContainerService{
		pages:         pages,
		segmenter:     section.NewSegmenter(nil),
		logger:        logger,
		extractionDir: extractionDir,
		now:           time.Now,
	}
}

// WithoutSections returns a copy that stops after metadata, skipping the
// primary document entirely.
func (s *ContainerService) WithoutSections() *ContainerService {
	c := *s
	c.skipSections = true
	return &c
}

// DocumentID derives the process identifier from a container file name.
func DocumentID(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Inspect implements domain.ContainerService. It never fails: the returned
// result always carries a probe, and the remaining parts are filled in as
// far as the container allows.
func (s *ContainerService) Inspect(ctx context.Context, fileName string, data []byte) *domain.FileResult {
	log := s.logger.With("file", fileName)
	res := &domain.FileResult{
		Probe: domain.ContainerProbe{
			SourceFile:       filepath.Base(fileName),
			SourceByteLength: len(data),
		},
	}

	offset, found := locator.Locate(data)
	if !found {
		sigErr := pkgerrors.NewSignatureNotFoundError()
		res.Probe.ErrorReason = pkgerrors.Reason(sigErr)
		res.FieldsError = res.Probe.ErrorReason
		log.Info("No archive signature found", "size", len(data))
		return res
	}
	res.Probe.SignatureOffset = &offset

	arc, err := archive.Open(data[offset:])
	if err != nil {
		appErr := pkgerrors.NewArchiveOpenError(err)
		res.Probe.ErrorReason = pkgerrors.Reason(appErr)
		log.Warn("Archive could not be opened", "offset", offset, "error", err)
		return res
	}
	res.Probe.ArchiveOpenable = true

	names := arc.Entries()
	res.Probe.AttachmentCount = len(archive.Attachments(names))
	res.Probe.HasMetadataEntry = arc.Has(domain.MetadataEntryName)
	res.Contents = archive.Contents(res.Probe.SourceFile, names)
	log.Debug("Archive opened", "offset", offset, "entries", len(names), "attachments", res.Probe.AttachmentCount)

	s.dump(arc, fileName, log)
	s.extractFields(arc, res, log)
	if !s.skipSections {
		s.extractSections(ctx, arc, names, fileName, res, log)
	}

	return res
}

func (s *ContainerService) extractFields(arc *archive.Archive, res *domain.FileResult, log domain.Logger) {
	if !res.Probe.HasMetadataEntry {
		missing := pkgerrors.NewMissingEntryError(domain.MetadataEntryName, &domain.MissingEntryError{Name: domain.MetadataEntryName})
		res.Probe.ErrorReason = pkgerrors.Reason(missing)
		res.FieldsError = res.Probe.ErrorReason
		log.Warn("Metadata entry missing", "entry", domain.MetadataEntryName)
		return
	}

	xmlBytes, err := arc.ReadEntry(domain.MetadataEntryName)
	if err != nil {
		res.Probe.ErrorReason = err.Error()
		res.FieldsError = res.Probe.ErrorReason
		log.Error("Failed to read metadata entry", err)
		return
	}

	fields, err := metadata.Extract(xmlBytes)
	if err != nil {
		res.Probe.ErrorReason = pkgerrors.Reason(err)
		res.FieldsError = res.Probe.ErrorReason
		if errors.Is(err, domain.ErrMetadataParse) {
			log.Warn("Metadata could not be parsed", "error", err)
		} else {
			log.Error("Metadata extraction failed", err)
		}
		return
	}
	res.Fields = fields
	log.Debug("Metadata extracted", "fields", fields.Len())
}

func (s *ContainerService) extractSections(ctx context.Context, arc *archive.Archive, names []string, fileName string, res *domain.FileResult, log domain.Logger) {
	docName, ok := archive.FindPrimaryDocument(names)
	if !ok {
		res.SectionsError = domain.ErrNoPrimaryDocument.Error()
		log.Debug("No primary document in archive")
		return
	}
	res.PrimaryDocument = docName

	entry, err := arc.Entry(docName)
	if err != nil {
		res.SectionsError = err.Error()
		log.Error("Failed to read primary document", err, "document", docName)
		return
	}

	pages, err := s.pages.ExtractPages(ctx, entry.Name, entry.RawBytes)
	if err != nil {
		appErr := pkgerrors.NewDocumentExtractError(docName, err)
		res.SectionsError = pkgerrors.Reason(appErr)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn("Document extraction cancelled", "document", docName)
		} else {
			log.Error("Failed to extract document pages", appErr, "document", docName)
		}
		return
	}

	// local calendar date, stored as a zone-free day
	date := s.now()
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	res.Sections = s.segmenter.SegmentPages(pages, DocumentID(fileName), docName, date)
	log.Debug("Document segmented", "document", docName, "pages", len(pages), "sections", len(res.Sections))
}

func (s *ContainerService) dump(arc *archive.Archive, fileName string, log domain.Logger) {
	if s.extractionDir == "" {
		return
	}
	dir := filepath.Join(s.extractionDir, strings.ReplaceAll(DocumentID(fileName), " ", "_"))
	written, err := arc.Dump(dir)
	if err != nil {
		log.Error("Failed to dump archive entries", err, "dir", dir)
		return
	}
	log.Debug("Archive entries dumped", "dir", dir, "count", len(written))
}
