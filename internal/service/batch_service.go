package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ushay-etl/internal/chunk"
	"ushay-etl/internal/domain"
	"ushay-etl/internal/normalize"
	pkgerrors "ushay-etl/pkg/errors"
)

// BatchService drives a whole run: every input file is inspected in
// isolation, then section text is cleaned and chunked, and the rows are
// handed to the artifact writer, the optional sinks and the object store.
type BatchService struct {
	containers  domain.ContainerService
	chunker     *chunk.Chunker
	artifacts   domain.ArtifactWriter
	sinks       []domain.RowSink
	store       domain.ObjectStore
	storePrefix string
	workers     int
	logger      domain.Logger
}

// BatchOption configures a BatchService.
type BatchOption func(*BatchService)

// WithSinks adds downstream row sinks.
func WithSinks(sinks ...domain.RowSink) BatchOption {
	return func(s *BatchService) { s.sinks = append(s.sinks, sinks...) }
}

// WithObjectStore uploads every artifact under prefix/<run id>/.
func WithObjectStore(store domain.ObjectStore, prefix string) BatchOption {
	return func(s *BatchService) {
		s.store = store
		s.storePrefix = prefix
	}
}

// WithWorkers bounds how many files are processed at once.
func WithWorkers(n int) BatchOption {
	return func(s *BatchService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewBatchService creates a batch service. A nil chunker disables chunking.
func NewBatchService(
	containers domain.ContainerService,
	chunker *chunk.Chunker,
	artifacts domain.ArtifactWriter,
	logger domain.Logger,
	opts ...BatchOption,
) *BatchService {
	s := &BatchService{
		containers: containers,
		chunker:    chunker,
		artifacts:  artifacts,
		workers:    1,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveInputs expands a glob pattern into input paths, in lexical order.
func ResolveInputs(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid input glob %q: %w", pattern, err)
	}
	return matches, nil
}

// Process inspects every file and derives cleaned sections and chunks.
// Results keep input order regardless of the worker count. Only context
// cancellation fails the batch; per-file problems end up in the rows.
func (s *BatchService) Process(ctx context.Context, paths []string) (*domain.BatchOutput, error) {
	out := &domain.BatchOutput{
		RunID:   uuid.New().String(),
		Results: make([]domain.FileResult, len(paths)),
	}
	s.logger.Info("Batch started", "run_id", out.RunID, "files", len(paths), "workers", s.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out.Results[i] = *s.processFile(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.CleanSections = normalize.Records(out.Sections())
	if s.chunker != nil {
		out.Chunks = s.chunker.ChunkAll(out.CleanSections)
	}

	s.logger.Info("Batch processed",
		"run_id", out.RunID,
		"files", len(out.Results),
		"sections", len(out.CleanSections),
		"chunks", len(out.Chunks),
	)
	return out, nil
}

func (s *BatchService) processFile(ctx context.Context, p string) *domain.FileResult {
	data, err := os.ReadFile(p)
	if err != nil {
		s.logger.Error("Failed to read input file", err, "file", p)
		return &domain.FileResult{
			Probe: domain.ContainerProbe{
				SourceFile:  filepath.Base(p),
				ErrorReason: err.Error(),
			},
			FieldsError: err.Error(),
		}
	}
	return s.containers.Inspect(ctx, filepath.Base(p), data)
}

// Deliver writes the artifacts, then feeds the optional sinks and uploads
// the artifacts. Artifact failures are fatal; sink and upload failures are
// logged and reported in the summary.
func (s *BatchService) Deliver(ctx context.Context, out *domain.BatchOutput) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{
		RunID:      out.RunID,
		Processed:  len(out.Results),
		MetaSample: out.Probes(),
	}
	if len(summary.MetaSample) > domain.MetaSampleSize {
		summary.MetaSample = summary.MetaSample[:domain.MetaSampleSize]
	}

	if s.artifacts != nil {
		paths, err := s.artifacts.WriteArtifacts(ctx, out)
		if err != nil {
			return nil, pkgerrors.NewInternalError("failed to write artifacts", err)
		}
		summary.Artifacts = paths
	}

	for _, sink := range s.sinks {
		if err := sink.Write(ctx, out); err != nil {
			s.logger.Error("Sink write failed", err, "sink", sink.Name(), "run_id", out.RunID)
			s.addSinkError(summary, sink.Name(), err)
			continue
		}
		s.logger.Info("Sink write completed", "sink", sink.Name(), "run_id", out.RunID)
	}

	if s.store != nil {
		for _, p := range summary.Artifacts {
			loc, err := s.upload(ctx, out.RunID, p)
			if err != nil {
				s.logger.Error("Artifact upload failed", err, "artifact", p)
				s.addSinkError(summary, "upload:"+filepath.Base(p), err)
				continue
			}
			summary.Uploaded = append(summary.Uploaded, loc)
		}
	}

	return summary, nil
}

// Run is Process followed by Deliver.
func (s *BatchService) Run(ctx context.Context, paths []string) (*domain.RunSummary, error) {
	out, err := s.Process(ctx, paths)
	if err != nil {
		return nil, err
	}
	return s.Deliver(ctx, out)
}

func (s *BatchService) upload(ctx context.Context, runID, p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := path.Join(s.storePrefix, runID, filepath.Base(p))
	return s.store.Upload(ctx, key, f, contentTypeFor(p))
}

func (s *BatchService) addSinkError(summary *domain.RunSummary, name string, err error) {
	if summary.SinkErrors == nil {
		summary.SinkErrors = make(map[string]string)
	}
	summary.SinkErrors[name] = err.Error()
}

func contentTypeFor(p string) string {
	switch filepath.Ext(p) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
