package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ushay-etl/internal/chunk"
	"ushay-etl/internal/domain"
	"ushay-etl/internal/handler"
	"ushay-etl/internal/infra/objectstore"
	"ushay-etl/internal/infra/supabase"
	"ushay-etl/internal/repository"
	"ushay-etl/internal/service"
	"ushay-etl/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config           *AppConfig
	Logger           domain.Logger
	PageExtractor    *service.PageExtractor
	ContainerService *service.ContainerService
	Chunker          *chunk.Chunker

	pool *pgxpool.Pool
}

// BatchSpec selects what a batch run emits.
type BatchSpec struct {
	Outputs    []repository.Output
	WantedOnly bool
	Sections   bool
	// Deliver enables the configured sinks and object store.
	Deliver bool
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *AppConfig) (*Container, error) {
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	chunker, err := chunk.NewChunker(chunk.WordTokenizer{}, cfg.GetChunkMaxTokens(), cfg.GetChunkOverlap())
	if err != nil {
		return nil, fmt.Errorf("invalid chunk settings: %w", err)
	}

	pages := service.NewPageExtractor(appLogger, time.Duration(cfg.GetPageTimeoutSec())*time.Second)
	containers := service.NewContainerService(pages, appLogger, cfg.GetExtractionDir())

	return &Container{
		Config:           cfg,
		Logger:           appLogger,
		PageExtractor:    pages,
		ContainerService: containers,
		Chunker:          chunker,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// NewBatchService wires a batch service for plan. Sinks whose settings are
// absent are skipped; sinks that are configured but fail to connect are
// errors.
func (c *Container) NewBatchService(ctx context.Context, plan BatchSpec) (*service.BatchService, error) {
	containers := c.ContainerService
	var chunker *chunk.Chunker
	if plan.Sections {
		chunker = c.Chunker
	} else {
		containers = containers.WithoutSections()
	}

	var wanted []string
	if plan.WantedOnly {
		wanted = c.Config.GetWantedKeys()
	}
	writer := repository.NewCSVWriter(c.Config.GetOutputDir(), plan.Outputs, wanted, c.Logger)

	opts := []service.BatchOption{service.WithWorkers(c.Config.GetWorkers())}
	if plan.Deliver {
		sinks, err := c.sinks(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithSinks(sinks...))

		store, err := c.objectStore(ctx)
		if err != nil {
			return nil, err
		}
		if store != nil {
			opts = append(opts, service.WithObjectStore(store, c.Config.GetS3Prefix()))
		}
	}

	return service.NewBatchService(containers, chunker, writer, c.Logger, opts...), nil
}

// NewContainerHandler wires the inspect API handler.
func (c *Container) NewContainerHandler() *handler.ContainerHandler {
	return handler.NewContainerHandler(
		c.ContainerService,
		c.Config.GetWantedKeys(),
		c.Config.GetMaxFileSize(),
		c.Logger,
	)
}

func (c *Container) sinks(ctx context.Context) ([]domain.RowSink, error) {
	var sinks []domain.RowSink

	if c.Config.GetSupabaseURL() != "" && c.Config.GetSupabaseKey() != "" {
		client := supabase.NewClient(c.Config, c.Logger)
		if err := client.Initialize(); err != nil {
			return nil, err
		}
		sinks = append(sinks, repository.NewSupabaseSink(client, c.Logger))
	}

	if url := c.Config.GetDatabaseURL(); url != "" {
		if c.pool == nil {
			pool, err := repository.NewPostgresPool(ctx, url)
			if err != nil {
				return nil, err
			}
			c.pool = pool
			c.Logger.Info("Connected to Postgres")
		}
		sinks = append(sinks, repository.NewPostgresSink(c.pool, c.Logger))
	}

	return sinks, nil
}

func (c *Container) objectStore(ctx context.Context) (domain.ObjectStore, error) {
	switch {
	case c.Config.GetS3Bucket() != "":
		store, err := objectstore.NewS3Store(ctx, c.Config)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("Artifacts will be uploaded to S3", "bucket", c.Config.GetS3Bucket())
		return store, nil
	case c.Config.GetSupabaseBucket() != "" && c.Config.GetSupabaseURL() != "":
		c.Logger.Info("Artifacts will be uploaded to Supabase Storage", "bucket", c.Config.GetSupabaseBucket())
		return objectstore.NewSupabaseStorage(c.Config.GetSupabaseURL(), c.Config.GetSupabaseKey(), c.Config.GetSupabaseBucket()), nil
	default:
		return nil, nil
	}
}

// Close releases pooled connections.
func (c *Container) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}
