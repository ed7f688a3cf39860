package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ushay-etl/internal/config"
	"ushay-etl/internal/handler"
	"ushay-etl/internal/repository"
	"ushay-etl/internal/service"
)

// cliFlags holds flag values that override the loaded configuration.
type cliFlags struct {
	logLevel      string
	inputGlob     string
	outputDir     string
	extractionDir string
	workers       int
	port          string
	wantedOnly    bool
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}
	var cfg *config.AppConfig

	root := &cobra.Command{
		Use:          "ushay",
		Short:        "Extract metadata and document sections from .ushay procurement containers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, flags, loaded)
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.inputGlob, "input-glob", "", "glob of .ushay files to process")
	pf.StringVar(&flags.outputDir, "output-dir", "", "directory for CSV outputs")
	pf.StringVar(&flags.extractionDir, "extraction-dir", "", "directory receiving a copy of every archive entry")
	pf.IntVar(&flags.workers, "workers", 0, "files processed concurrently")

	batch := func(use, short string, plan config.BatchSpec, deliverDefault bool) *cobra.Command {
		var deliver bool
		cmd := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s := plan
				s.WantedOnly = flags.wantedOnly
				s.Deliver = deliver
				return runBatch(cmd.Context(), cmd.OutOrStdout(), cfg, s)
			},
		}
		cmd.Flags().BoolVar(&deliver, "deliver", deliverDefault, "write rows to the configured sinks and upload artifacts")
		return cmd
	}

	probeCmd := batch("probe", "Probe containers and index their contents", config.BatchSpec{
		Outputs: []repository.Output{repository.OutputProbes, repository.OutputContents},
	}, false)

	fieldsCmd := batch("fields", "Extract proceso.xml metadata fields", config.BatchSpec{
		Outputs: []repository.Output{repository.OutputProbes, repository.OutputFields},
	}, false)
	fieldsCmd.Flags().BoolVar(&flags.wantedOnly, "wanted-only", false, "restrict fields.csv to the wanted keys")

	sectionsCmd := batch("sections", "Segment primary documents into sections", config.BatchSpec{
		Outputs:  []repository.Output{repository.OutputContents, repository.OutputSections, repository.OutputSectionsClean, repository.OutputChunks},
		Sections: true,
	}, false)

	runCmd := batch("run", "Run the whole pipeline", config.BatchSpec{
		Outputs:  repository.AllOutputs,
		Sections: true,
	}, true)
	runCmd.Flags().BoolVar(&flags.wantedOnly, "wanted-only", false, "restrict fields.csv to the wanted keys")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the container inspect API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&flags.port, "port", "", "listening port")

	root.AddCommand(probeCmd, fieldsCmd, sectionsCmd, runCmd, serveCmd)
	return root
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, flags *cliFlags, cfg *config.AppConfig) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("input-glob") {
		cfg.InputGlob = flags.inputGlob
	}
	if changed("output-dir") {
		cfg.OutputDir = flags.outputDir
	}
	if changed("extraction-dir") {
		cfg.ExtractionDir = flags.extractionDir
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}
	if changed("port") {
		cfg.ServerPort = flags.port
	}
}

func runBatch(ctx context.Context, stdout io.Writer, cfg *config.AppConfig, plan config.BatchSpec) error {
	container, err := config.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	paths, err := service.ResolveInputs(cfg.GetInputGlob())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		container.Logger.Warn("No input files matched", "glob", cfg.GetInputGlob())
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := container.NewBatchService(ctx, plan)
	if err != nil {
		return err
	}
	summary, err := svc.Run(ctx, paths)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(summary)
}

func serve(ctx context.Context, cfg *config.AppConfig) error {
	container, err := config.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	router := handler.NewRouter(container.NewContainerHandler(), container.Logger)

	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	container.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	container.Logger.Info("Server exited")
	return nil
}
