package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"inventory-dashboard/internal"
	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/logging"
	"inventory-dashboard/pkg/importer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	flagSet := pflag.NewFlagSet("inventory-api", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "listen address")
	flagSet.StringVar(&cfg.Source, "source", cfg.Source, "inventory source: csv, xlsx or postgres")
	flagSet.StringVar(&cfg.File, "file", cfg.File, "inventory file for csv and xlsx sources")
	flagSet.StringVar(&cfg.MappingPath, "mapping", cfg.MappingPath, "optional YAML column mapping")
	flagSet.StringVar(&cfg.Table, "table", cfg.Table, "table for the postgres source")
	flagSet.IntVar(&cfg.LoadWorkers, "workers", cfg.LoadWorkers, "CSV parsing workers")
	flagSet.StringVar(&cfg.CORSOrigin, "cors-origin", cfg.CORSOrigin, "origin allowed to read the inventory")
	flagSet.BoolVar(&cfg.EnableMetrics, "metrics", cfg.EnableMetrics, "serve Prometheus metrics on /metrics")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := logging.New(logging.Config{Env: cfg.Env, Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := importer.Open(ctx, importer.Options{
		Kind:        cfg.Source,
		Path:        cfg.File,
		MappingPath: cfg.MappingPath,
		Workers:     cfg.LoadWorkers,
		DatabaseURL: cfg.DatabaseURL,
		Table:       cfg.Table,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open inventory source: %w", err)
	}
	defer closeSource()

	store := internal.NewStore()
	metrics := internal.NewMetrics()

	summary, elapsed, err := store.LoadFrom(ctx, src)
	if err != nil {
		logger.Error().Err(err).Str("source", cfg.Source).Msg("Failed to load inventory")
		return err
	}
	metrics.ObserveLoad(summary, elapsed)
	logger.Info().
		Str("source", summary.Source).
		Int("items", summary.Loaded).
		Int("skipped", summary.Skipped).
		Dur("elapsed", elapsed).
		Msg("inventory loaded")

	srv := internal.NewServer(cfg, store, metrics, logger)

	logger.Info().Str("addr", cfg.HTTPAddr).Bool("metrics", cfg.EnableMetrics).Msg("Starting inventory API server")
	return srv.Serve(ctx, cfg.HTTPAddr)
}
