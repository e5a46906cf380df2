package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/longregen/genepool/evolution"
	"github.com/longregen/genepool/server"
	"github.com/longregen/genepool/store"
	"github.com/longregen/genepool/tracing"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the gene pool HTTP API",
		Long: `Start the loopback HTTP API for prompt synthesis and feedback.

Configuration (environment):
  GENEPOOL_HOST, GENEPOOL_PORT        bind address (default 127.0.0.1:8710)
  GENEPOOL_DB_PATH                    sqlite gene database (default genepool.db)
  GENEPOOL_CHECKPOINT_INTERVAL        persistence interval (default 30s)
  GENEPOOL_SELECTOR_SEED              fixed selection seed, 0 = random
  GENEPOOL_EXPORT_SPANS               emit OpenTelemetry spans to stderr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	otelRes, err := tracing.Init(tracing.Config{
		ServiceName: "genepool",
		Environment: cfg.Otel.Environment,
		ExportSpans: cfg.Otel.ExportSpans,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	slog.SetDefault(otelRes.Logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelRes.Shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown", "error", err)
		}
	}()

	slog.Info("starting genepool",
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"db", cfg.Database.Path)

	db, err := store.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open gene database: %w", err)
	}
	defer db.Close()

	pool := store.New()
	genes, err := db.LoadGenes(ctx)
	switch {
	case err != nil:
		slog.Error("load genes, falling back to seed pool", "error", err)
		seedPool(pool)
	case len(genes) == 0:
		slog.Info("empty gene database, seeding starter pool")
		seedPool(pool)
	default:
		pool.Replace(genes)
		slog.Info("gene pool loaded", "genes", len(genes))
	}
	evolution.GenePoolSize.Set(float64(pool.Len()))

	checkpointer := store.NewCheckpointer(pool, db, cfg.Database.CheckpointInterval)
	stopCheckpointer := checkpointer.Start(ctx)
	defer stopCheckpointer()

	selector := evolution.NewSelector(pool, cfg.Evolution.SelectorSeed)
	synthesizer := evolution.NewSynthesizer(selector)
	engine := evolution.NewEngine(pool, cfg.Evolution.QueueSize)
	defer engine.Close()

	srv := server.NewServer(cfg, pool, synthesizer, engine, db.Ping)

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "host", cfg.Server.Host, "port", cfg.Server.Port)
		serverErrors <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		slog.Info("shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		slog.Info("server stopped")
		return nil
	}
}

func seedPool(pool *store.Store) {
	for _, g := range evolution.SeedGenes() {
		pool.AddGene(g)
	}
}
