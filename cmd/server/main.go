// Package main implements the entry point for the question answering API
// server, which stores documents and answers questions about them in the
// background.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/config"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/postgres"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateOnly); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(ctx context.Context, migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_backend", cfg.Database.Backend,
		"llm_provider", cfg.LLM.Provider)

	if migrateOnly {
		return runMigrations(ctx, cfg, l)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// runMigrations applies the embedded schema migrations and returns.
func runMigrations(ctx context.Context, cfg *config.Config, l *slog.Logger) error {
	if cfg.Database.Backend != config.BackendPostgres {
		l.Info("migrations skipped, storage backend has no schema", "storage_backend", cfg.Database.Backend)
		return nil
	}

	db, err := postgres.Open(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close database: %v\n", err)
		}
	}()

	return postgres.Migrate(ctx, db, l)
}
