package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/config"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/memory"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/postgres"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// storage groups the stores backing the application and how to release them.
type storage struct {
	documents store.DocumentStore
	questions store.QuestionStore
	sessions  store.SessionProvider
	close     func() error
}

// setupStorage builds the stores for the configured backend.
func setupStorage(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*storage, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		db := memory.NewDB()
		logger.Info("using in-memory storage")
		return &storage{
			documents: memory.NewDocumentStore(db),
			questions: memory.NewQuestionStore(db),
			sessions:  memory.NewSessionProvider(db),
			close:     func() error { return nil },
		}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, db, logger); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &storage{
			documents: postgres.NewPostgresDocumentStore(db, logger),
			questions: postgres.NewPostgresQuestionStore(db, logger),
			sessions:  postgres.NewSessionProvider(db, logger),
			close:     db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
