package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// SessionProvider opens one transaction per session on a shared pool.
type SessionProvider struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSessionProvider creates a provider backed by db.
func NewSessionProvider(db *sql.DB, logger *slog.Logger) *SessionProvider {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionProvider{db: db, logger: logger}
}

var _ store.SessionProvider = (*SessionProvider)(nil)

// WithSession runs fn in its own transaction with a question store bound to it.
func (p *SessionProvider) WithSession(ctx context.Context, fn store.SessionFn) error {
	return store.RunInTransaction(ctx, p.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, NewPostgresQuestionStore(tx, p.logger))
	})
}
