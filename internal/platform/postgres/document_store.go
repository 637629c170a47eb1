package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// PostgresDocumentStore implements store.DocumentStore on PostgreSQL.
type PostgresDocumentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDocumentStore creates a document store on a connection or
// transaction managed by the caller. If logger is nil, the default logger is used.
func NewPostgresDocumentStore(db store.DBTX, logger *slog.Logger) *PostgresDocumentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDocumentStore{
		db:     db,
		logger: logger.With(slog.String("component", "document_store")),
	}
}

var _ store.DocumentStore = (*PostgresDocumentStore)(nil)

// Create inserts doc and sets its ID and CreatedAt from the database.
func (s *PostgresDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := doc.Validate(); err != nil {
		log.Warn("document validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO documents (title, content, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, doc.Title, doc.Content, doc.CreatedAt).
		Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		log.Error("failed to create document", slog.String("error", err.Error()))
		return store.NewStoreError("document", "create", "insert failed", MapError(err))
	}

	log.Info("document created successfully", slog.Int64("document_id", doc.ID))
	return nil
}

// GetByID returns store.ErrDocumentNotFound if no document has the given ID.
func (s *PostgresDocumentStore) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, content, created_at
		FROM documents
		WHERE id = $1
	`

	var doc domain.Document
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("document not found", slog.Int64("document_id", id))
			return nil, store.ErrDocumentNotFound
		}
		log.Error("failed to get document by ID",
			slog.String("error", err.Error()),
			slog.Int64("document_id", id))
		return nil, store.NewStoreError("document", "get", "query failed", MapError(err))
	}

	return &doc, nil
}

// List returns documents ordered by ID.
func (s *PostgresDocumentStore) List(ctx context.Context, offset, limit int) ([]*domain.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	query := `
		SELECT id, title, content, created_at
		FROM documents
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list documents", slog.String("error", err.Error()))
		return nil, store.NewStoreError("document", "list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	docs := []*domain.Document{}
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.CreatedAt); err != nil {
			log.Error("failed to scan document row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("document", "list", "scan failed", err)
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("document", "list", "row iteration failed", err)
	}

	log.Debug("listed documents",
		slog.Int("offset", offset),
		slog.Int("limit", limit),
		slog.Int("count", len(docs)))
	return docs, nil
}
