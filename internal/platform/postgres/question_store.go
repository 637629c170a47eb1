package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

const questionColumns = `id, document_id, question, answer, status, created_at, updated_at`

// PostgresQuestionStore implements store.QuestionStore on PostgreSQL.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a question store on a connection or
// transaction managed by the caller. If logger is nil, the default logger is used.
func NewPostgresQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*domain.Question, error) {
	var q domain.Question
	var answer sql.NullString
	var status string

	if err := row.Scan(
		&q.ID,
		&q.DocumentID,
		&q.Text,
		&answer,
		&status,
		&q.CreatedAt,
		&q.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if answer.Valid {
		q.Answer = &answer.String
	}
	q.Status = domain.QuestionStatus(status)
	return &q, nil
}

// Create inserts q and sets its ID from the database.
// Returns store.ErrInvalidEntity if the document does not exist.
func (s *PostgresQuestionStore) Create(ctx context.Context, q *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := q.Validate(); err != nil {
		log.Warn("question validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO questions (document_id, question, answer, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		q.DocumentID,
		q.Text,
		q.Answer,
		q.Status,
		q.CreatedAt,
		q.UpdatedAt,
	).Scan(&q.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during question creation",
				slog.Int64("document_id", q.DocumentID))
			return fmt.Errorf("%w: document with ID %d not found", store.ErrInvalidEntity, q.DocumentID)
		}
		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.Int64("document_id", q.DocumentID))
		return store.NewStoreError("question", "create", "insert failed", MapError(err))
	}

	log.Info("question created successfully",
		slog.Int64("question_id", q.ID),
		slog.Int64("document_id", q.DocumentID))
	return nil
}

// GetByID returns store.ErrQuestionNotFound if no question has the given ID.
func (s *PostgresQuestionStore) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	q, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found", slog.Int64("question_id", id))
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question by ID",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return nil, store.NewStoreError("question", "get", "query failed", MapError(err))
	}

	return q, nil
}

// Update writes answer, status and updated_at in one statement, guarded on
// the row still being pending.
func (s *PostgresQuestionStore) Update(ctx context.Context, q *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := q.Validate(); err != nil {
		log.Warn("question validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("question_id", q.ID))
		return err
	}

	query := `
		UPDATE questions
		SET answer = $1, status = $2, updated_at = $3
		WHERE id = $4 AND status = 'pending'
	`
	result, err := s.db.ExecContext(ctx, query, q.Answer, q.Status, q.UpdatedAt, q.ID)
	if err != nil {
		log.Error("failed to update question",
			slog.String("error", err.Error()),
			slog.Int64("question_id", q.ID))
		return store.NewStoreError("question", "update", "update failed", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("question_id", q.ID))
		return store.NewStoreError("question", "update", "rows affected unavailable", err)
	}

	if rowsAffected == 0 {
		var exists bool
		err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`, q.ID).
			Scan(&exists)
		if err != nil {
			return store.NewStoreError("question", "update", "existence check failed", MapError(err))
		}
		if !exists {
			return store.ErrQuestionNotFound
		}
		log.Debug("question no longer pending", slog.Int64("question_id", q.ID))
		return store.ErrQuestionNotPending
	}

	log.Info("question updated successfully",
		slog.Int64("question_id", q.ID),
		slog.String("status", string(q.Status)))
	return nil
}

// ListByStatus returns questions with status, oldest first.
func (s *PostgresQuestionStore) ListByStatus(
	ctx context.Context,
	status domain.QuestionStatus,
	limit int,
) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + questionColumns + ` FROM questions WHERE status = $1 ORDER BY id LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, status, limit)
	if err != nil {
		log.Error("failed to query questions by status",
			slog.String("error", err.Error()),
			slog.String("status", string(status)))
		return nil, store.NewStoreError("question", "list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	questions := []*domain.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("question", "list", "scan failed", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("question", "list", "row iteration failed", err)
	}

	log.Debug("found questions by status",
		slog.String("status", string(status)),
		slog.Int("count", len(questions)))
	return questions, nil
}
