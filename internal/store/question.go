package store

import (
	"context"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
)

// QuestionStore defines the interface for question persistence.
type QuestionStore interface {
	// Create saves a new pending question and assigns its ID.
	// Returns ErrInvalidEntity if the referenced document does not exist.
	Create(ctx context.Context, q *domain.Question) error

	// GetByID retrieves a question by its ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Question, error)

	// Update writes the answer, status and updated_at of a pending question
	// in a single statement. Returns ErrQuestionNotFound if the question does
	// not exist and ErrQuestionNotPending if it already reached a terminal
	// state.
	Update(ctx context.Context, q *domain.Question) error

	// ListByStatus returns up to limit questions with the given status,
	// oldest first.
	ListByStatus(ctx context.Context, status domain.QuestionStatus, limit int) ([]*domain.Question, error)
}
