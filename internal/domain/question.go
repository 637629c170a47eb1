package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// QuestionStatus represents the processing state of a question.
type QuestionStatus string

// Possible question status values. Pending is the only non-terminal state.
const (
	QuestionStatusPending  QuestionStatus = "pending"
	QuestionStatusAnswered QuestionStatus = "answered"
	QuestionStatusFailed   QuestionStatus = "failed"
)

// Validation and lifecycle errors for Question.
var (
	ErrEmptyQuestionText     = fmt.Errorf("%w: question text cannot be empty", ErrValidation)
	ErrInvalidQuestionStatus = fmt.Errorf("%w: invalid question status", ErrValidation)
	ErrInvalidDocumentID     = fmt.Errorf("%w: document %w", ErrValidation, ErrInvalidID)
	ErrEmptyAnswer           = fmt.Errorf("%w: answer cannot be empty", ErrValidation)

	// ErrAnswerStatusMismatch is returned when a question carries an answer
	// without being answered, or is answered without an answer.
	ErrAnswerStatusMismatch = fmt.Errorf("%w: answer must be present exactly when status is answered", ErrValidation)

	// ErrQuestionFinalized is returned when a transition is attempted on a
	// question that already reached a terminal state.
	ErrQuestionFinalized = errors.New("question already in a terminal state")
)

// Question is a request for an answer about a specific Document. It is
// created pending and moved to a terminal state exactly once by the
// background work that owns it.
type Question struct {
	ID         int64          `json:"id"`
	DocumentID int64          `json:"document_id"`
	Text       string         `json:"question"`
	Answer     *string        `json:"answer"`
	Status     QuestionStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewQuestion creates a pending Question for the given document.
// The ID is assigned by the store on creation.
func NewQuestion(documentID int64, text string) (*Question, error) {
	now := time.Now().UTC()
	q := &Question{
		DocumentID: documentID,
		Text:       text,
		Status:     QuestionStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks field values and the answer/status invariant.
func (q *Question) Validate() error {
	if q.DocumentID <= 0 {
		return ErrInvalidDocumentID
	}

	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestionText
	}

	if !q.Status.Valid() {
		return ErrInvalidQuestionStatus
	}

	if (q.Answer != nil) != (q.Status == QuestionStatusAnswered) {
		return ErrAnswerStatusMismatch
	}

	return nil
}

// MarkAnswered sets the answer and moves the question to answered.
// Both fields change together or not at all.
func (q *Question) MarkAnswered(answer string) error {
	if q.Status.Terminal() {
		return ErrQuestionFinalized
	}

	if strings.TrimSpace(answer) == "" {
		return ErrEmptyAnswer
	}

	q.Answer = &answer
	q.Status = QuestionStatusAnswered
	q.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkFailed moves the question to failed. The answer stays absent.
func (q *Question) MarkFailed() error {
	if q.Status.Terminal() {
		return ErrQuestionFinalized
	}

	q.Status = QuestionStatusFailed
	q.UpdatedAt = time.Now().UTC()
	return nil
}

// Valid reports whether s is a known status.
func (s QuestionStatus) Valid() bool {
	switch s {
	case QuestionStatusPending, QuestionStatusAnswered, QuestionStatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition may leave s.
func (s QuestionStatus) Terminal() bool {
	return s == QuestionStatusAnswered || s == QuestionStatusFailed
}
