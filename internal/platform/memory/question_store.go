package memory

import (
	"context"
	"fmt"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// QuestionStore implements store.QuestionStore on a DB. Writes apply
// immediately.
type QuestionStore struct {
	db *DB
}

// NewQuestionStore creates a question store over db.
func NewQuestionStore(db *DB) *QuestionStore {
	return &QuestionStore{db: db}
}

var _ store.QuestionStore = (*QuestionStore)(nil)

func (s *QuestionStore) Create(ctx context.Context, q *domain.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.db.checkDocument(q.DocumentID); err != nil {
		return err
	}
	s.db.insertQuestion(q)
	return nil
}

func (s *QuestionStore) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return s.db.getQuestion(id)
}

func (s *QuestionStore) Update(ctx context.Context, q *domain.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.db.checkPending(q.ID); err != nil {
		return err
	}
	s.db.questions[q.ID] = copyQuestion(q)
	return nil
}

func (s *QuestionStore) ListByStatus(ctx context.Context, status domain.QuestionStatus, limit int) ([]*domain.Question, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	out := []*domain.Question{}
	for _, id := range sortedKeys(s.db.questions) {
		if len(out) == limit {
			break
		}
		if q := s.db.questions[id]; q.Status == status {
			out = append(out, copyQuestion(q))
		}
	}
	return out, nil
}

// The helpers below expect db.mu to be held.

func (db *DB) checkDocument(id int64) error {
	if _, ok := db.documents[id]; !ok {
		return fmt.Errorf("%w: document with ID %d not found", store.ErrInvalidEntity, id)
	}
	return nil
}

func (db *DB) insertQuestion(q *domain.Question) {
	db.nextQID++
	q.ID = db.nextQID
	db.questions[q.ID] = copyQuestion(q)
}

func (db *DB) getQuestion(id int64) (*domain.Question, error) {
	q, ok := db.questions[id]
	if !ok {
		return nil, store.ErrQuestionNotFound
	}
	return copyQuestion(q), nil
}

func (db *DB) checkPending(id int64) error {
	current, ok := db.questions[id]
	if !ok {
		return store.ErrQuestionNotFound
	}
	if current.Status.Terminal() {
		return store.ErrQuestionNotPending
	}
	return nil
}
