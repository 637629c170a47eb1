package memory

import (
	"context"
	"fmt"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// SessionProvider hands out sessions over a DB. A session reads committed
// data and buffers its writes until the session function returns nil.
type SessionProvider struct {
	db *DB
}

// NewSessionProvider creates a provider over db.
func NewSessionProvider(db *DB) *SessionProvider {
	return &SessionProvider{db: db}
}

var _ store.SessionProvider = (*SessionProvider)(nil)

// WithSession runs fn and applies its buffered writes atomically. Nothing is
// applied if fn returns an error or panics.
func (p *SessionProvider) WithSession(ctx context.Context, fn store.SessionFn) error {
	sess := &session{db: p.db}
	if err := fn(ctx, sess); err != nil {
		return err
	}
	return sess.commit()
}

type session struct {
	db      *DB
	creates []*domain.Question
	updates []*domain.Question
}

var _ store.QuestionStore = (*session)(nil)

// Create buffers q; its ID is assigned when the session commits.
func (s *session) Create(ctx context.Context, q *domain.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	s.creates = append(s.creates, q)
	return nil
}

func (s *session) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	for i := len(s.updates) - 1; i >= 0; i-- {
		if s.updates[i].ID == id {
			return copyQuestion(s.updates[i]), nil
		}
	}
	return NewQuestionStore(s.db).GetByID(ctx, id)
}

func (s *session) Update(ctx context.Context, q *domain.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}

	s.db.mu.RLock()
	err := s.db.checkPending(q.ID)
	s.db.mu.RUnlock()
	if err != nil {
		return err
	}

	s.updates = append(s.updates, copyQuestion(q))
	return nil
}

func (s *session) ListByStatus(ctx context.Context, status domain.QuestionStatus, limit int) ([]*domain.Question, error) {
	return NewQuestionStore(s.db).ListByStatus(ctx, status, limit)
}

func (s *session) commit() error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	// Validate everything first so a failed commit applies nothing.
	for _, q := range s.creates {
		if err := s.db.checkDocument(q.DocumentID); err != nil {
			return err
		}
	}
	seen := make(map[int64]bool, len(s.updates))
	for _, q := range s.updates {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		if err := s.db.checkPending(q.ID); err != nil {
			return fmt.Errorf("%w: commit: %w", store.ErrTransactionFailed, err)
		}
	}

	for _, q := range s.creates {
		s.db.insertQuestion(q)
	}
	for _, q := range s.updates {
		s.db.questions[q.ID] = q
	}
	return nil
}
