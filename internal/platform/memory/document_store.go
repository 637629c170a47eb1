package memory

import (
	"context"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// DocumentStore implements store.DocumentStore on a DB.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a document store over db.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

var _ store.DocumentStore = (*DocumentStore)(nil)

func (s *DocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.nextDocID++
	doc.ID = s.db.nextDocID
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	s.db.documents[doc.ID] = copyDocument(doc)
	return nil
}

func (s *DocumentStore) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	d, ok := s.db.documents[id]
	if !ok {
		return nil, store.ErrDocumentNotFound
	}
	return copyDocument(d), nil
}

func (s *DocumentStore) List(ctx context.Context, offset, limit int) ([]*domain.Document, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []*domain.Document{}
	if limit <= 0 {
		return out, nil
	}
	offset = max(offset, 0)

	for i, id := range sortedKeys(s.db.documents) {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, copyDocument(s.db.documents[id]))
	}
	return out, nil
}
