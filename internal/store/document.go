package store

import (
	"context"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
)

// DocumentStore defines the interface for document persistence.
type DocumentStore interface {
	// Create saves a new document and assigns its ID.
	// Returns validation errors from the domain Document if data is invalid.
	Create(ctx context.Context, doc *domain.Document) error

	// GetByID retrieves a document by its ID.
	// Returns ErrDocumentNotFound if the document does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Document, error)

	// List returns documents ordered by ID, skipping offset and returning at
	// most limit entries. Returns an empty slice when nothing matches.
	List(ctx context.Context, offset, limit int) ([]*domain.Document, error)
}
