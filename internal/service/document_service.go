package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// DefaultListLimit is used when ListDocuments is called with limit 0.
const DefaultListLimit = 100

// DocumentService provides document operations.
type DocumentService interface {
	CreateDocument(ctx context.Context, title, content string) (*domain.Document, error)
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)
	ListDocuments(ctx context.Context, skip, limit int) ([]*domain.Document, error)
}

type documentServiceImpl struct {
	documents store.DocumentStore
	logger    *slog.Logger
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(documents store.DocumentStore, logger *slog.Logger) (DocumentService, error) {
	if documents == nil {
		return nil, &ServiceError{Service: "document", Operation: "create_service", Message: "documents cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &documentServiceImpl{
		documents: documents,
		logger:    logger.With("component", "document_service"),
	}, nil
}

// CreateDocument validates and stores a new document. Validation errors are
// returned unwrapped so callers can match domain sentinels.
func (s *documentServiceImpl) CreateDocument(ctx context.Context, title, content string) (*domain.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc, err := domain.NewDocument(title, content)
	if err != nil {
		log.Debug("document validation failed", "error", err)
		return nil, err
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to create document", "error", err)
		return nil, NewServiceError("document", "create_document", "failed to save document", err)
	}

	log.Info("document created", "document_id", doc.ID)
	return doc, nil
}

func (s *documentServiceImpl) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	if id <= 0 {
		return nil, ErrDocumentNotFound
	}

	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve document",
				"error", err,
				"document_id", id)
		}
		return nil, NewServiceError("document", "get_document", "failed to retrieve document", err)
	}
	return doc, nil
}

func (s *documentServiceImpl) ListDocuments(ctx context.Context, skip, limit int) ([]*domain.Document, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if skip < 0 || limit < 0 {
		return nil, ErrInvalidPagination
	}

	docs, err := s.documents.List(ctx, skip, limit)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list documents", "error", err)
		return nil, NewServiceError("document", "list_documents", "failed to list documents", err)
	}
	return docs, nil
}
