package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/events"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// QuestionService accepts questions and serves their current state.
type QuestionService interface {
	// SubmitQuestion stores a pending question for the document and requests
	// background answering. It returns as soon as the request is made.
	SubmitQuestion(ctx context.Context, documentID int64, text string) (*domain.Question, error)

	// GetQuestion returns the question as currently stored. It never changes it.
	GetQuestion(ctx context.Context, id int64) (*domain.Question, error)
}

type questionServiceImpl struct {
	documents    store.DocumentStore
	questions    store.QuestionStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewQuestionService creates a QuestionService. It returns an error if any
// required dependency is nil.
func NewQuestionService(
	documents store.DocumentStore,
	questions store.QuestionStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (QuestionService, error) {
	if documents == nil {
		return nil, &ServiceError{Service: "question", Operation: "create_service", Message: "documents cannot be nil"}
	}
	if questions == nil {
		return nil, &ServiceError{Service: "question", Operation: "create_service", Message: "questions cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{Service: "question", Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &questionServiceImpl{
		documents:    documents,
		questions:    questions,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "question_service"),
	}, nil
}

func (s *questionServiceImpl) SubmitQuestion(
	ctx context.Context,
	documentID int64,
	text string,
) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q, err := domain.NewQuestion(documentID, text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDocumentID) {
			return nil, ErrDocumentNotFound
		}
		log.Debug("question validation failed", "error", err, "document_id", documentID)
		return nil, err
	}

	if _, err := s.documents.GetByID(ctx, documentID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("question submitted for unknown document", "document_id", documentID)
		} else {
			log.Error("failed to look up document", "error", err, "document_id", documentID)
		}
		return nil, NewServiceError("question", "submit_question", "failed to look up document", err)
	}

	if err := s.questions.Create(ctx, q); err != nil {
		// The document can disappear between the lookup and the insert.
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, ErrDocumentNotFound
		}
		log.Error("failed to create question", "error", err, "document_id", documentID)
		return nil, NewServiceError("question", "submit_question", "failed to save question", err)
	}

	log = log.With("question_id", q.ID, "document_id", documentID)
	log.Info("question created with pending status")

	event, err := events.NewQuestionAnsweringEvent(q.ID, q.Text)
	if err == nil {
		err = s.eventEmitter.EmitEvent(ctx, event)
	}
	if err != nil {
		log.Error("failed to request answer generation", "error", err)
		s.abandon(ctx, q, log)
		return nil, NewServiceError("question", "submit_question", "failed to start answer generation", err)
	}

	log.Debug("answer generation requested", "event_id", event.ID)
	return q, nil
}

// abandon marks a question failed when no task could be started for it, so
// it does not stay pending forever.
func (s *questionServiceImpl) abandon(ctx context.Context, q *domain.Question, log *slog.Logger) {
	failed := *q
	if err := failed.MarkFailed(); err != nil {
		return
	}
	if err := s.questions.Update(ctx, &failed); err != nil {
		log.Error("failed to mark undispatched question failed", "error", err)
	}
}

func (s *questionServiceImpl) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	if id <= 0 {
		return nil, ErrQuestionNotFound
	}

	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve question",
				"error", err,
				"question_id", id)
		}
		return nil, NewServiceError("question", "get_question", "failed to retrieve question", err)
	}
	return q, nil
}
