package service

import (
	"errors"
	"fmt"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// Service sentinel errors. The API layer maps them to status codes.
var (
	// ErrDocumentNotFound indicates that the referenced document does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrQuestionNotFound indicates that the requested question does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrInvalidPagination indicates a negative skip or a non-positive limit.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// ServiceError wraps unexpected errors from a service with context.
type ServiceError struct {
	// Service is the service that failed (e.g., "question", "document")
	Service string
	// Operation is the operation that failed (e.g., "submit_question")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err. Known not-found conditions are returned as the
// matching service sentinel instead.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrDocumentNotFound), errors.Is(err, store.ErrDocumentNotFound):
		return ErrDocumentNotFound
	case errors.Is(err, ErrQuestionNotFound), errors.Is(err, store.ErrQuestionNotFound):
		return ErrQuestionNotFound
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
