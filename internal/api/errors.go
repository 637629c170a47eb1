package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/api/shared"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/service"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return http.StatusBadRequest
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		return "Document not found"
	case errors.Is(err, service.ErrQuestionNotFound):
		return "Question not found"
	case errors.Is(err, service.ErrInvalidPagination):
		return "Invalid pagination parameters"
	case errors.Is(err, domain.ErrInvalidDocumentTitle):
		return fmt.Sprintf("Invalid title: must be between %d and %d characters",
			domain.MinDocumentTitleLength, domain.MaxDocumentTitleLength)
	case errors.Is(err, domain.ErrEmptyDocumentContent):
		return "Invalid content: required field"
	case errors.Is(err, domain.ErrEmptyQuestionText):
		return "Invalid question: required field"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message that
// names the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte", "gt":
		return "too small"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. An empty userMessage
// is replaced with GetSafeErrorMessage(err).
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), userMessage, err)
}
