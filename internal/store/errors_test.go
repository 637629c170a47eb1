package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrDocumentNotFound", ErrDocumentNotFound, true},
		{"wrapped ErrQuestionNotFound", fmt.Errorf("load: %w", ErrQuestionNotFound), true},
		{"ErrQuestionNotPending", ErrQuestionNotPending, false},
		{"StoreError wrapping not found", NewStoreError("question", "get", "lookup", ErrQuestionNotFound), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("question", "update", "failed to write answer", cause)

	assert.Equal(t, "update operation on question failed: failed to write answer: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("document", "create", "invalid title", nil)
	assert.Equal(t, "create operation on document failed: invalid title", bare.Error())
}

func TestErrQuestionNotPending(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrQuestionNotPending, ErrUpdateFailed)
	assert.False(t, errors.Is(ErrQuestionNotPending, ErrQuestionNotFound))
}
