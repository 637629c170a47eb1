package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		wantIs error
	}{
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{
			name:   "foreign key",
			err:    &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "questions_document_id_fkey"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "check constraint",
			err:    &pgconn.PgError{Code: checkViolationCode, ConstraintName: "questions_answer_status_check"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "not null",
			err:    fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "question"}),
			wantIs: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tc.err), tc.wantIs)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil))
	})

	t.Run("unmapped error passes through", func(t *testing.T) {
		other := errors.New("connection reset")
		assert.Same(t, other, MapError(other))
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}
