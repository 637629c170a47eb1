package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionProvider_WithSession(t *testing.T) {
	t.Parallel()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		p := NewSessionProvider(db, nil)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE questions").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := p.WithSession(context.Background(), func(ctx context.Context, questions store.QuestionStore) error {
			return questions.Update(ctx, answeredQuestion(t))
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		p := NewSessionProvider(db, nil)

		sentinel := errors.New("generation failed")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := p.WithSession(context.Background(), func(ctx context.Context, questions store.QuestionStore) error {
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
