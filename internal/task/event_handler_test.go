package task

import (
	"context"
	"errors"
	"testing"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/events"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchFunc func(ctx context.Context, questionID int64, questionText string) error

func (f dispatchFunc) Dispatch(ctx context.Context, questionID int64, questionText string) error {
	return f(ctx, questionID, questionText)
}

func TestDispatchEventHandler(t *testing.T) {
	t.Parallel()

	t.Run("dispatches question answering events", func(t *testing.T) {
		var gotID int64
		var gotText string
		h := NewDispatchEventHandler(dispatchFunc(func(_ context.Context, id int64, text string) error {
			gotID, gotText = id, text
			return nil
		}), nil)

		event, err := events.NewQuestionAnsweringEvent(4, "Why?")
		require.NoError(t, err)
		require.NoError(t, h.HandleEvent(context.Background(), event))
		assert.Equal(t, int64(4), gotID)
		assert.Equal(t, "Why?", gotText)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		called := false
		h := NewDispatchEventHandler(dispatchFunc(func(context.Context, int64, string) error {
			called = true
			return nil
		}), nil)

		event, err := events.NewTaskRequestEvent("something_else", map[string]string{})
		require.NoError(t, err)
		require.NoError(t, h.HandleEvent(context.Background(), event))
		assert.False(t, called)
	})

	t.Run("dispatch errors are returned", func(t *testing.T) {
		h := NewDispatchEventHandler(dispatchFunc(func(context.Context, int64, string) error {
			return ErrDispatcherClosed
		}), nil)

		event, err := events.NewQuestionAnsweringEvent(4, "Why?")
		require.NoError(t, err)
		assert.ErrorIs(t, h.HandleEvent(context.Background(), event), ErrDispatcherClosed)
	})

	t.Run("malformed payload", func(t *testing.T) {
		h := NewDispatchEventHandler(dispatchFunc(func(context.Context, int64, string) error {
			return errors.New("should not be called")
		}), nil)

		event := &events.TaskRequestEvent{Type: events.TypeQuestionAnswering, Payload: []byte(`{"question_id":"x"}`)}
		assert.Error(t, h.HandleEvent(context.Background(), event))
	})
}

func TestDispatchEventHandler_LogsWithContextLogger(t *testing.T) {
	t.Parallel()

	reqLogger, buf := logger.NewTestLogger(t)
	ctx := logger.WithLogger(context.Background(), reqLogger.With("trace_id", "abc123"))

	h := NewDispatchEventHandler(dispatchFunc(func(context.Context, int64, string) error {
		return ErrDispatcherClosed
	}), nil)

	event, err := events.NewQuestionAnsweringEvent(9, "q")
	require.NoError(t, err)
	assert.ErrorIs(t, h.HandleEvent(ctx, event), ErrDispatcherClosed)

	entries := logger.FindEntries(t, buf, "failed to dispatch task")
	require.Len(t, entries, 1)
	assert.Equal(t, "abc123", entries[0]["trace_id"])
	assert.EqualValues(t, 9, entries[0]["question_id"])
}
