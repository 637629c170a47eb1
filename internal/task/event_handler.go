package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/events"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
)

// DispatchEventHandler turns question answering events into dispatched tasks.
type DispatchEventHandler struct {
	dispatcher interface {
		Dispatch(ctx context.Context, questionID int64, questionText string) error
	}
	logger *slog.Logger
}

// NewDispatchEventHandler creates a handler that dispatches to d.
func NewDispatchEventHandler(
	d interface {
		Dispatch(ctx context.Context, questionID int64, questionText string) error
	},
	logger *slog.Logger,
) *DispatchEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatchEventHandler{
		dispatcher: d,
		logger:     logger.With("component", "dispatch_event_handler"),
	}
}

var _ events.EventHandler = (*DispatchEventHandler)(nil)

// HandleEvent dispatches question answering events and ignores other types.
func (h *DispatchEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	if event.Type != events.TypeQuestionAnswering {
		log.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.QuestionAnsweringPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		log.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := h.dispatcher.Dispatch(ctx, payload.QuestionID, payload.Question); err != nil {
		log.Error("failed to dispatch task",
			"error", err,
			"question_id", payload.QuestionID,
			"event_id", event.ID)
		return fmt.Errorf("failed to dispatch task: %w", err)
	}

	log.Debug("task dispatched from event",
		"question_id", payload.QuestionID,
		"event_id", event.ID)
	return nil
}
