package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TypeQuestionAnswering requests an answer for a newly submitted question.
const TypeQuestionAnswering = "question_answering"

// TaskRequestEvent asks for a background task to be started.
type TaskRequestEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// QuestionAnsweringPayload is the payload of a TypeQuestionAnswering event.
type QuestionAnsweringPayload struct {
	QuestionID int64  `json:"question_id"`
	Question   string `json:"question"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent creates an event of the given type with a JSON payload.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewQuestionAnsweringEvent creates a TypeQuestionAnswering event.
func NewQuestionAnsweringEvent(questionID int64, question string) (*TaskRequestEvent, error) {
	return NewTaskRequestEvent(TypeQuestionAnswering, QuestionAnsweringPayload{
		QuestionID: questionID,
		Question:   question,
	})
}

// EventHandler handles events delivered by an emitter.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
