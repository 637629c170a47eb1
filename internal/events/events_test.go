package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionAnsweringEvent(t *testing.T) {
	event, err := NewQuestionAnsweringEvent(42, "What is it?")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeQuestionAnswering, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)
	assert.JSONEq(t, `{"question_id":42,"question":"What is it?"}`, string(event.Payload))

	var payload QuestionAnsweringPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, int64(42), payload.QuestionID)
	assert.Equal(t, "What is it?", payload.Question)
}

func TestNewTaskRequestEvent_UnencodablePayload(t *testing.T) {
	_, err := NewTaskRequestEvent("bad", make(chan int))
	assert.Error(t, err)
}
