package task

import "errors"

var (
	// ErrTaskInFlight is returned when a question already has a running task.
	ErrTaskInFlight = errors.New("task already in flight for question")

	// ErrDispatcherClosed is returned by Dispatch after Shutdown.
	ErrDispatcherClosed = errors.New("dispatcher is shut down")

	// ErrInvalidQuestionID is returned when dispatching a non-positive question ID.
	ErrInvalidQuestionID = errors.New("invalid question ID")

	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilSessions  = errors.New("session provider cannot be nil")
	ErrNilRunner    = errors.New("runner cannot be nil")
)
