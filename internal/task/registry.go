package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handle describes a running task.
type Handle struct {
	TaskID     uuid.UUID
	QuestionID int64
	StartedAt  time.Time
	// Done is closed when the task has been removed from the registry.
	Done <-chan struct{}
}

type entry struct {
	handle Handle
	done   chan struct{}
}

// Registry tracks in-flight tasks by question ID. The mutex only guards map
// access; no I/O happens while it is held.
type Registry struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int64]*entry)}
}

// register adds a handle for questionID, or fails with ErrTaskInFlight.
func (r *Registry) register(questionID int64) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[questionID]; ok {
		return nil, ErrTaskInFlight
	}

	done := make(chan struct{})
	e := &entry{
		handle: Handle{
			TaskID:     uuid.New(),
			QuestionID: questionID,
			StartedAt:  time.Now().UTC(),
			Done:       done,
		},
		done: done,
	}
	r.entries[questionID] = e
	return e, nil
}

// deregister removes e and closes its Done channel. It reports false if e
// was already removed.
func (r *Registry) deregister(e *entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.entries[e.handle.QuestionID]
	if !ok || current != e {
		return false
	}
	delete(r.entries, e.handle.QuestionID)
	close(e.done)
	return true
}

// Get returns the handle for questionID if a task is in flight.
func (r *Registry) Get(questionID int64) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[questionID]
	if !ok {
		return Handle{}, false
	}
	return e.handle, true
}

// Len returns the number of in-flight tasks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
