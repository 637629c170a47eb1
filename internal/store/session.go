package store

import "context"

// SessionFn runs inside a session. The QuestionStore it receives is bound to
// that session and must not be retained after the function returns.
type SessionFn func(ctx context.Context, questions QuestionStore) error

// SessionProvider hands out isolated persistence sessions.
//
// WithSession opens a new session, runs fn, and commits when fn returns nil.
// The session is rolled back when fn returns an error or panics, and is
// released on every path. Implementations must be safe for concurrent use
// and must not depend on any enclosing request scope.
type SessionProvider interface {
	WithSession(ctx context.Context, fn SessionFn) error
}
