// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// SessionProvider is the seam between request handling and background
// work: every call opens its own transaction scope, so a background task
// never touches the session of the request that spawned it.
package store
