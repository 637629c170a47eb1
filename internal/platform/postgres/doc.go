// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in internal/store. It owns the schema migrations,
// maps driver errors to store errors, and hands out transaction-scoped
// sessions for background question processing.
package postgres
