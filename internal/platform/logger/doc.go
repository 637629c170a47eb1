// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package. Loggers travel in the request
// context so that background work and stores log with the same trace
// attributes as the request that triggered them.
package logger
