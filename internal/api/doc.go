// Package api implements the HTTP handlers for documents and questions.
//
// Handlers decode and validate requests, call the services in
// internal/service, and map service and domain errors to status codes with
// safe messages. Detailed errors are only logged, after redaction.
package api
