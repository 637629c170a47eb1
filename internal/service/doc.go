// Package service holds the application services behind the HTTP API:
// document management and question submission. Services validate input,
// persist through internal/store, and request background answering by
// emitting events. They translate store errors into the service sentinels
// that the API layer maps to status codes.
package service
