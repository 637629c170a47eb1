// Package config handles configuration loading, parsing, and validation
// from a .env file, an optional config.yaml and QNA_-prefixed environment
// variables. It provides type-safe access to the settings needed by the
// server, the storage backend, the answer generator and the task dispatcher.
package config
