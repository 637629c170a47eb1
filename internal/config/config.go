package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds how long shutdown waits for in-flight
	// requests and background tasks.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ShutdownTimeout returns the shutdown budget as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Backend      string `mapstructure:"backend" validate:"required,oneof=postgres memory"`
	URL          string `mapstructure:"url" validate:"required_if=Backend postgres,omitempty,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// Answer generator providers.
const (
	ProviderSimulated = "simulated"
	ProviderGemini    = "gemini"
)

// LLMConfig contains settings for the answer generator.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=simulated gemini"`
	// DelaySeconds is the latency of the simulated generator.
	DelaySeconds int `mapstructure:"delay_seconds" validate:"gte=0"`
	// TimeoutSeconds bounds a single generation call. Zero means no bound.
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	GeminiAPIKey   string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	ModelName      string `mapstructure:"model_name" validate:"required_if=Provider gemini"`
}

// Delay returns the simulated generator latency.
func (c LLMConfig) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// Timeout returns the per-generation timeout, zero when unbounded.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TaskConfig contains background task settings.
type TaskConfig struct {
	// MaxInFlight caps concurrently running question processors.
	// Zero leaves concurrency unbounded.
	MaxInFlight int `mapstructure:"max_in_flight" validate:"gte=0"`
	// RecoverPending re-dispatches questions left pending by a previous
	// process when the server starts.
	RecoverPending bool `mapstructure:"recover_pending"`
}
