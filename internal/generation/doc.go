// Package generation defines the boundary between question processing and
// the language model that produces answers. Implementations live under
// internal/platform (simulated, gemini).
package generation
