package generation

import "context"

// Generator produces an answer for a question.
type Generator interface {
	// GenerateAnswer returns a non-empty answer for questionText, or an
	// error (see errors.go). Implementations must honor ctx cancellation.
	GenerateAnswer(ctx context.Context, questionText string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, questionText string) (string, error)

// GenerateAnswer calls f.
func (f GeneratorFunc) GenerateAnswer(ctx context.Context, questionText string) (string, error) {
	return f(ctx, questionText)
}
