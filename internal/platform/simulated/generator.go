package simulated

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/generation"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
)

const answerPrefix = "This is a generated answer to your question: "

// Generator waits Delay before answering. A cancelled context ends the
// wait early with the context's error.
type Generator struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewGenerator creates a simulated generator. A negative delay is treated as zero.
func NewGenerator(delay time.Duration, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		delay:  max(delay, 0),
		logger: logger.With(slog.String("component", "simulated_generator")),
	}
}

var _ generation.Generator = (*Generator)(nil)

// Answer is the text Generator returns for questionText.
func Answer(questionText string) string {
	return answerPrefix + questionText
}

func (g *Generator) GenerateAnswer(ctx context.Context, questionText string) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if strings.TrimSpace(questionText) == "" {
		return "", generation.ErrEmptyQuestion
	}

	log.Debug("simulating answer generation", slog.Duration("delay", g.delay))

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return Answer(questionText), nil
}
