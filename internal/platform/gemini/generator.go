package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/config"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/generation"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries = 2
	defaultBaseDelay  = time.Second
)

const promptText = `Answer the following question clearly and concisely.

Question: {{.Question}}
`

var promptTemplate = template.Must(template.New("answer").Parse(promptText))

// contentGenerator is the part of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator answers questions with a Gemini model.
type Generator struct {
	logger     *slog.Logger
	models     contentGenerator
	model      string
	maxRetries int
	baseDelay  time.Duration
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator validates cfg and creates a Gemini client.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "gemini generator initialized", slog.String("model", cfg.ModelName))
	return newGenerator(logger, client.Models, cfg.ModelName), nil
}

func newGenerator(logger *slog.Logger, models contentGenerator, model string) *Generator {
	return &Generator{
		logger:     logger.With(slog.String("component", "gemini_generator")),
		models:     models,
		model:      model,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
}

func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

func buildPrompt(questionText string) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, struct{ Question string }{questionText}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// GenerateAnswer sends the question to the model and returns its text.
func (g *Generator) GenerateAnswer(ctx context.Context, questionText string) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if strings.TrimSpace(questionText) == "" {
		return "", generation.ErrEmptyQuestion
	}

	prompt, err := buildPrompt(questionText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		answer, err := g.call(ctx, prompt)
		if err == nil {
			log.Info("gemini call succeeded", slog.Int("attempt", attempt+1))
			return answer, nil
		}

		log.Warn("gemini call failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		if !errors.Is(err, generation.ErrTransientFailure) {
			return "", err
		}
		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)", err, g.maxRetries)
		}

		// delay = base * 2^attempt * [0.5, 1.0)
		backoff := float64(g.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("%w: %w", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// call makes one request and classifies its outcome.
func (g *Generator) call(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}

	var sb strings.Builder
	if content := resp.Candidates[0].Content; content != nil {
		for _, part := range content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty content", generation.ErrInvalidResponse)
	}
	return text, nil
}

// classifyError decides whether a GenerateContent failure is worth retrying.
// Rate limits and server errors are transient; other API errors are not.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
		case apiErr.Code == 408 || apiErr.Code == 429 || apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		default:
			return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
		}
	}

	// Network and transport failures carry no status code.
	return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
}
