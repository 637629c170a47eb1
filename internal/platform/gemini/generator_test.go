package gemini

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/config"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	calls   atomic.Int32
	respond func(call int32, contents []*genai.Content) (*genai.GenerateContentResponse, error)
}

func (f *fakeModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	n := f.calls.Add(1)
	return f.respond(n, contents)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func newTestGenerator(models contentGenerator) *Generator {
	g := newGenerator(slog.Default(), models, "gemini-test")
	g.baseDelay = time.Millisecond
	return g
}

func TestGenerator_GenerateAnswer(t *testing.T) {
	t.Parallel()

	t.Run("success includes question in prompt", func(t *testing.T) {
		t.Parallel()
		var prompt string
		models := &fakeModels{respond: func(_ int32, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
			prompt = contents[0].Parts[0].Text
			return textResponse("  Forty-two.  "), nil
		}}

		answer, err := newTestGenerator(models).GenerateAnswer(context.Background(), "What is the answer?")
		require.NoError(t, err)
		assert.Equal(t, "Forty-two.", answer)
		assert.Contains(t, prompt, "Question: What is the answer?")
	})

	t.Run("transient errors are retried", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{respond: func(call int32, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
			if call < 3 {
				return nil, errors.New("503 unavailable")
			}
			return textResponse("ok"), nil
		}}

		answer, err := newTestGenerator(models).GenerateAnswer(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, "ok", answer)
		assert.Equal(t, int32(3), models.calls.Load())
	})

	t.Run("retries are bounded", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{respond: func(int32, []*genai.Content) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("timeout")
		}}

		_, err := newTestGenerator(models).GenerateAnswer(context.Background(), "q")
		assert.ErrorIs(t, err, generation.ErrTransientFailure)
		assert.Equal(t, int32(defaultMaxRetries+1), models.calls.Load())
	})

	t.Run("safety block is permanent", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{respond: func(int32, []*genai.Content) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}, nil
		}}

		_, err := newTestGenerator(models).GenerateAnswer(context.Background(), "q")
		assert.ErrorIs(t, err, generation.ErrContentBlocked)
		assert.Equal(t, int32(1), models.calls.Load())
	})

	t.Run("empty response is invalid", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{respond: func(int32, []*genai.Content) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		}}

		_, err := newTestGenerator(models).GenerateAnswer(context.Background(), "q")
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("blank question never calls the model", func(t *testing.T) {
		t.Parallel()
		models := &fakeModels{}

		_, err := newTestGenerator(models).GenerateAnswer(context.Background(), " ")
		assert.ErrorIs(t, err, generation.ErrEmptyQuestion)
		assert.Zero(t, models.calls.Load())
	})
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.LLMConfig
	}{
		{name: "missing key", cfg: config.LLMConfig{ModelName: "gemini-2.0-flash"}},
		{name: "missing model", cfg: config.LLMConfig{GeminiAPIKey: "k"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewGenerator(context.Background(), slog.Default(), tc.cfg)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		})
	}

	_, err := NewGenerator(context.Background(), nil, config.LLMConfig{})
	assert.Error(t, err)
}

func TestGenerator_ClassifiesAPIErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantErr   error
		wantCalls int32
	}{
		{"bad request is not retried", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, generation.ErrGenerationFailed, 1},
		{"unauthorized is a config error", genai.APIError{Code: 401, Status: "UNAUTHENTICATED"}, generation.ErrInvalidConfig, 1},
		{"forbidden is a config error", genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}, generation.ErrInvalidConfig, 1},
		{"not found is not retried", genai.APIError{Code: 404, Status: "NOT_FOUND"}, generation.ErrGenerationFailed, 1},
		{"rate limit is retried", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, generation.ErrTransientFailure, 3},
		{"unavailable is retried", genai.APIError{Code: 503, Status: "UNAVAILABLE"}, generation.ErrTransientFailure, 3},
		{"cancelled call is not retried", context.Canceled, generation.ErrGenerationFailed, 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			models := &fakeModels{respond: func(_ int32, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
				return nil, tc.err
			}}

			_, err := newTestGenerator(models).GenerateAnswer(context.Background(), "q")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantCalls, models.calls.Load())
		})
	}
}
