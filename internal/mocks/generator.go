package mocks

import (
	"context"
	"sync"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	// GenerateAnswerFn overrides the default response when set.
	GenerateAnswerFn func(ctx context.Context, questionText string) (string, error)

	// Default response values
	Answer string
	Err    error

	mu            sync.Mutex
	questionTexts []string
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateAnswer records the call and returns the configured response.
func (m *MockGenerator) GenerateAnswer(ctx context.Context, questionText string) (string, error) {
	m.mu.Lock()
	m.questionTexts = append(m.questionTexts, questionText)
	m.mu.Unlock()

	if m.GenerateAnswerFn != nil {
		return m.GenerateAnswerFn(ctx, questionText)
	}
	return m.Answer, m.Err
}

// Calls returns the number of GenerateAnswer calls so far.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.questionTexts)
}

// QuestionTexts returns the question texts passed to GenerateAnswer, in
// call order.
func (m *MockGenerator) QuestionTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.questionTexts...)
}

// NewMockGeneratorWithAnswer creates a MockGenerator that always returns answer.
func NewMockGeneratorWithAnswer(answer string) *MockGenerator {
	return &MockGenerator{Answer: answer}
}

// NewMockGeneratorWithError creates a MockGenerator that always fails with err.
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
