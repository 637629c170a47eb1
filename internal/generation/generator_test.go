package generation

import (
	"context"
	"errors"
	"testing"
)

func TestGeneratorFunc(t *testing.T) {
	var got string
	g := GeneratorFunc(func(ctx context.Context, text string) (string, error) {
		got = text
		return "answer", nil
	})

	answer, err := g.GenerateAnswer(context.Background(), "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "answer" || got != "question" {
		t.Errorf("got answer %q for %q", answer, got)
	}

	failing := GeneratorFunc(func(ctx context.Context, text string) (string, error) {
		return "", ErrTransientFailure
	})
	if _, err := failing.GenerateAnswer(context.Background(), "q"); !errors.Is(err, ErrTransientFailure) {
		t.Errorf("expected ErrTransientFailure, got %v", err)
	}
}
