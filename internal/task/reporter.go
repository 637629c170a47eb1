package task

import (
	"context"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/redact"
)

// FailureKind classifies a background failure.
type FailureKind string

const (
	FailureGeneration  FailureKind = "generation"
	FailureNotFound    FailureKind = "not_found"
	FailurePersistence FailureKind = "persistence"
	FailurePanic       FailureKind = "panic"
)

// Failure is a background error that could not be returned to a caller.
type Failure struct {
	QuestionID int64
	Kind       FailureKind
	Err        error
}

// FailureReporter receives background failures. Implementations must be safe
// for concurrent use and must not block for long.
type FailureReporter interface {
	ReportFailure(ctx context.Context, f Failure)
}

// ReporterFunc adapts a function to FailureReporter.
type ReporterFunc func(ctx context.Context, f Failure)

func (fn ReporterFunc) ReportFailure(ctx context.Context, f Failure) {
	fn(ctx, f)
}

// LogReporter writes failures to a structured logger.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a LogReporter. If logger is nil, the default logger is used.
func NewLogReporter(l *slog.Logger) *LogReporter {
	if l == nil {
		l = slog.Default()
	}
	return &LogReporter{logger: l.With(slog.String("component", "failure_reporter"))}
}

func (r *LogReporter) ReportFailure(ctx context.Context, f Failure) {
	errText := ""
	if f.Err != nil {
		errText = redact.Error(f.Err)
	}
	logger.FromContextOrDefault(ctx, r.logger).Error("background task failed",
		slog.Int64("question_id", f.QuestionID),
		slog.String("kind", string(f.Kind)),
		slog.String("error", errText))
}

type multiReporter []FailureReporter

func (m multiReporter) ReportFailure(ctx context.Context, f Failure) {
	for _, r := range m {
		r.ReportFailure(ctx, f)
	}
}

// MultiReporter fans a failure out to every non-nil reporter in order.
func MultiReporter(reporters ...FailureReporter) FailureReporter {
	out := make(multiReporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
