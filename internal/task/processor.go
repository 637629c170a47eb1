package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/generation"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
)

// failureWriteTimeout bounds the write that moves a question to failed.
const failureWriteTimeout = 5 * time.Second

// ProcessorConfig holds question processor options.
type ProcessorConfig struct {
	// GenerationTimeout bounds one generator call. Zero means no bound.
	GenerationTimeout time.Duration
}

// QuestionProcessor answers one question and records the outcome.
type QuestionProcessor struct {
	generator generation.Generator
	sessions  store.SessionProvider
	reporter  FailureReporter
	cfg       ProcessorConfig
	logger    *slog.Logger
}

var _ Runner = (*QuestionProcessor)(nil)

// NewQuestionProcessor creates a processor. A nil reporter logs failures.
func NewQuestionProcessor(
	generator generation.Generator,
	sessions store.SessionProvider,
	reporter FailureReporter,
	cfg ProcessorConfig,
	logger *slog.Logger,
) (*QuestionProcessor, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if sessions == nil {
		return nil, ErrNilSessions
	}
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = NewLogReporter(logger)
	}

	return &QuestionProcessor{
		generator: generator,
		sessions:  sessions,
		reporter:  reporter,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "question_processor")),
	}, nil
}

// Run generates an answer and moves the question to answered. If generation
// or persistence fails, the question is moved to failed instead. Errors are
// reported, never returned.
func (p *QuestionProcessor) Run(ctx context.Context, questionID int64, questionText string) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	log.Info("generating answer")
	start := time.Now()

	answer, err := p.generate(ctx, questionText)
	if err != nil {
		p.report(ctx, questionID, FailureGeneration, err)
		p.markFailed(ctx, questionID)
		return
	}

	log.Debug("answer generated", slog.Duration("elapsed", time.Since(start)))

	err = p.sessions.WithSession(ctx, func(ctx context.Context, questions store.QuestionStore) error {
		q, err := questions.GetByID(ctx, questionID)
		if err != nil {
			return err
		}
		if err := q.MarkAnswered(answer); err != nil {
			return err
		}
		return questions.Update(ctx, q)
	})

	switch {
	case err == nil:
		log.Info("question answered", slog.Duration("elapsed", time.Since(start)))
	case isAlreadyFinal(err):
		log.Info("question already finalized, answer discarded")
	case errors.Is(err, store.ErrQuestionNotFound):
		p.report(ctx, questionID, FailureNotFound, err)
	default:
		p.report(ctx, questionID, FailurePersistence, err)
		p.markFailed(ctx, questionID)
	}
}

func (p *QuestionProcessor) generate(ctx context.Context, questionText string) (string, error) {
	if p.cfg.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.GenerationTimeout)
		defer cancel()
	}

	answer, err := p.generator.GenerateAnswer(ctx, questionText)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%w: empty answer", generation.ErrInvalidResponse)
	}
	return answer, nil
}

// markFailed moves the question to failed in a new session. If that fails
// too, the question stays pending and the failure is reported.
//
// The write runs detached from ctx's cancellation, bounded by
// failureWriteTimeout, so a task cancelled at shutdown still records its
// outcome.
func (p *QuestionProcessor) markFailed(ctx context.Context, questionID int64) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureWriteTimeout)
	defer cancel()

	err := p.sessions.WithSession(ctx, func(ctx context.Context, questions store.QuestionStore) error {
		q, err := questions.GetByID(ctx, questionID)
		if err != nil {
			return err
		}
		if err := q.MarkFailed(); err != nil {
			return err
		}
		return questions.Update(ctx, q)
	})

	switch {
	case err == nil:
		log.Info("question marked failed")
	case isAlreadyFinal(err):
		log.Info("question already finalized, not marking failed")
	case errors.Is(err, store.ErrQuestionNotFound):
		p.report(ctx, questionID, FailureNotFound, err)
	default:
		p.report(ctx, questionID, FailurePersistence, fmt.Errorf("failed to mark question failed: %w", err))
	}
}

func (p *QuestionProcessor) report(ctx context.Context, questionID int64, kind FailureKind, err error) {
	p.reporter.ReportFailure(ctx, Failure{QuestionID: questionID, Kind: kind, Err: err})
}

func isAlreadyFinal(err error) bool {
	return errors.Is(err, domain.ErrQuestionFinalized) || errors.Is(err, store.ErrQuestionNotPending)
}
