package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/store"
	"golang.org/x/sync/semaphore"
)

// Runner performs the background work for one question.
type Runner interface {
	Run(ctx context.Context, questionID int64, questionText string)
}

// DispatcherConfig holds dispatcher options.
type DispatcherConfig struct {
	// MaxInFlight caps concurrently running tasks. Tasks over the cap wait
	// inside their goroutine, so Dispatch never blocks. Zero means unbounded.
	MaxInFlight int
}

// Dispatcher starts background tasks and tracks them until they finish.
type Dispatcher struct {
	runner   Runner
	registry *Registry
	reporter FailureReporter
	metrics  Metrics
	sem      *semaphore.Weighted
	logger   *slog.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// DispatcherOption configures optional dispatcher dependencies.
type DispatcherOption func(*Dispatcher)

// WithMetrics sets the dispatcher metrics sink.
func WithMetrics(m Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithReporter sets where task panics are reported.
func WithReporter(r FailureReporter) DispatcherOption {
	return func(d *Dispatcher) {
		if r != nil {
			d.reporter = r
		}
	}
}

// NewDispatcher creates a dispatcher that hands each question to runner.
func NewDispatcher(
	runner Runner,
	cfg DispatcherConfig,
	logger *slog.Logger,
	opts ...DispatcherOption,
) (*Dispatcher, error) {
	if runner == nil {
		return nil, ErrNilRunner
	}
	if logger == nil {
		logger = slog.Default()
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		runner:   runner,
		registry: NewRegistry(),
		metrics:  noopMetrics{},
		logger:   logger.With(slog.String("component", "task_dispatcher")),
		baseCtx:  baseCtx,
		cancel:   cancel,
	}
	d.reporter = NewLogReporter(logger)
	if cfg.MaxInFlight > 0 {
		d.sem = semaphore.NewWeighted(int64(cfg.MaxInFlight))
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch registers a task for the question and starts it without waiting
// for it to finish. The task context carries ctx's values but is not
// cancelled with ctx.
func (d *Dispatcher) Dispatch(ctx context.Context, questionID int64, questionText string) error {
	if questionID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuestionID, questionID)
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	e, err := d.registry.register(questionID)
	if err != nil {
		d.mu.Unlock()
		return fmt.Errorf("question %d: %w", questionID, err)
	}
	d.wg.Add(1)
	d.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, d.logger).With(
		slog.Int64("question_id", questionID),
		slog.String("task_id", e.handle.TaskID.String()),
	)

	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	taskCtx = logger.WithLogger(taskCtx, log)

	d.metrics.TaskStarted()
	log.Info("task dispatched")

	go d.run(taskCtx, cancel, e, questionText, log)
	return nil
}

func (d *Dispatcher) run(
	ctx context.Context,
	cancel context.CancelFunc,
	e *entry,
	questionText string,
	log *slog.Logger,
) {
	stop := context.AfterFunc(d.baseCtx, cancel)
	questionID := e.handle.QuestionID

	defer func() {
		if p := recover(); p != nil {
			log.Error("task panicked",
				slog.Any("panic", p),
				slog.String("stack", string(debug.Stack())))
			d.reporter.ReportFailure(ctx, Failure{
				QuestionID: questionID,
				Kind:       FailurePanic,
				Err:        fmt.Errorf("panic: %v", p),
			})
		}

		stop()
		cancel()
		elapsed := time.Since(e.handle.StartedAt)
		if d.registry.deregister(e) {
			d.metrics.TaskFinished(elapsed)
		}
		d.wg.Done()
		log.Debug("task finished", slog.Duration("elapsed", elapsed))
	}()

	if d.sem != nil {
		if err := d.sem.Acquire(ctx, 1); err != nil {
			log.Warn("task abandoned before start", slog.String("error", err.Error()))
			return
		}
		defer d.sem.Release(1)
	}

	d.runner.Run(ctx, questionID, questionText)
}

// InFlight returns the number of tasks that have not finished.
func (d *Dispatcher) InFlight() int {
	return d.registry.Len()
}

// Handle returns the handle of the in-flight task for questionID.
func (d *Dispatcher) Handle(questionID int64) (Handle, bool) {
	return d.registry.Get(questionID)
}

// Shutdown stops accepting new tasks and waits for in-flight ones. If ctx
// ends first, running tasks are cancelled, given a short window to record
// their failure, and ctx's error is returned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.logger.Info("shutting down task dispatcher", slog.Int("in_flight", d.InFlight()))

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("task dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		d.logger.Warn("task dispatcher shutdown timed out, cancelling tasks",
			slog.Int("in_flight", d.InFlight()),
			slog.String("error", ctx.Err().Error()))

		// Cancelled tasks get a bounded window to record their failure
		// before the caller releases storage.
		timer := time.NewTimer(failureWriteTimeout)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			d.logger.Error("tasks still running after cancellation",
				slog.Int("in_flight", d.InFlight()))
		}
		return ctx.Err()
	}
}

// Recover dispatches questions left pending by a previous process. It returns
// the number of tasks started.
func (d *Dispatcher) Recover(ctx context.Context, questions store.QuestionStore, limit int) (int, error) {
	pending, err := questions.ListByStatus(ctx, domain.QuestionStatusPending, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending questions: %w", err)
	}

	d.logger.Info("recovering pending questions", slog.Int("pending_count", len(pending)))

	started := 0
	for _, q := range pending {
		if err := d.Dispatch(ctx, q.ID, q.Text); err != nil {
			d.logger.Warn("failed to re-dispatch pending question",
				slog.Int64("question_id", q.ID),
				slog.String("error", err.Error()))
			continue
		}
		started++
	}
	return started, nil
}
