package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/config"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/events"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/generation"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/metrics"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/gemini"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/simulated"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/service"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/task"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// recoverBatchSize bounds how many pending questions are re-dispatched at
// startup.
const recoverBatchSize = 1000

// application holds the shared application dependencies so they can be
// released in order on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	storage  *storage
	registry *prometheus.Registry

	generator  generation.Generator
	dispatcher *task.Dispatcher

	documentService service.DocumentService
	questionService service.QuestionService
}

// newApplication creates an application with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var err error
	app.storage, err = setupStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up storage: %w", err)
	}

	app.generator, err = setupGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize answer generator: %w", err)
	}

	if err := app.setupTasks(); err != nil {
		app.cleanup()
		return nil, err
	}

	if cfg.Task.RecoverPending {
		n, err := app.dispatcher.Recover(ctx, app.storage.questions, recoverBatchSize)
		if err != nil {
			logger.Error("failed to recover pending questions", "error", err)
		} else if n > 0 {
			logger.Info("re-dispatched pending questions", "count", n)
		}
	}

	logger.Info("application initialized successfully")
	return app, nil
}

func setupGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg)
	case config.ProviderSimulated:
		return simulated.NewGenerator(cfg.Delay(), logger.With("component", "llm_generator")), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// setupTasks wires processor, dispatcher, event emitter and services.
func (app *application) setupTasks() error {
	taskMetrics := metrics.NewTaskMetrics(app.registry)
	reporter := task.MultiReporter(task.NewLogReporter(app.logger), taskMetrics)

	processor, err := task.NewQuestionProcessor(
		app.generator,
		app.storage.sessions,
		reporter,
		task.ProcessorConfig{GenerationTimeout: app.config.LLM.Timeout()},
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create question processor: %w", err)
	}

	app.dispatcher, err = task.NewDispatcher(
		processor,
		task.DispatcherConfig{MaxInFlight: app.config.Task.MaxInFlight},
		app.logger,
		task.WithMetrics(taskMetrics),
		task.WithReporter(reporter),
	)
	if err != nil {
		return fmt.Errorf("failed to create task dispatcher: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(task.NewDispatchEventHandler(app.dispatcher, app.logger))

	app.documentService, err = service.NewDocumentService(app.storage.documents, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create document service: %w", err)
	}

	app.questionService, err = service.NewQuestionService(
		app.storage.documents,
		app.storage.questions,
		emitter,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create question service: %w", err)
	}

	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts down.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases storage. Call it after the dispatcher has drained.
func (app *application) cleanup() {
	if app.storage != nil && app.storage.close != nil {
		if err := app.storage.close(); err != nil {
			app.logger.Error("error closing storage", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
