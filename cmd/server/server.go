package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const readHeaderTimeout = 10 * time.Second

// startHTTPServer serves router until ctx is cancelled, then shuts down the
// HTTP server, drains background tasks and releases storage, in that order.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	case err := <-serverErr:
		if err != nil {
			app.logger.Error("server failed", "error", err)
			runErr = err
		}
	}

	return errors.Join(runErr, app.shutdown(server))
}

// shutdown stops accepting requests, waits for in-flight tasks, then
// releases storage.
func (app *application) shutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout())
	defer cancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
	}

	if err := app.dispatcher.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("task dispatcher shutdown failed", "error", err)
		errs = append(errs, fmt.Errorf("task dispatcher shutdown failed: %w", err))
	}

	app.cleanup()
	return errors.Join(errs...)
}
