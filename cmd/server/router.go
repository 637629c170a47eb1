package main

import (
	"net/http"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/api"
	apiMiddleware "github.com/ayanpanda-github/QnA-AsyncLLM/internal/api/middleware"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	documentHandler := api.NewDocumentHandler(app.documentService, app.logger)
	questionHandler := api.NewQuestionHandler(app.questionService, app.logger)

	r.Route("/documents", func(r chi.Router) {
		r.Post("/", documentHandler.CreateDocument)
		r.Get("/", documentHandler.ListDocuments)
		r.Get("/{id}", documentHandler.GetDocument)
	})

	r.Route("/questions", func(r chi.Router) {
		r.Post("/{documentID}/question", questionHandler.SubmitQuestion)
		r.Get("/{id}", questionHandler.GetQuestion)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
