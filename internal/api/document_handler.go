package api

import (
	"log/slog"
	"net/http"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/api/shared"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/service"
)

// DocumentHandler handles document-related HTTP requests.
type DocumentHandler struct {
	documentService service.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, log *slog.Logger) *DocumentHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DocumentHandler{
		documentService: documentService,
		logger:          log.With("component", "document_handler"),
	}
}

// CreateDocument handles POST /documents.
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	doc, err := h.documentService.CreateDocument(r.Context(), req.Title, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("document created", "document_id", doc.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, documentToResponse(doc))
}

// GetDocument handles GET /documents/{id}.
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	doc, err := h.documentService.GetDocument(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, documentToResponse(doc))
}

// ListDocuments handles GET /documents?skip=&limit=.
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	skip, err := getQueryInt(r, "skip", 0)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid pagination parameters")
		return
	}
	limit, err := getQueryInt(r, "limit", service.DefaultListLimit)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid pagination parameters")
		return
	}

	docs, err := h.documentService.ListDocuments(r.Context(), skip, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, documentToResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
