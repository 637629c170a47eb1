package api

import (
	"log/slog"
	"net/http"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/api/shared"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/logger"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/service"
)

// QuestionHandler handles question submission and polling.
type QuestionHandler struct {
	questionService service.QuestionService
	logger          *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService service.QuestionService, log *slog.Logger) *QuestionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &QuestionHandler{
		questionService: questionService,
		logger:          log.With("component", "question_handler"),
	}
}

// SubmitQuestion handles POST /questions/{documentID}/question.
// The answer is produced in the background, so a successful submission
// returns 202 with the pending question's ID.
func (h *QuestionHandler) SubmitQuestion(w http.ResponseWriter, r *http.Request) {
	documentID, err := getPathID(r, "documentID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SubmitQuestionRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	q, err := h.questionService.SubmitQuestion(r.Context(), documentID, req.Question)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("question accepted",
		"question_id", q.ID,
		"document_id", documentID)

	shared.RespondWithJSON(w, r, http.StatusAccepted, QuestionAcceptedResponse{
		QuestionID: q.ID,
		Status:     string(q.Status),
	})
}

// GetQuestion handles GET /questions/{id}.
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	q, err := h.questionService.GetQuestion(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, questionToResponse(q))
}
