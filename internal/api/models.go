package api

import (
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
)

// CreateDocumentRequest is the body of POST /documents.
type CreateDocumentRequest struct {
	Title   string `json:"title"   validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

// DocumentResponse is the representation of a stored document.
type DocumentResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitQuestionRequest is the body of POST /questions/{documentID}/question.
type SubmitQuestionRequest struct {
	Question string `json:"question" validate:"required,min=1"`
}

// QuestionAcceptedResponse is returned once a question has been accepted
// for background answering.
type QuestionAcceptedResponse struct {
	QuestionID int64  `json:"question_id"`
	Status     string `json:"status"`
}

// QuestionResponse is the representation of a stored question. Answer is
// null until the question is answered.
type QuestionResponse struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Question   string    `json:"question"`
	Answer     *string   `json:"answer"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func documentToResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

func questionToResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		DocumentID: q.DocumentID,
		Question:   q.Text,
		Answer:     q.Answer,
		Status:     string(q.Status),
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}
