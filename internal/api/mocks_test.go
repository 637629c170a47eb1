package api

import (
	"context"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, title, content string) (*domain.Document, error) {
	args := m.Called(ctx, title, content)
	if d := args.Get(0); d != nil {
		return d.(*domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) ListDocuments(ctx context.Context, skip, limit int) ([]*domain.Document, error) {
	args := m.Called(ctx, skip, limit)
	if d := args.Get(0); d != nil {
		return d.([]*domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) SubmitQuestion(ctx context.Context, documentID int64, text string) (*domain.Question, error) {
	args := m.Called(ctx, documentID, text)
	if q := args.Get(0); q != nil {
		return q.(*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionService) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if q := args.Get(0); q != nil {
		return q.(*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}
