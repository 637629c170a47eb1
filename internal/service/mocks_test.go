package service

import (
	"context"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/events"
	"github.com/stretchr/testify/mock"
)

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentStore) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	args := m.Called(ctx, id)
	doc, _ := args.Get(0).(*domain.Document)
	return doc, args.Error(1)
}

func (m *MockDocumentStore) List(ctx context.Context, offset, limit int) ([]*domain.Document, error) {
	args := m.Called(ctx, offset, limit)
	docs, _ := args.Get(0).([]*domain.Document)
	return docs, args.Error(1)
}

type MockQuestionStore struct {
	mock.Mock
}

func (m *MockQuestionStore) Create(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionStore) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(*domain.Question)
	return q, args.Error(1)
}

func (m *MockQuestionStore) Update(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionStore) ListByStatus(ctx context.Context, status domain.QuestionStatus, limit int) ([]*domain.Question, error) {
	args := m.Called(ctx, status, limit)
	qs, _ := args.Get(0).([]*domain.Question)
	return qs, args.Error(1)
}

type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
