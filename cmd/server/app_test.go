package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/config"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/generation"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/mocks"
	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/platform/simulated"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pollTimeout  = 5 * time.Second
	pollInterval = 10 * time.Millisecond
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "error",
			ShutdownTimeoutSeconds: 5,
		},
		Database: config.DatabaseConfig{Backend: config.BackendMemory},
		LLM:      config.LLMConfig{Provider: config.ProviderSimulated},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gatedGenerator blocks every call until release is closed.
type gatedGenerator struct {
	release chan struct{}
}

func newGatedGenerator() *gatedGenerator {
	return &gatedGenerator{release: make(chan struct{})}
}

func (g *gatedGenerator) GenerateAnswer(ctx context.Context, questionText string) (string, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return simulated.Answer(questionText), nil
}

// newTestApplication wires an application on in-memory storage around gen.
func newTestApplication(t *testing.T, gen generation.Generator) *application {
	t.Helper()

	cfg := testConfig()
	app := &application{
		config:    cfg,
		logger:    testLogger(),
		registry:  prometheus.NewRegistry(),
		generator: gen,
	}

	var err error
	app.storage, err = setupStorage(context.Background(), cfg.Database, app.logger)
	require.NoError(t, err)
	require.NoError(t, app.setupTasks())

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.dispatcher.Shutdown(ctx)
	})
	return app
}

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func newClient(t *testing.T, app *application) *client {
	t.Helper()
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return &client{t: t, srv: srv}
}

func (c *client) do(method, path, body string, out interface{}) int {
	c.t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, r)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type questionBody struct {
	ID         int64   `json:"id"`
	DocumentID int64   `json:"document_id"`
	Question   string  `json:"question"`
	Answer     *string `json:"answer"`
	Status     string  `json:"status"`
}

func (c *client) createDocument(title, content string) int64 {
	c.t.Helper()
	var doc struct {
		ID int64 `json:"id"`
	}
	status := c.do(http.MethodPost, "/documents",
		fmt.Sprintf(`{"title":%q,"content":%q}`, title, content), &doc)
	require.Equal(c.t, http.StatusCreated, status)
	return doc.ID
}

func (c *client) submitQuestion(documentID int64, text string) int64 {
	c.t.Helper()
	var accepted struct {
		QuestionID int64  `json:"question_id"`
		Status     string `json:"status"`
	}
	status := c.do(http.MethodPost, fmt.Sprintf("/questions/%d/question", documentID),
		fmt.Sprintf(`{"question":%q}`, text), &accepted)
	require.Equal(c.t, http.StatusAccepted, status)
	require.Equal(c.t, "pending", accepted.Status)
	return accepted.QuestionID
}

func (c *client) getQuestion(id int64) questionBody {
	c.t.Helper()
	var q questionBody
	require.Equal(c.t, http.StatusOK, c.do(http.MethodGet, fmt.Sprintf("/questions/%d", id), "", &q))
	return q
}

// waitForStatus polls until the question reaches status. The condition runs
// on another goroutine, so it must not call require.
func (c *client) waitForStatus(id int64, status string) questionBody {
	c.t.Helper()
	var q questionBody
	require.Eventually(c.t, func() bool {
		resp, err := c.srv.Client().Get(fmt.Sprintf("%s/questions/%d", c.srv.URL, id))
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()

		var got questionBody
		if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&got) != nil {
			return false
		}
		q = got
		return got.Status == status
	}, pollTimeout, pollInterval)
	return q
}

func TestQuestionLifecycle_Simulated(t *testing.T) {
	t.Parallel()

	app, err := newApplication(context.Background(), testConfig(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.dispatcher.Shutdown(context.Background()) })
	c := newClient(t, app)

	docID := c.createDocument("Guide", "Hello")
	qID := c.submitQuestion(docID, "Q1")

	q := c.waitForStatus(qID, "answered")
	require.NotNil(t, q.Answer)
	assert.Equal(t, "This is a generated answer to your question: Q1", *q.Answer)
	assert.Equal(t, docID, q.DocumentID)
	assert.Equal(t, "Q1", q.Question)
}

func TestQuestionLifecycle_PendingUntilGenerated(t *testing.T) {
	t.Parallel()

	gen := newGatedGenerator()
	app := newTestApplication(t, gen)
	c := newClient(t, app)

	docID := c.createDocument("Guide", "Hello")
	qID := c.submitQuestion(docID, "Q1")

	q := c.getQuestion(qID)
	assert.Equal(t, "pending", q.Status)
	assert.Nil(t, q.Answer)

	close(gen.release)

	q = c.waitForStatus(qID, "answered")
	require.NotNil(t, q.Answer)
	assert.Equal(t, simulated.Answer("Q1"), *q.Answer)
}

func TestSubmitQuestion_UnknownDocument(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, newGatedGenerator())
	c := newClient(t, app)

	var resp map[string]interface{}
	status := c.do(http.MethodPost, "/questions/999/question", `{"question":"Q1"}`, &resp)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Document not found", resp["error"])
	assert.Zero(t, app.dispatcher.InFlight())

	pending, err := app.storage.questions.ListByStatus(context.Background(), domain.QuestionStatusPending, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestConcurrentQuestions(t *testing.T) {
	t.Parallel()

	gen := newGatedGenerator()
	app := newTestApplication(t, gen)
	c := newClient(t, app)

	docID := c.createDocument("Guide", "Hello")

	ids := map[string]int64{}
	for _, text := range []string{"first question", "second question"} {
		ids[text] = c.submitQuestion(docID, text)
	}

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids["first question"], ids["second question"])
	assert.Eventually(t, func() bool { return app.dispatcher.InFlight() == 2 }, pollTimeout, pollInterval)

	close(gen.release)

	for text, id := range ids {
		q := c.waitForStatus(id, "answered")
		require.NotNil(t, q.Answer)
		assert.Equal(t, simulated.Answer(text), *q.Answer)
	}
}

func TestQuestionLifecycle_GenerationFailure(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockGeneratorWithError(generation.ErrGenerationFailed)
	app := newTestApplication(t, gen)
	c := newClient(t, app)

	docID := c.createDocument("Guide", "Hello")
	qID := c.submitQuestion(docID, "Q1")

	q := c.waitForStatus(qID, "failed")
	assert.Nil(t, q.Answer)
	assert.Equal(t, []string{"Q1"}, gen.QuestionTexts())
}

func TestRecoverPendingQuestions(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, mocks.NewMockGeneratorWithAnswer(simulated.Answer("left behind")))
	ctx := context.Background()

	doc, err := domain.NewDocument("Guide", "Hello")
	require.NoError(t, err)
	require.NoError(t, app.storage.documents.Create(ctx, doc))
	q, err := domain.NewQuestion(doc.ID, "left behind")
	require.NoError(t, err)
	require.NoError(t, app.storage.questions.Create(ctx, q))

	n, err := app.dispatcher.Recover(ctx, app.storage.questions, recoverBatchSize)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c := newClient(t, app)
	got := c.waitForStatus(q.ID, "answered")
	require.NotNil(t, got.Answer)
	assert.Equal(t, simulated.Answer("left behind"), *got.Answer)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, newGatedGenerator())
	c := newClient(t, app)

	var health map[string]string
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", &health))
	assert.Equal(t, map[string]string{"status": "ok"}, health)

	resp, err := c.srv.Client().Get(c.srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "qna_tasks_started_total")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, newGatedGenerator())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSetupStorage_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := setupStorage(context.Background(), config.DatabaseConfig{Backend: "sqlite"}, testLogger())
	assert.Error(t, err)
}

func TestSetupGenerator(t *testing.T) {
	t.Parallel()

	gen, err := setupGenerator(context.Background(), config.LLMConfig{Provider: config.ProviderSimulated}, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &simulated.Generator{}, gen)

	_, err = setupGenerator(context.Background(), config.LLMConfig{Provider: "other"}, testLogger())
	assert.Error(t, err)
}
