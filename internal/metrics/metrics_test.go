package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/task"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTaskMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTaskMetrics(reg)

	m.TaskStarted()
	m.TaskStarted()
	m.TaskFinished(250 * time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Started))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Finished))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.InFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))

	m.ReportFailure(context.Background(), task.Failure{Kind: task.FailureGeneration})
	m.ReportFailure(context.Background(), task.Failure{Kind: task.FailureGeneration})
	m.ReportFailure(context.Background(), task.Failure{Kind: task.FailurePanic})

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Failures.WithLabelValues("generation")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Failures.WithLabelValues("panic")))
}

func TestNewTaskMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewTaskMetrics(reg)
	assert.Panics(t, func() { NewTaskMetrics(reg) })
}
