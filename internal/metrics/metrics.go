// Package metrics exposes background task activity as Prometheus collectors.
package metrics

import (
	"context"
	"time"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/task"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "qna"

// TaskMetrics implements task.Metrics and task.FailureReporter.
type TaskMetrics struct {
	Started  prometheus.Counter
	Finished prometheus.Counter
	InFlight prometheus.Gauge
	Duration prometheus.Histogram
	Failures *prometheus.CounterVec
}

var (
	_ task.Metrics         = (*TaskMetrics)(nil)
	_ task.FailureReporter = (*TaskMetrics)(nil)
)

// NewTaskMetrics creates the collectors and registers them with reg.
func NewTaskMetrics(reg prometheus.Registerer) *TaskMetrics {
	m := &TaskMetrics{
		Started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "tasks_started_total",
			Help: "Number of question answering tasks dispatched.",
		}),
		Finished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "tasks_finished_total",
			Help: "Number of question answering tasks that finished, whatever the outcome.",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "tasks_in_flight",
			Help: "Number of question answering tasks currently registered.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "task_duration_seconds",
			Help:    "Time from dispatch to completion of a question answering task.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "task_failures_total",
			Help: "Number of background failures by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.Started, m.Finished, m.InFlight, m.Duration, m.Failures)
	return m
}

func (m *TaskMetrics) TaskStarted() {
	m.Started.Inc()
	m.InFlight.Inc()
}

func (m *TaskMetrics) TaskFinished(elapsed time.Duration) {
	m.Finished.Inc()
	m.InFlight.Dec()
	m.Duration.Observe(elapsed.Seconds())
}

func (m *TaskMetrics) ReportFailure(_ context.Context, f task.Failure) {
	m.Failures.WithLabelValues(string(f.Kind)).Inc()
}
