package task

import "time"

// Metrics observes the dispatcher. internal/metrics provides a Prometheus
// implementation.
type Metrics interface {
	TaskStarted()
	TaskFinished(elapsed time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) TaskStarted() {}
func (noopMetrics) TaskFinished(time.Duration) {}
