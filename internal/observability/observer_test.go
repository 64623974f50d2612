package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// fakeCollector creates unregistered metric vectors, which is enough to
// verify label wiring without a registry or HTTP server.
type fakeCollector struct{}

func (fakeCollector) IncrementRequests(status string) {}

func (fakeCollector) RecordRequestDuration(start time.Time, endpoint string) {}

func (fakeCollector) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
}

func (fakeCollector) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
}

func (fakeCollector) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
}

func (fakeCollector) RegisterGaugeFunc(name, help string, fn func() float64) {}

func TestObserveOperationSuccessStatus(t *testing.T) {
	obs := NewPrometheusObserver(fakeCollector{})

	obs.ObserveOperation(OperationContext{
		Component: "scheduler",
		Operation: "execute-batch",
		Duration:  25 * time.Millisecond,
	})

	got := testutil.ToFloat64(obs.operationsTotal.WithLabelValues("scheduler", "execute-batch", "success"))
	if got != 1 {
		t.Fatalf("expected success counter 1, got %v", got)
	}
}

func TestObserveOperationErrorStatus(t *testing.T) {
	obs := NewPrometheusObserver(fakeCollector{})

	obs.ObserveOperation(OperationContext{
		Component: "cache",
		Operation: "get",
		Error:     errors.New("connection refused"),
	})

	got := testutil.ToFloat64(obs.operationsTotal.WithLabelValues("cache", "get", "error"))
	if got != 1 {
		t.Fatalf("expected error counter 1, got %v", got)
	}

	success := testutil.ToFloat64(obs.operationsTotal.WithLabelValues("cache", "get", "success"))
	if success != 0 {
		t.Fatalf("expected success counter 0, got %v", success)
	}
}

func TestObserveOperationAccumulatesSize(t *testing.T) {
	obs := NewPrometheusObserver(fakeCollector{})

	obs.ObserveOperation(OperationContext{Component: "scheduler", Operation: "execute-batch", Size: 8})
	obs.ObserveOperation(OperationContext{Component: "scheduler", Operation: "execute-batch", Size: 3})

	got := testutil.ToFloat64(obs.operationSize.WithLabelValues("scheduler", "execute-batch"))
	if got != 11 {
		t.Fatalf("expected accumulated size 11, got %v", got)
	}
}
