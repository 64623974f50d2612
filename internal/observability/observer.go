package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/embedding-inference/internal/metrics"
)

// PrometheusObserver records operation contexts as Prometheus metrics.
//
// Every observed operation increments a counter labelled by component,
// operation and outcome, and feeds a latency histogram labelled by component
// and operation. Sizes are accumulated in a separate counter so throughput
// (texts, bytes) can be graphed alongside call rates.
type PrometheusObserver struct {
	operationsTotal  *prometheus.CounterVec
	operationSeconds *prometheus.HistogramVec
	operationSize    *prometheus.CounterVec
}

// NewPrometheusObserver creates an observer backed by the given metrics
// collector. The metric vectors are registered once at construction time.
func NewPrometheusObserver(collector metrics.MetricsCollector) *PrometheusObserver {
	return &PrometheusObserver{
		operationsTotal: collector.CreateCounter(
			"component_operations_total",
			"Total number of component operations by outcome",
			[]string{"component", "operation", "status"},
		),
		operationSeconds: collector.CreateHistogram(
			"component_operation_duration_seconds",
			"Duration of component operations in seconds",
			[]string{"component", "operation"},
			prometheus.DefBuckets,
		),
		operationSize: collector.CreateCounter(
			"component_operation_size_total",
			"Accumulated operation sizes (component-defined units)",
			[]string{"component", "operation"},
		),
	}
}

// ObserveOperation implements the Observer interface.
func (o *PrometheusObserver) ObserveOperation(ctx OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	o.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.operationSeconds.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Size > 0 {
		o.operationSize.WithLabelValues(ctx.Component, ctx.Operation).Add(float64(ctx.Size))
	}
}
