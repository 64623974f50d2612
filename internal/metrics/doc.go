// Package metrics provides Prometheus-based monitoring for the
// embedding-inference service.
//
// The package exposes a dedicated /metrics endpoint on its own HTTP server,
// registers Go runtime and process collectors, and offers factory methods for
// components that need custom counters, histograms, or gauges.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides both *Metrics and MetricsCollector for dependency injection
//
// Core Features:
//   - Configurable /metrics endpoint for Prometheus scraping
//   - Isolated registry per service instance to avoid metric collisions
//   - A constant service label applied to the built-in metrics
//   - Automatic registration of Go runtime and process-level collectors
//   - Dynamic metric factories for counters, histograms, and gauges
//   - Gauge functions for sampling live values such as queue depth
//   - Graceful startup and shutdown via Fx lifecycle hooks
//
// # Usage
//
//	cfg := metrics.Config{
//	    Address:                 ":9090",
//	    EnableDefaultCollectors: true,
//	    ServiceName:             "embedding-inference",
//	}
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
// Access metrics at: http://localhost:9090/metrics
//
// # Configuration
//
// The metrics server is configured via environment variables:
//
//	METRICS_ADDRESS=:9090
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_SERVICE_NAME=embedding-inference
package metrics
