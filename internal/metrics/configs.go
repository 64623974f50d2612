package metrics

import (
	"os"
	"strconv"
)

// DefaultMetricsAddress is used when no listen address is configured.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens.
	//
	// Example values:
	//   - ":9090"          → Listen on all interfaces, port 9090
	//   - "127.0.0.1:9100" → Listen only on localhost, port 9100
	//
	// Environment variable: METRICS_ADDRESS
	// Default: ":9090"
	Address string

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are automatically registered.
	//
	// When true, metrics such as goroutine count, GC stats, and CPU usage
	// are included automatically. Disable only for full manual control
	// over registered collectors.
	//
	// Environment variable: METRICS_ENABLE_DEFAULT_COLLECTORS
	// Default: true
	EnableDefaultCollectors bool

	// ServiceName identifies the service exposing metrics.
	// It is applied as a constant service label on the built-in metrics to
	// distinguish services in shared Prometheus deployments.
	//
	// Environment variable: METRICS_SERVICE_NAME
	// Default: "embedding-inference"
	ServiceName string
}

// NewConfig reads the metrics configuration from environment variables.
func NewConfig() Config {
	address := os.Getenv("METRICS_ADDRESS")
	if address == "" {
		address = DefaultMetricsAddress
	}

	enableDefault := true
	if v := os.Getenv("METRICS_ENABLE_DEFAULT_COLLECTORS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			enableDefault = b
		}
	}

	serviceName := os.Getenv("METRICS_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "embedding-inference"
	}

	return Config{
		Address:                 address,
		EnableDefaultCollectors: enableDefault,
		ServiceName:             serviceName,
	}
}
