package tracer

import (
	"os"
	"strconv"
)

// Config defines the configuration for the tracer.
type Config struct {
	// ServiceName is reported as the OpenTelemetry service.name resource
	// attribute on every exported span.
	//
	// Environment variable: SERVICE_NAME
	// Default: "embedding-inference"
	ServiceName string

	// AppEnv tags spans with the deployment environment, e.g. "production".
	//
	// Environment variable: APP_ENV
	// Default: "development"
	AppEnv string

	// EnableExport controls whether spans are shipped to an OTLP collector.
	// The collector endpoint is taken from the standard OTEL_EXPORTER_OTLP_*
	// environment variables. When false, spans are created but not exported.
	//
	// Environment variable: TRACER_ENABLE_EXPORT
	// Default: false
	EnableExport bool
}

// NewConfig reads the tracer configuration from environment variables.
func NewConfig() Config {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "embedding-inference"
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	enableExport := false
	if v := os.Getenv("TRACER_ENABLE_EXPORT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			enableExport = b
		}
	}

	return Config{
		ServiceName:  serviceName,
		AppEnv:       appEnv,
		EnableExport: enableExport,
	}
}
