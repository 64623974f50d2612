package logger

import (
	"os"
	"strconv"
)

// Log level names accepted in Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// DefaultServiceName is used when SERVICE_NAME is not set.
const DefaultServiceName = "embedding-inference"

// Config defines the configuration for the logger.
type Config struct {
	// Level controls the minimum log level that is emitted.
	// One of "debug", "info", "warning", "error". Defaults to "info".
	//
	// Environment variable: ZAP_LOGGER_LEVEL
	Level string

	// ServiceName is attached to every log entry as the "service" field.
	//
	// Environment variable: SERVICE_NAME
	ServiceName string

	// EnableTracing controls whether the *WithContext methods extract
	// trace and span IDs from the context and attach them to entries.
	//
	// Environment variable: LOGGER_ENABLE_TRACING
	EnableTracing bool
}

// NewConfig reads the logger configuration from environment variables.
func NewConfig() Config {
	enableTracing := false
	if v := os.Getenv("LOGGER_ENABLE_TRACING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			enableTracing = b
		}
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	level := os.Getenv("ZAP_LOGGER_LEVEL")
	if level == "" {
		level = Info
	}

	return Config{
		Level:         level,
		ServiceName:   serviceName,
		EnableTracing: enableTracing,
	}
}
