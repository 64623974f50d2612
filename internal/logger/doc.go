// Package logger provides structured logging functionality for the
// embedding-inference service.
//
// The logger package is designed to provide a standardized logging approach
// with features such as log levels, contextual logging, distributed tracing
// integration, and JSON output formatting. It integrates with the fx
// dependency injection framework for easy incorporation into the application.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: Defines the contract for logging operations
//   - LoggerClient struct: Concrete implementation of the Logger interface
//   - NewLoggerClient constructor: Returns *LoggerClient (concrete type)
//   - FX module: Provides both *LoggerClient and Logger interface for dependency injection
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warn, Error, Fatal)
//   - Context-aware logging for request tracing
//   - Automatic trace and span ID extraction from context
//   - JSON output suitable for log collection systems
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/Aleph-Alpha/embedding-inference/internal/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		ServiceName:   "embedding-inference",
//		EnableTracing: true,
//	})
//
//	log.Info("User request accepted", nil, map[string]interface{}{
//		"texts":  3,
//		"model":  "BAAI/bge-m3",
//	})
//
//	// Log with trace context (automatically includes trace_id and span_id)
//	log.InfoWithContext(ctx, "Processing request", nil, map[string]interface{}{
//		"request_id": "abc-123",
//	})
//
// # FX Module Integration
//
// For the production application, include the FXModule which provides both
// the concrete type and the interface:
//
//	app := fx.New(
//	    logger.FXModule, // Provides *LoggerClient and logger.Logger interface
//	    // ... other modules
//	)
//	app.Run()
//
// # Type Aliases in Consumer Code
//
// Consumer packages declare their own small Logger interface covering the
// methods they call, which keeps them decoupled from this package and makes
// them trivial to fake in tests:
//
//	type Logger interface {
//	    Info(msg string, err error, fields ...map[string]interface{})
//	    Error(msg string, err error, fields ...map[string]interface{})
//	}
//
// # Configuration
//
// The logger is configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_ENABLE_TRACING=true      # Enable distributed tracing integration
//	SERVICE_NAME=embedding-inference # Service name added to every entry
//
// # Tracing Integration
//
// When tracing is enabled (EnableTracing: true), the *WithContext methods
// automatically extract trace and span IDs from the context and include them
// in log entries as trace_id and span_id fields. This provides correlation
// between logs and distributed traces in the observability system.
//
// # Thread Safety
//
// All methods on the Logger interface are safe for concurrent use by multiple
// goroutines.
package logger
