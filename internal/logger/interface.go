package logger

import "context"

// Logger defines the contract for logging operations.
// It is implemented by the concrete *LoggerClient type.
//
// Consumer packages usually declare their own narrow interface with just the
// methods they call; this full interface exists for dependency injection and
// for consumers that need the complete surface.
type Logger interface {
	// Debug logs a debug-level message with optional error and structured fields.
	Debug(msg string, err error, fields ...map[string]interface{})

	// Info logs an informational message with optional error and structured fields.
	Info(msg string, err error, fields ...map[string]interface{})

	// Warn logs a warning message with optional error and structured fields.
	Warn(msg string, err error, fields ...map[string]interface{})

	// Error logs an error message with optional error and structured fields.
	Error(msg string, err error, fields ...map[string]interface{})

	// Fatal logs a critical message and terminates the application.
	Fatal(msg string, err error, fields ...map[string]interface{})

	// DebugWithContext logs a debug-level message enriched with trace context.
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// InfoWithContext logs an informational message enriched with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message enriched with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message enriched with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
