package scheduler

import "errors"

// Common scheduler errors
var (
	// ErrQueueFull is returned when the pending queue is at capacity.
	// The request was not accepted and the caller may retry later.
	ErrQueueFull = errors.New("scheduler: queue full")

	// ErrShuttingDown is returned when the scheduler no longer accepts
	// requests because a drain is in progress or has completed.
	ErrShuttingDown = errors.New("scheduler: shutting down")
)

// IsQueueFullError checks if the error is a queue capacity rejection.
func IsQueueFullError(err error) bool {
	return errors.Is(err, ErrQueueFull)
}

// IsShuttingDownError checks if the error is a shutdown rejection.
func IsShuttingDownError(err error) bool {
	return errors.Is(err, ErrShuttingDown)
}
