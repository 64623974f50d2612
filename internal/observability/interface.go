package observability

import "time"

// Observer receives operation-level events from infrastructure components.
// Implementations must be safe for concurrent use.
type Observer interface {
	// ObserveOperation records a single completed operation.
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation on a component.
// All fields except Component and Operation are optional; zero values are
// ignored by observers that have no use for them.
type OperationContext struct {
	// Component identifies the reporting component, e.g. "scheduler" or "cache".
	Component string

	// Operation is the action performed, e.g. "execute-batch" or "get".
	Operation string

	// Resource is the primary object the operation acted on, e.g. a model
	// name or a cache key.
	Resource string

	// SubResource carries additional addressing context, e.g. a batch ID.
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is the operation error, or nil on success.
	Error error

	// Size is an operation-defined size (bytes, items, texts).
	Size int64

	// Metadata holds free-form key-value context for the operation.
	Metadata map[string]interface{}
}
