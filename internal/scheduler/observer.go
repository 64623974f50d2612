package scheduler

import (
	"time"

	"github.com/Aleph-Alpha/embedding-inference/internal/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track batch executions and rejected submissions.
//
// Notes:
//   - resource: the model the operation ran against
//   - subResource: the batch ID, when the operation has one
//   - size: the number of texts involved
func (s *BatchScheduler) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "scheduler",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
