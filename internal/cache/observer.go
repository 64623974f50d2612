package cache

import (
	"time"

	"github.com/Aleph-Alpha/embedding-inference/internal/observability"
)

// observeOperation notifies the observer about a cache operation if one is
// configured.
//
// Notes:
//   - resource: the cache key
//   - size: the serialized payload size in bytes, when known
func (c *RedisCache) observeOperation(operation, resource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component: "cache",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Size:      size,
		Metadata:  metadata,
	})
}
