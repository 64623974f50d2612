package cache

import (
	"context"

	"github.com/Aleph-Alpha/embedding-inference/internal/schema"
)

// Cache is the consumer-facing interface for the response cache,
// implemented by the concrete *RedisCache type.
type Cache interface {
	// Enabled reports whether the cache is active.
	Enabled() bool

	// Ping verifies connectivity to the backend.
	Ping(ctx context.Context) error

	// Lookup fetches a cached response by key. The bool reports a hit.
	Lookup(ctx context.Context, key string) (*schema.EmbeddingResponse, bool)

	// Store writes a response under the configured TTL. Best effort.
	Store(ctx context.Context, key string, resp *schema.EmbeddingResponse)
}
