// Package cache provides an optional Redis-backed response cache for
// embedding requests.
//
// Identical inputs produce identical embeddings, so a response computed once
// can be served again without touching the batching queue or the encoder.
// The cache key covers everything that shapes a response: the model, the
// requested vector kinds and the normalized texts.
//
// The cache is best-effort by contract. A lookup failure is a miss, a store
// failure is a warning, and an unreachable Redis never fails a request or
// application startup. It ships disabled; set CACHE_ENABLED=true to turn it
// on.
//
// # Configuration
//
//	CACHE_ENABLED=false
//	CACHE_REDIS_HOST=localhost
//	CACHE_REDIS_PORT=6379
//	CACHE_REDIS_PASSWORD=
//	CACHE_REDIS_DB=0
//	CACHE_TTL_SECONDS=3600
package cache
