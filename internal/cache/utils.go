package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/schema"
)

// Key derives the cache key for a request. It hashes the model, the
// requested vector kinds and every text. Texts are length prefixed so that
// ["ab", "c"] and ["a", "bc"] never collide.
func Key(model string, kinds encoder.Kinds, texts []string) string {
	h := sha256.New()
	io.WriteString(h, model)
	h.Write([]byte{0})
	for _, label := range kinds.Labels() {
		io.WriteString(h, label)
		h.Write([]byte{0})
	}
	var size [8]byte
	for _, text := range texts {
		binary.BigEndian.PutUint64(size[:], uint64(len(text)))
		h.Write(size[:])
		io.WriteString(h, text)
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Lookup fetches a cached response. The second return value reports whether
// the lookup hit. Backend errors and undecodable payloads count as misses so
// a degraded Redis never degrades request handling.
//
// Parameters:
//   - ctx: request context, bounds the Redis round trip
//   - key: cache key from Key
//
// Returns:
//   - *schema.EmbeddingResponse: the cached response on a hit, nil otherwise
//   - bool: true on a hit
func (c *RedisCache) Lookup(ctx context.Context, key string) (*schema.EmbeddingResponse, bool) {
	if !c.Enabled() {
		return nil, false
	}

	start := time.Now()
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.observeOperation("lookup", key, time.Since(start), nil, 0, map[string]interface{}{"hit": false})
			return nil, false
		}
		c.observeOperation("lookup", key, time.Since(start), err, 0, map[string]interface{}{"hit": false})
		c.logWarn(ctx, "cache lookup failed", err, map[string]interface{}{"key": key})
		return nil, false
	}

	var resp schema.EmbeddingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		// A payload we cannot decode is useless; let the TTL reap it.
		c.observeOperation("lookup", key, time.Since(start), err, int64(len(raw)), map[string]interface{}{"hit": false})
		c.logWarn(ctx, "cache payload undecodable", err, map[string]interface{}{"key": key})
		return nil, false
	}

	c.observeOperation("lookup", key, time.Since(start), nil, int64(len(raw)), map[string]interface{}{"hit": true})
	c.logDebug(ctx, "cache hit", map[string]interface{}{"key": key})
	return &resp, true
}

// Store writes a response to the cache under the configured TTL. Failures
// are logged and swallowed; a response that could not be cached is still a
// valid response.
func (c *RedisCache) Store(ctx context.Context, key string, resp *schema.EmbeddingResponse) {
	if !c.Enabled() || resp == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		c.logWarn(ctx, "cache payload marshal failed", err, map[string]interface{}{"key": key})
		return
	}

	start := time.Now()
	if err := c.client.Set(ctx, key, raw, c.cfg.TTL).Err(); err != nil {
		c.observeOperation("store", key, time.Since(start), err, int64(len(raw)), nil)
		c.logWarn(ctx, "cache store failed", err, map[string]interface{}{"key": key})
		return
	}
	c.observeOperation("store", key, time.Since(start), nil, int64(len(raw)), nil)
}
