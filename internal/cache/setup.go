package cache

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/embedding-inference/internal/observability"
)

// RedisCache stores serialized embedding responses in Redis. A disabled
// cache carries a nil client and answers every lookup with a miss.
type RedisCache struct {
	cfg      *Config
	client   redis.UniversalClient
	logger   Logger
	observer observability.Observer

	closeOnce sync.Once
}

// NewCache creates a response cache from the given configuration. When the
// cache is disabled no connection is opened and all operations are no-ops.
//
// Parameters:
//   - cfg: cache configuration, typically from NewConfig
//
// Returns:
//   - *RedisCache: the cache handle
//   - error: configuration validation failure
func NewCache(cfg *Config) (*RedisCache, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &RedisCache{cfg: cfg}
	if cfg.Enabled {
		c.client = redis.NewClient(&redis.Options{
			Addr:         cfg.Addr(),
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		})
	}
	return c, nil
}

// WithLogger attaches a logger and returns the cache for chaining.
func (c *RedisCache) WithLogger(logger Logger) *RedisCache {
	c.logger = logger
	return c
}

// WithObserver attaches an observability observer and returns the cache for
// chaining.
func (c *RedisCache) WithObserver(observer observability.Observer) *RedisCache {
	c.observer = observer
	return c
}

// Enabled reports whether the cache is active.
func (c *RedisCache) Enabled() bool {
	return c.cfg.Enabled && c.client != nil
}

// Ping verifies connectivity to Redis. A disabled cache always reports
// healthy.
func (c *RedisCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection. Safe to call multiple times and on a
// disabled cache.
func (c *RedisCache) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.client != nil {
			err = c.client.Close()
		}
	})
	return err
}

func (c *RedisCache) logDebug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	if c.logger != nil {
		c.logger.DebugWithContext(ctx, msg, nil, fields...)
	}
}

func (c *RedisCache) logInfo(ctx context.Context, msg string, fields ...map[string]interface{}) {
	if c.logger != nil {
		c.logger.InfoWithContext(ctx, msg, nil, fields...)
	}
}

func (c *RedisCache) logWarn(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	if c.logger != nil {
		c.logger.WarnWithContext(ctx, msg, err, fields...)
	}
}
