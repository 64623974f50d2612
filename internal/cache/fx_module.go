package cache

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/embedding-inference/internal/logger"
	"github.com/Aleph-Alpha/embedding-inference/internal/observability"
)

// FXModule provides the response cache to an fx application.
var FXModule = fx.Module("cache",
	fx.Provide(
		NewConfig,
		NewCacheWithDI,
		fx.Annotate(
			ProvideCache,
			fx.As(new(Cache)),
		),
	),
	fx.Invoke(RegisterCacheLifecycle),
)

// CacheParams declares the dependencies for constructing the cache.
type CacheParams struct {
	fx.In

	Config   *Config
	Logger   *logger.LoggerClient   `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewCacheWithDI constructs the cache with its optional collaborators wired
// in when present.
func NewCacheWithDI(params CacheParams) (*RedisCache, error) {
	c, err := NewCache(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		c = c.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		c = c.WithObserver(params.Observer)
	}
	return c, nil
}

// ProvideCache wraps the concrete *RedisCache and returns it as the Cache
// interface consumed by the HTTP layer.
func ProvideCache(c *RedisCache) Cache {
	return c
}

// RegisterCacheLifecycle pings Redis on startup and closes the connection on
// shutdown. An unreachable Redis is logged, never fatal; the client
// reconnects on its own once the backend comes back.
func RegisterCacheLifecycle(lc fx.Lifecycle, c *RedisCache) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !c.Enabled() {
				c.logInfo(ctx, "response cache disabled")
				return nil
			}
			if err := c.Ping(ctx); err != nil {
				c.logWarn(ctx, "response cache unreachable, continuing without it", err, map[string]interface{}{
					"addr": c.cfg.Addr(),
				})
				return nil
			}
			c.logInfo(ctx, "response cache connected", map[string]interface{}{
				"addr": c.cfg.Addr(),
				"ttl":  c.cfg.TTL.String(),
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
}
