package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default configuration values for the response cache.
const (
	// DefaultEnabled keeps the cache off unless explicitly requested.
	DefaultEnabled = false

	// DefaultHost is the Redis host used when CACHE_REDIS_HOST is unset.
	DefaultHost = "localhost"

	// DefaultPort is the Redis port used when CACHE_REDIS_PORT is unset.
	DefaultPort = 6379

	// DefaultDB is the Redis logical database index.
	DefaultDB = 0

	// DefaultTTL bounds how long a cached response stays valid.
	DefaultTTL = time.Hour

	// DefaultDialTimeout bounds connection establishment.
	DefaultDialTimeout = 5 * time.Second

	// DefaultReadTimeout bounds a single GET round trip.
	DefaultReadTimeout = 3 * time.Second

	// DefaultWriteTimeout bounds a single SET round trip.
	DefaultWriteTimeout = 3 * time.Second
)

// keyPrefix namespaces cache entries so a shared Redis instance can host
// other tenants without collisions.
const keyPrefix = "emb:"

// Config holds the Redis connection settings for the response cache.
type Config struct {
	// Enabled toggles the cache. When false the cache becomes a no-op and
	// no Redis connection is opened.
	Enabled bool

	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password authenticates against Redis. Empty means no auth.
	Password string

	// DB selects the Redis logical database.
	DB int

	// TTL is how long a stored response remains retrievable.
	TTL time.Duration

	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration

	// ReadTimeout bounds read round trips.
	ReadTimeout time.Duration

	// WriteTimeout bounds write round trips.
	WriteTimeout time.Duration
}

// NewConfig builds a Config from environment variables, falling back to
// defaults for anything unset.
func NewConfig() *Config {
	return &Config{
		Enabled:      boolFromEnv("CACHE_ENABLED", DefaultEnabled),
		Host:         stringFromEnv("CACHE_REDIS_HOST", DefaultHost),
		Port:         intFromEnv("CACHE_REDIS_PORT", DefaultPort),
		Password:     os.Getenv("CACHE_REDIS_PASSWORD"),
		DB:           intFromEnv("CACHE_REDIS_DB", DefaultDB),
		TTL:          secondsFromEnv("CACHE_TTL_SECONDS", DefaultTTL),
		DialTimeout:  DefaultDialTimeout,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("cache: host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("cache: port %d out of range", c.Port)
	}
	if c.DB < 0 {
		return fmt.Errorf("cache: db index %d must not be negative", c.DB)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache: ttl must be positive, got %s", c.TTL)
	}
	return nil
}

// Addr returns the host:port pair for the Redis client.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Logger is the logging interface the cache uses. It matches the project
// logger so any implementation can be plugged in.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

func stringFromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intFromEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolFromEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func secondsFromEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
