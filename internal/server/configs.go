package server

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default configuration values for the HTTP server.
const (
	// DefaultAddress is the listen address used when SERVER_ADDRESS is unset.
	DefaultAddress = ":8000"

	// DefaultAPIToken is the placeholder bearer token. Deployments must
	// override API_TOKEN; a warning is logged when they do not.
	DefaultAPIToken = "default_token_change_me"

	// DefaultReadTimeout bounds reading a request, header included.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout bounds writing a response. It must leave room for
	// a request to sit queued for a full batch cycle plus the encoder call.
	DefaultWriteTimeout = 120 * time.Second

	// DefaultIdleTimeout bounds how long a keep-alive connection may idle.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout bounds the graceful-shutdown wait for in-flight
	// requests.
	DefaultShutdownTimeout = 15 * time.Second
)

// Config holds the HTTP server settings.
type Config struct {
	// Address is the TCP listen address, e.g. ":8000".
	Address string

	// APIToken is the bearer token protecting the /v1 endpoints.
	APIToken string

	// ReadTimeout bounds reading a request.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration

	// IdleTimeout bounds keep-alive idling.
	IdleTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// CORSAllowAll enables the permissive CORS policy: any origin, any
	// method, any header.
	CORSAllowAll bool
}

// NewConfig builds a Config from environment variables, falling back to
// defaults for anything unset.
func NewConfig() *Config {
	return &Config{
		Address:         stringFromEnv("SERVER_ADDRESS", DefaultAddress),
		APIToken:        stringFromEnv("API_TOKEN", DefaultAPIToken),
		ReadTimeout:     secondsFromEnv("SERVER_READ_TIMEOUT_SECONDS", DefaultReadTimeout),
		WriteTimeout:    secondsFromEnv("SERVER_WRITE_TIMEOUT_SECONDS", DefaultWriteTimeout),
		IdleTimeout:     secondsFromEnv("SERVER_IDLE_TIMEOUT_SECONDS", DefaultIdleTimeout),
		ShutdownTimeout: secondsFromEnv("SERVER_SHUTDOWN_TIMEOUT_SECONDS", DefaultShutdownTimeout),
		CORSAllowAll:    boolFromEnv("SERVER_CORS_ALLOW_ALL", true),
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("server: address must not be empty")
	}
	if c.APIToken == "" {
		return fmt.Errorf("server: api token must not be empty")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		return fmt.Errorf("server: timeouts must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("server: shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// UsingDefaultToken reports whether the placeholder token is still in use.
func (c *Config) UsingDefaultToken() bool {
	return c.APIToken == DefaultAPIToken
}

// Logger is the logging interface the server uses. It matches the project
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
