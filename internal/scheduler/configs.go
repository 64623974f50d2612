package scheduler

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default values for configuration
const (
	DefaultMaxQueueSize          = 50
	DefaultBatchSize             = 8
	DefaultBatchTimeout          = 100 * time.Millisecond
	DefaultProcessingConcurrency = 2
	DefaultDrainTimeout          = 10 * time.Second
)

// Config holds the batching parameters.
type Config struct {
	// MaxQueueSize caps how many accepted requests may wait for dispatch.
	// Submissions beyond the cap are rejected with ErrQueueFull.
	MaxQueueSize int

	// BatchSize is the dispatch threshold, and the extraction cap on the
	// submit path.
	BatchSize int

	// BatchTimeout bounds how long the oldest queued request waits before
	// the sweeper forces a partial batch out.
	BatchTimeout time.Duration

	// ProcessingConcurrency bounds how many encoder calls run at once.
	ProcessingConcurrency int

	// DrainTimeout bounds how long Drain waits for in-flight batches.
	DrainTimeout time.Duration
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	return &Config{
		MaxQueueSize:          intFromEnv("MAX_QUEUE_SIZE", DefaultMaxQueueSize),
		BatchSize:             intFromEnv("BATCH_SIZE", DefaultBatchSize),
		BatchTimeout:          millisFromEnv("BATCH_TIMEOUT_MS", DefaultBatchTimeout),
		ProcessingConcurrency: intFromEnv("PROCESSING_CONCURRENCY", DefaultProcessingConcurrency),
		DrainTimeout:          millisFromEnv("DRAIN_TIMEOUT_MS", DefaultDrainTimeout),
	}
}

// Validate ensures the batching parameters are usable.
func (c *Config) Validate() error {
	if c.MaxQueueSize <= 0 {
		return fmt.Errorf("scheduler: MaxQueueSize must be positive, got %d", c.MaxQueueSize)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("scheduler: BatchSize must be positive, got %d", c.BatchSize)
	}
	if c.BatchTimeout <= 0 {
		return fmt.Errorf("scheduler: BatchTimeout must be positive, got %s", c.BatchTimeout)
	}
	if c.ProcessingConcurrency <= 0 {
		return fmt.Errorf("scheduler: ProcessingConcurrency must be positive, got %d", c.ProcessingConcurrency)
	}
	if c.DrainTimeout <= 0 {
		return fmt.Errorf("scheduler: DrainTimeout must be positive, got %s", c.DrainTimeout)
	}
	return nil
}

// Logger is an interface that matches the subset of internal/logger.LoggerClient
// the scheduler uses.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func millisFromEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return def
}
