package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/observability"
	"github.com/Aleph-Alpha/embedding-inference/internal/schema"
	"github.com/Aleph-Alpha/embedding-inference/internal/tracer"
)

// Scheduler lifecycle states, as reported by State().
const (
	StateRunning  = "running"
	StateDraining = "draining"
	StateDrained  = "drained"
)

// entry is one accepted request waiting in, or passing through, the queue.
// It is created on a successful enqueue and never mutated afterwards; it is
// settled exactly once through its result channel.
type entry struct {
	texts      []string
	kinds      encoder.Kinds
	model      string
	enqueuedAt time.Time

	// result is the one-shot channel the submitting caller waits on. It is
	// buffered so the executor never blocks on a caller that gave up.
	result chan outcome
}

// outcome is the settled result of one entry: a response or an error,
// never both.
type outcome struct {
	resp *schema.EmbeddingResponse
	err  error
}

// BatchScheduler groups concurrently arriving embedding requests into shared
// encoder calls. See the package documentation for the batching rules.
//
// BatchScheduler implements the Scheduler interface.
type BatchScheduler struct {
	// cfg holds the batching parameters
	cfg *Config

	// enc is the encoder the executor runs combined calls against
	enc encoder.Encoder

	// logger is used for structured logging
	logger Logger

	// observer provides optional observability hooks for batch executions
	observer observability.Observer

	// tracer provides optional spans around batch executions
	tracer *tracer.Tracer

	// mu guards pending, state and the dispatch decision. Extraction must be
	// atomic with the evaluation that triggered it, or the submit path and
	// the sweeper could claim overlapping entries.
	mu      sync.Mutex
	pending []*entry
	state   string

	// sem bounds how many batch executions run concurrently
	sem *semaphore.Weighted

	// wg tracks in-flight batch executions so Drain can join them
	wg sync.WaitGroup

	// inflight maps running batch IDs to their start time, for the
	// abandoned-batch report when a drain times out
	inflightMu sync.Mutex
	inflight   map[string]time.Time

	// statsMu guards the batching counters
	statsMu          sync.Mutex
	totalBatches     int64
	totalRequests    int64
	lastBatchSeconds float64

	// shutdownSignal is closed when the scheduler begins draining
	shutdownSignal chan struct{}

	closeShutdownOnce sync.Once
	startOnce         sync.Once
}

// NewScheduler creates a BatchScheduler with the provided configuration and
// encoder. The sweeper is not running until Start is called.
//
// Parameters:
//   - cfg: batching parameters, typically from NewConfig()
//   - enc: the encoder combined calls are executed against
//
// Returns:
//   - *BatchScheduler: ready to accept submissions once started
//   - error: configuration error or missing encoder
//
// Example:
//
//	sched, err := scheduler.NewScheduler(scheduler.NewConfig(), enc)
//	if err != nil {
//	    return err
//	}
//	sched.Start()
//	defer sched.Drain(context.Background())
func NewScheduler(cfg *Config, enc encoder.Encoder) (*BatchScheduler, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("scheduler: encoder is required")
	}

	return &BatchScheduler{
		cfg:            cfg,
		enc:            enc,
		pending:        make([]*entry, 0, cfg.MaxQueueSize),
		state:          StateRunning,
		sem:            semaphore.NewWeighted(int64(cfg.ProcessingConcurrency)),
		inflight:       make(map[string]time.Time),
		shutdownSignal: make(chan struct{}),
	}, nil
}

// Start launches the timeout sweeper. Safe to call more than once; only the
// first call has any effect. The fx lifecycle calls this on application start.
func (s *BatchScheduler) Start() {
	s.startOnce.Do(func() {
		go s.sweepLoop()
	})
}

// WithLogger sets the logger for this scheduler and returns the scheduler
// for method chaining.
func (s *BatchScheduler) WithLogger(logger Logger) *BatchScheduler {
	s.logger = logger
	return s
}

// WithObserver sets the observer for this scheduler and returns the
// scheduler for method chaining. The observer receives one event per batch
// execution and per rejected submission.
func (s *BatchScheduler) WithObserver(observer observability.Observer) *BatchScheduler {
	s.observer = observer
	return s
}

// WithTracer sets the tracer for this scheduler and returns the scheduler
// for method chaining. Batch executions are recorded as root spans since a
// batch serves many callers and belongs to none of their traces.
func (s *BatchScheduler) WithTracer(t *tracer.Tracer) *BatchScheduler {
	s.tracer = t
	return s
}

// logDebug logs a debug message using the configured logger if available.
func (s *BatchScheduler) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.DebugWithContext(ctx, msg, nil, fields)
	}
}

// logInfo logs an informational message using the configured logger if available.
func (s *BatchScheduler) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

// logWarn logs a warning message using the configured logger if available.
func (s *BatchScheduler) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.WarnWithContext(ctx, msg, err, fields)
	}
}

// logError logs an error message using the configured logger if available.
// This is used for failures in background goroutines that cannot be returned
// to a caller.
func (s *BatchScheduler) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
