package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/logger"
	"github.com/Aleph-Alpha/embedding-inference/internal/observability"
	"github.com/Aleph-Alpha/embedding-inference/internal/tracer"
)

// FXModule is an fx.Module that provides and configures the batch scheduler.
//
// The module provides:
// 1. *Config (NewConfig) from environment variables
// 2. *BatchScheduler (concrete type) for direct use
// 3. Scheduler interface for dependency injection
// 4. Lifecycle management: sweeper start and graceful drain
//
// Usage:
//
//	app := fx.New(
//	    scheduler.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module(
	"scheduler",

	fx.Provide(
		NewConfig,          // -> *Config
		NewSchedulerWithDI, // -> *BatchScheduler
		fx.Annotate(
			ProvideScheduler,      // Returns Scheduler interface
			fx.As(new(Scheduler)), // Expose as Scheduler interface
		),
	),

	fx.Invoke(RegisterSchedulerLifecycle),
)

// SchedulerParams groups the dependencies needed to create the scheduler
type SchedulerParams struct {
	fx.In

	Config   *Config
	Encoder  encoder.Encoder
	Logger   *logger.LoggerClient   `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
}

// NewSchedulerWithDI creates the batch scheduler using dependency injection.
// The logger, observer and tracer are optional; the scheduler works without
// any of them, which keeps it easy to construct in tests.
func NewSchedulerWithDI(params SchedulerParams) (*BatchScheduler, error) {
	s, err := NewScheduler(params.Config, params.Encoder)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		s.logger = params.Logger
	}
	if params.Observer != nil {
		s.observer = params.Observer
	}
	if params.Tracer != nil {
		s.tracer = params.Tracer
	}

	return s, nil
}

// ProvideScheduler wraps the concrete *BatchScheduler and returns it as the
// Scheduler interface consumed by the HTTP layer.
func ProvideScheduler(s *BatchScheduler) Scheduler {
	return s
}

// RegisterSchedulerLifecycle starts the sweeper when the application starts
// and drains the scheduler when it stops. The fx shutdown order runs this
// hook after the HTTP server has stopped accepting requests, so the drain
// sees no new intake.
func RegisterSchedulerLifecycle(lc fx.Lifecycle, s *BatchScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Drain(ctx)
			return nil
		},
	})
}

// Drain stops intake and winds the scheduler down.
//
// The sequence:
//  1. Flip to draining: every subsequent Submit fails with ErrShuttingDown.
//  2. Stop the timeout sweeper.
//  3. Execute whatever is still queued as one final batch, synchronously.
//  4. Wait for in-flight batch executions up to DrainTimeout or until ctx
//     is canceled; executions still running past the deadline are logged
//     with their batch IDs and left to finish on their own.
//
// Drain always completes: abandonment is reported, never returned. Calling
// Drain on a scheduler that is already draining or drained is a no-op.
func (s *BatchScheduler) Drain(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.state = StateDraining
	rest := s.takeAllLocked()
	s.mu.Unlock()

	s.closeShutdownOnce.Do(func() {
		close(s.shutdownSignal)
	})

	s.logInfo(ctx, "draining batch scheduler", map[string]interface{}{
		"queued": len(rest),
	})

	if len(rest) > 0 {
		s.runBatch(rest)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(s.cfg.DrainTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		s.logWarn(ctx, "drain timeout exceeded, abandoning in-flight batches", nil, map[string]interface{}{
			"abandoned": s.inflightBatches(),
		})
	case <-ctx.Done():
		s.logWarn(ctx, "drain canceled, abandoning in-flight batches", ctx.Err(), map[string]interface{}{
			"abandoned": s.inflightBatches(),
		})
	}

	s.mu.Lock()
	s.state = StateDrained
	s.mu.Unlock()

	s.logInfo(ctx, "batch scheduler drained", nil)
}
