package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/embedding-inference/internal/logger"
)

// FXModule provides a Uber FX module that configures distributed tracing for
// the application. It registers the tracer client with the dependency
// injection system and sets up lifecycle management so spans are flushed to
// the exporter on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewConfig,
		NewClientWithDI,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies needed to create a Tracer.
type TracerParams struct {
	fx.In

	Config Config
	Logger *logger.LoggerClient
}

// NewClientWithDI creates a new Tracer using dependency injection.
// The concrete logger client satisfies the package's Logger interface.
func NewClientWithDI(params TracerParams) *Tracer {
	return NewClient(params.Config, params.Logger)
}

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the FX
// lifecycle. The OnStop hook gracefully shuts down the tracer provider,
// flushing any pending spans to the exporter.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("shutting down tracer...", nil, nil)
			if tracer.tracer == nil {
				tracer.logger.Warn("tracer was nil during shutdown", nil, nil)
				return nil
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
