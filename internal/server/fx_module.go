package server

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/embedding-inference/internal/cache"
	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/logger"
	"github.com/Aleph-Alpha/embedding-inference/internal/metrics"
	"github.com/Aleph-Alpha/embedding-inference/internal/scheduler"
	"github.com/Aleph-Alpha/embedding-inference/internal/tracer"
	"github.com/Aleph-Alpha/embedding-inference/internal/validation"
)

// FXModule provides the HTTP server to an fx application.
//
// Invoke this module after the scheduler's module: fx runs stop hooks in
// reverse registration order, which shuts the server down first and lets the
// scheduler drain requests the server already admitted.
var FXModule = fx.Module("server",
	fx.Provide(
		NewConfig,
		NewServerWithDI,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// ServerParams declares the dependencies for constructing the server.
type ServerParams struct {
	fx.In

	Config          *Config
	Scheduler       scheduler.Scheduler
	SchedulerConfig *scheduler.Config
	EncoderConfig   *encoder.Config
	Encoder         encoder.Encoder
	Validator       *validation.Validator
	Cache           cache.Cache            `optional:"true"`
	Logger          *logger.LoggerClient   `optional:"true"`
	Metrics         *metrics.Metrics       `optional:"true"`
	Tracer          *tracer.Tracer         `optional:"true"`
}

// NewServerWithDI constructs the server with its optional collaborators
// wired in when present.
func NewServerWithDI(params ServerParams) (*Server, error) {
	s, err := NewServer(params.Config, params.Scheduler, params.SchedulerConfig, params.EncoderConfig.Model)
	if err != nil {
		return nil, err
	}

	s = s.WithEncoder(params.Encoder).WithValidator(params.Validator)
	if params.Cache != nil {
		s = s.WithCache(params.Cache)
	}
	if params.Logger != nil {
		s = s.WithLogger(params.Logger)
	}
	if params.Metrics != nil {
		s = s.WithMetrics(params.Metrics)
	}
	if params.Tracer != nil {
		s = s.WithTracer(params.Tracer)
	}
	return s, nil
}

// RegisterServerLifecycle starts the listener on startup and drains
// connections on shutdown.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if s.cfg.UsingDefaultToken() {
				s.logWarn(ctx, "API_TOKEN is using the default value - change this", nil)
			}
			if err := s.Start(); err != nil {
				return err
			}
			s.logInfo(ctx, "http server listening", map[string]interface{}{
				"address": s.cfg.Address,
				"model":   s.model,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logInfo(ctx, "stopping http server")
			return s.Shutdown(ctx)
		},
	})
}
