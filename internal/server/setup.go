package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/Aleph-Alpha/embedding-inference/internal/cache"
	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/metrics"
	"github.com/Aleph-Alpha/embedding-inference/internal/scheduler"
	"github.com/Aleph-Alpha/embedding-inference/internal/tracer"
	"github.com/Aleph-Alpha/embedding-inference/internal/validation"
)

// Server serves the embedding API. Construct it with NewServer, attach
// collaborators with the With* methods, then Start it.
type Server struct {
	cfg      *Config
	sched    scheduler.Scheduler
	schedCfg *scheduler.Config
	model    string

	enc       encoder.Encoder
	validator *validation.Validator
	cache     cache.Cache
	logger    Logger
	metrics   *metrics.Metrics
	tracer    *tracer.Tracer

	httpServer *http.Server
}

// NewServer creates the HTTP server around a scheduler.
//
// Parameters:
//   - cfg: server configuration, typically from NewConfig
//   - sched: the batching scheduler requests are submitted to
//   - schedCfg: the scheduler's configuration, echoed by the info endpoints
//   - model: the model identifier served by default
//
// Returns:
//   - *Server: the server, not yet listening
//   - error: configuration validation failure or a missing dependency
func NewServer(cfg *Config, sched scheduler.Scheduler, schedCfg *scheduler.Config, model string) (*Server, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, fmt.Errorf("server: scheduler must not be nil")
	}
	if schedCfg == nil {
		return nil, fmt.Errorf("server: scheduler config must not be nil")
	}
	if model == "" {
		model = encoder.DefaultModel
	}

	s := &Server{
		cfg:      cfg,
		sched:    sched,
		schedCfg: schedCfg,
		model:    model,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s, nil
}

// WithEncoder attaches the encoder handle used by the health endpoint.
func (s *Server) WithEncoder(enc encoder.Encoder) *Server {
	s.enc = enc
	return s
}

// WithValidator attaches the request text validator.
func (s *Server) WithValidator(v *validation.Validator) *Server {
	s.validator = v
	return s
}

// WithCache attaches the response cache.
func (s *Server) WithCache(c cache.Cache) *Server {
	s.cache = c
	return s
}

// WithLogger attaches a logger and returns the server for chaining.
func (s *Server) WithLogger(logger Logger) *Server {
	s.logger = logger
	return s
}

// WithMetrics attaches the metrics client used by the request middleware.
func (s *Server) WithMetrics(m *metrics.Metrics) *Server {
	s.metrics = m
	return s
}

// WithTracer attaches the tracer used by the request middleware.
func (s *Server) WithTracer(t *tracer.Tracer) *Server {
	s.tracer = t
	return s
}

// Start binds the listen address and begins serving in the background.
// Binding happens synchronously so a taken port fails startup instead of
// surfacing later as a dead server.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Address, err)
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logError(context.Background(), "http server terminated", err, map[string]interface{}{
				"address": s.cfg.Address,
			})
		}
	}()
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) logDebug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	if s.logger != nil {
		s.logger.DebugWithContext(ctx, msg, nil, fields...)
	}
}

func (s *Server) logInfo(ctx context.Context, msg string, fields ...map[string]interface{}) {
	if s.logger != nil {
		s.logger.InfoWithContext(ctx, msg, nil, fields...)
	}
}

func (s *Server) logWarn(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	if s.logger != nil {
		s.logger.WarnWithContext(ctx, msg, err, fields...)
	}
}

func (s *Server) logError(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	if s.logger != nil {
		s.logger.ErrorWithContext(ctx, msg, err, fields...)
	}
}
