// Command embedding-inference runs the BGE-M3 embedding API: an HTTP
// front end that batches concurrent embedding requests before handing them
// to the inference backend.
//
// Configuration is environment-driven; a .env file in the working directory
// is loaded first so local runs stay close to production.
package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/embedding-inference/internal/cache"
	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/logger"
	"github.com/Aleph-Alpha/embedding-inference/internal/metrics"
	"github.com/Aleph-Alpha/embedding-inference/internal/observability"
	"github.com/Aleph-Alpha/embedding-inference/internal/scheduler"
	"github.com/Aleph-Alpha/embedding-inference/internal/server"
	"github.com/Aleph-Alpha/embedding-inference/internal/tracer"
	"github.com/Aleph-Alpha/embedding-inference/internal/validation"
)

func main() {
	_ = godotenv.Load()

	// Module order fixes shutdown order: fx stops in reverse, so the server
	// closes its listener first, the scheduler drains what was admitted, and
	// only then do the encoder and backends go away.
	fx.New(
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		observability.FXModule,
		encoder.FXModule,
		validation.FXModule,
		scheduler.FXModule,
		cache.FXModule,
		server.FXModule,
		fx.Invoke(registerQueueDepthGauge),
		fx.Invoke(logStartupConfiguration),
	).Run()
}

// registerQueueDepthGauge exposes the scheduler's pending queue depth as a
// Prometheus gauge sampled at scrape time.
func registerQueueDepthGauge(m *metrics.Metrics, sched scheduler.Scheduler) {
	m.RegisterGaugeFunc(
		"batch_queue_depth",
		"Number of requests waiting for batch dispatch",
		func() float64 { return float64(sched.QueueDepth()) },
	)
}

// logStartupConfiguration emits one structured entry with the effective
// settings, flagging a default API token without printing any secret.
func logStartupConfiguration(
	log *logger.LoggerClient,
	logCfg logger.Config,
	srvCfg *server.Config,
	schedCfg *scheduler.Config,
	encCfg *encoder.Config,
	cacheCfg *cache.Config,
) {
	log.Info("Configuration loaded successfully", nil, map[string]interface{}{
		"api_token_set":          !srvCfg.UsingDefaultToken(),
		"model_name":             encCfg.Model,
		"encoder_endpoint":       encCfg.Endpoint,
		"max_queue_size":         schedCfg.MaxQueueSize,
		"processing_concurrency": schedCfg.ProcessingConcurrency,
		"batch_size":             schedCfg.BatchSize,
		"batch_timeout_ms":       schedCfg.BatchTimeout.Milliseconds(),
		"cache_enabled":          cacheCfg.Enabled,
		"log_level":              logCfg.Level,
	})
}
