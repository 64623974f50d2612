package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/embedding-inference/internal/cache"
	"github.com/Aleph-Alpha/embedding-inference/internal/scheduler"
	"github.com/Aleph-Alpha/embedding-inference/internal/schema"
	"github.com/Aleph-Alpha/embedding-inference/internal/validation"
)

// batchingConfig echoes the scheduler settings in the info endpoints.
type batchingConfig struct {
	Enabled      bool  `json:"enabled"`
	BatchSize    int   `json:"batch_size"`
	TimeoutMs    int64 `json:"timeout_ms"`
	MaxQueueSize int   `json:"max_queue_size"`
}

type bannerResponse struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Version          string            `json:"version"`
	Model            string            `json:"model"`
	Endpoints        map[string]string `json:"endpoints"`
	SupportedVectors []string          `json:"supported_vectors"`
	Batching         batchingConfig    `json:"batching"`
}

type healthBatching struct {
	batchingConfig
	State      string          `json:"state"`
	QueueDepth int             `json:"queue_depth"`
	Stats      scheduler.Stats `json:"stats"`
}

type healthResponse struct {
	Status    string         `json:"status"`
	Model     string         `json:"model"`
	Batching  healthBatching `json:"batching"`
	Timestamp float64        `json:"timestamp"`
}

type statsResponse struct {
	Batching scheduler.Stats `json:"batching"`
	Config   struct {
		BatchSize    int   `json:"batch_size"`
		TimeoutMs    int64 `json:"timeout_ms"`
		MaxQueueSize int   `json:"max_queue_size"`
	} `json:"config"`
	Timestamp float64 `json:"timestamp"`
}

// handleEmbeddings serves POST /v1/embeddings.
func (s *Server) handleEmbeddings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req schema.EmbeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.countRequest("invalid")
		if errors.Is(err, schema.ErrInvalidInput) {
			s.writeError(w, http.StatusBadRequest, detailInvalidInput)
			return
		}
		s.writeError(w, http.StatusBadRequest, detailMalformedBody)
		return
	}

	model := req.Model
	if model == "" {
		model = s.model
	}
	kinds := req.Kinds()

	// An input that normalizes to zero texts gets an empty response, even
	// when no vector kind is selected. The kinds check only guards real work.
	if req.Input.IsEmpty() {
		s.countRequest("success")
		s.writeJSON(w, http.StatusOK, schema.NewEmptyResponse(model, kinds))
		return
	}

	if !kinds.Any() {
		s.countRequest("invalid")
		s.writeError(w, http.StatusBadRequest, detailNoVectorKind)
		return
	}

	texts := req.Input.Texts()
	if s.validator != nil {
		if err := s.validator.ValidateTexts(texts); err != nil {
			s.countRequest("invalid")
			var verr *validation.Error
			if errors.As(err, &verr) {
				s.writeError(w, http.StatusBadRequest, verr.Detail)
				return
			}
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var key string
	if s.cache != nil && s.cache.Enabled() {
		key = cache.Key(model, kinds, texts)
		if resp, ok := s.cache.Lookup(ctx, key); ok {
			s.countRequest("cached")
			s.writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	resp, err := s.sched.Submit(ctx, texts, kinds, model)
	if err != nil {
		s.respondSubmitError(ctx, w, err, len(texts))
		return
	}

	if key != "" {
		s.cache.Store(ctx, key, resp)
	}
	s.countRequest("success")
	s.writeJSON(w, http.StatusOK, resp)
}

// respondSubmitError maps a scheduler failure to its HTTP shape.
func (s *Server) respondSubmitError(ctx context.Context, w http.ResponseWriter, err error, texts int) {
	switch {
	case scheduler.IsQueueFullError(err):
		s.countRequest("rejected")
		s.writeError(w, http.StatusServiceUnavailable, detailQueueFull)
	case scheduler.IsShuttingDownError(err):
		s.countRequest("rejected")
		s.writeError(w, http.StatusServiceUnavailable, detailShuttingDown)
	case errors.Is(err, context.Canceled):
		// The caller went away; there is nobody left to answer.
		s.countRequest("canceled")
	case errors.Is(err, context.DeadlineExceeded):
		s.countRequest("timeout")
		s.writeError(w, http.StatusGatewayTimeout, detailSubmitTimeout)
	default:
		s.countRequest("error")
		s.logError(ctx, "embedding request failed", err, map[string]interface{}{
			"texts": texts,
		})
		s.writeError(w, http.StatusBadGateway, detailEncodeFailed)
	}
}

// handleListModels serves GET /v1/models.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, schema.NewModelList(schema.NewModelData(s.model)))
}

// handleGetModel serves GET /v1/models/{id}.
func (s *Server) handleGetModel(w http.ResponseWriter, r *http.Request) {
	modelID := r.PathValue("id")
	if modelID != s.model {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("Model %s not found", modelID))
		return
	}
	s.writeJSON(w, http.StatusOK, schema.NewModelData(s.model))
}

// handleRoot serves the GET / service banner.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, bannerResponse{
		Name:        "emb-infer-bge-m3",
		Description: "BGE-M3 embedding inference API with selective vector generation",
		Version:     "3.0",
		Model:       s.model,
		Endpoints: map[string]string{
			"embeddings": "/v1/embeddings",
			"models":     "/v1/models",
			"health":     "/health",
			"stats":      "/stats",
		},
		SupportedVectors: []string{"dense", "sparse", "colbert"},
		Batching:         s.batchingConfig(),
	})
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.enc == nil {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "error",
			"message":   "Model not loaded",
			"timestamp": unixSeconds(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Model:  s.model,
		Batching: healthBatching{
			batchingConfig: s.batchingConfig(),
			State:          s.sched.State(),
			QueueDepth:     s.sched.QueueDepth(),
			Stats:          s.sched.Stats(),
		},
		Timestamp: unixSeconds(),
	})
}

// handleStats serves GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{
		Batching:  s.sched.Stats(),
		Timestamp: unixSeconds(),
	}
	resp.Config.BatchSize = s.schedCfg.BatchSize
	resp.Config.TimeoutMs = s.schedCfg.BatchTimeout.Milliseconds()
	resp.Config.MaxQueueSize = s.schedCfg.MaxQueueSize
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) batchingConfig() batchingConfig {
	return batchingConfig{
		Enabled:      true,
		BatchSize:    s.schedCfg.BatchSize,
		TimeoutMs:    s.schedCfg.BatchTimeout.Milliseconds(),
		MaxQueueSize: s.schedCfg.MaxQueueSize,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logDebug(context.Background(), "response write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorBody{Detail: detail})
}

func (s *Server) countRequest(status string) {
	if s.metrics != nil {
		s.metrics.IncrementRequests(status)
	}
}

func unixSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
