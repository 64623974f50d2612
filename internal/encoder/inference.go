package encoder

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type inferenceProvider struct {
	baseURL      string
	serviceToken string
	model        string
	httpClient   *http.Client
}

func newInferenceProvider(cfg *Config) (*inferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing ENCODER_ENDPOINT")
	}

	// Remove trailing slash if user added it.
	base := strings.TrimRight(cfg.Endpoint, "/")

	return &inferenceProvider{
		baseURL:      base,
		serviceToken: cfg.ServiceToken,
		model:        cfg.Model,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// inferenceData mirrors the backend's per-text result object.
type inferenceData struct {
	Index            int             `json:"index"`
	DenseEmbedding   []float64       `json:"dense_embedding"`
	SparseEmbedding  map[int]float64 `json:"sparse_embedding"`
	ColbertEmbedding [][]float64     `json:"colbert_embedding"`
}

// Encode computes the selected vector kinds for the given texts using the
// backend's BGE-M3 selective-vector endpoint.
func (p *inferenceProvider) Encode(ctx context.Context, texts []string, kinds Kinds) ([]Vectors, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("inference: no texts provided")
	}
	if !kinds.Any() {
		return nil, fmt.Errorf("inference: no vector kind selected")
	}

	reqBody := map[string]any{
		"model":          p.model,
		"input":          texts,
		"return_dense":   kinds.Dense,
		"return_sparse":  kinds.Sparse,
		"return_colbert": kinds.MultiVector,
	}

	url := fmt.Sprintf("%s/v1/embeddings", p.baseURL)

	var parsed struct {
		Data []inferenceData `json:"data"`
	}

	if err := p.postJSON(ctx, url, reqBody, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("inference: expected %d results, got %d", len(texts), len(parsed.Data))
	}

	out := make([]Vectors, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = Vectors{
			Dense:       d.DenseEmbedding,
			Sparse:      d.SparseEmbedding,
			MultiVector: d.ColbertEmbedding,
		}
	}

	return out, nil
}
