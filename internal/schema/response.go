package schema

import (
	"strings"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
)

// EmbeddingData is one per-text result item. Vector fields for kinds the
// caller did not request (or that were not computed) are null on the wire.
type EmbeddingData struct {
	Object           string          `json:"object"`
	Index            int             `json:"index"`
	DenseEmbedding   []float64       `json:"dense_embedding"`
	SparseEmbedding  map[int]float64 `json:"sparse_embedding"`
	ColbertEmbedding [][]float64     `json:"colbert_embedding"`
}

// Usage carries the request's approximate token accounting.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// EmbeddingResponse is the body returned by POST /v1/embeddings.
type EmbeddingResponse struct {
	Object         string          `json:"object"`
	Data           []EmbeddingData `json:"data"`
	Model          string          `json:"model"`
	Usage          Usage           `json:"usage"`
	EmbeddingTypes []string        `json:"embedding_types"`
}

// NewEmbeddingData builds a result item for one text, keeping only the
// vector kinds the caller requested. Vectors that were not computed stay nil
// even when requested.
func NewEmbeddingData(index int, vectors encoder.Vectors, kinds encoder.Kinds) EmbeddingData {
	data := EmbeddingData{
		Object: "embedding",
		Index:  index,
	}
	if kinds.Dense {
		data.DenseEmbedding = vectors.Dense
	}
	if kinds.Sparse {
		data.SparseEmbedding = vectors.Sparse
	}
	if kinds.MultiVector {
		data.ColbertEmbedding = vectors.MultiVector
	}
	return data
}

// NewEmptyResponse builds the response for a request whose input normalized
// to zero texts: no data, zero usage, but the requested types still echoed.
func NewEmptyResponse(model string, kinds encoder.Kinds) *EmbeddingResponse {
	return &EmbeddingResponse{
		Object:         "list",
		Data:           []EmbeddingData{},
		Model:          model,
		Usage:          Usage{},
		EmbeddingTypes: kinds.Labels(),
	}
}

// EstimateTokens approximates the token count of the given texts for usage
// accounting: whitespace word count scaled by 1.3, truncated after summing.
func EstimateTokens(texts []string) int {
	total := 0.0
	for _, text := range texts {
		total += float64(len(strings.Fields(text))) * 1.3
	}
	return int(total)
}
