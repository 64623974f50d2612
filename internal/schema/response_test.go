package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
)

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		texts []string
		want  int
	}{
		{nil, 0},
		{[]string{""}, 0},
		{[]string{"hello world"}, 2},                       // 2 * 1.3 = 2.6
		{[]string{"one two three four"}, 5},                // 4 * 1.3 = 5.2
		{[]string{"hello world", "one two three"}, 6},      // 2.6 + 3.9 = 6.5
		{[]string{"  padded   with   whitespace  "}, 3},    // Fields ignores runs
	}

	for _, tc := range cases {
		if got := EstimateTokens(tc.texts); got != tc.want {
			t.Errorf("EstimateTokens(%v) = %d, want %d", tc.texts, got, tc.want)
		}
	}
}

func TestNewEmbeddingData_FiltersKinds(t *testing.T) {
	vectors := encoder.Vectors{
		Dense:       []float64{0.1, 0.2},
		Sparse:      map[int]float64{7: 0.5},
		MultiVector: [][]float64{{0.3}},
	}

	data := NewEmbeddingData(2, vectors, encoder.Kinds{Sparse: true})

	if data.Object != "embedding" {
		t.Errorf("expected object embedding, got %q", data.Object)
	}
	if data.Index != 2 {
		t.Errorf("expected index 2, got %d", data.Index)
	}
	if data.DenseEmbedding != nil {
		t.Error("dense should be filtered out")
	}
	if data.SparseEmbedding == nil || data.SparseEmbedding[7] != 0.5 {
		t.Errorf("expected sparse kept, got %v", data.SparseEmbedding)
	}
	if data.ColbertEmbedding != nil {
		t.Error("colbert should be filtered out")
	}
}

func TestNewEmbeddingData_RequestedButMissingStaysNil(t *testing.T) {
	// The backend computed dense only; a caller asking for sparse gets null.
	vectors := encoder.Vectors{Dense: []float64{0.1}}

	data := NewEmbeddingData(0, vectors, encoder.Kinds{Sparse: true, MultiVector: true})
	if data.DenseEmbedding != nil || data.SparseEmbedding != nil || data.ColbertEmbedding != nil {
		t.Errorf("expected all vector fields nil, got %+v", data)
	}
}

func TestNewEmptyResponse(t *testing.T) {
	resp := NewEmptyResponse("BAAI/bge-m3", encoder.Kinds{Dense: true, Sparse: true})

	if resp.Object != "list" {
		t.Errorf("expected object list, got %q", resp.Object)
	}
	if resp.Model != "BAAI/bge-m3" {
		t.Errorf("unexpected model %q", resp.Model)
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected no data, got %d items", len(resp.Data))
	}
	if resp.Usage.PromptTokens != 0 || resp.Usage.TotalTokens != 0 {
		t.Errorf("expected zero usage, got %+v", resp.Usage)
	}
	if len(resp.EmbeddingTypes) != 2 || resp.EmbeddingTypes[0] != "dense" || resp.EmbeddingTypes[1] != "sparse" {
		t.Errorf("unexpected embedding types %v", resp.EmbeddingTypes)
	}

	// Data must serialize as [], not null.
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"data":[]`) {
		t.Errorf("expected empty data array on the wire, got %s", out)
	}
}

func TestModelList_Shape(t *testing.T) {
	list := NewModelList(NewModelData("BAAI/bge-m3"))

	if list.Object != "list" || len(list.Data) != 1 {
		t.Fatalf("unexpected list %+v", list)
	}

	model := list.Data[0]
	if model.ID != "BAAI/bge-m3" || model.Object != "model" || model.OwnedBy != "organization" {
		t.Errorf("unexpected model data %+v", model)
	}
	if model.Root != "BAAI/bge-m3" || model.Parent != nil {
		t.Errorf("unexpected root/parent %+v", model)
	}

	out, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"permission":[]`) {
		t.Errorf("expected empty permission array on the wire, got %s", out)
	}
}
