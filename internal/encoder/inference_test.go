package encoder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{
		Endpoint:     srv.URL,
		ServiceToken: "secret",
		Model:        "BAAI/bge-m3",
		HTTPTimeoutS: 5,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestEncodeSendsSelectedKinds(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	var gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}

		resp := map[string]any{
			"data": []map[string]any{
				{
					"index":             0,
					"dense_embedding":   []float64{0.1, 0.2},
					"sparse_embedding":  nil,
					"colbert_embedding": [][]float64{{0.3, 0.4}},
				},
				{
					"index":             1,
					"dense_embedding":   []float64{0.5, 0.6},
					"sparse_embedding":  nil,
					"colbert_embedding": [][]float64{{0.7, 0.8}},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	vectors, err := client.Encode(context.Background(), []string{"first", "second"}, Kinds{Dense: true, MultiVector: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if gotPath != "/v1/embeddings" {
		t.Errorf("expected path /v1/embeddings, got %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["model"] != "BAAI/bge-m3" {
		t.Errorf("expected model BAAI/bge-m3, got %v", gotBody["model"])
	}
	if gotBody["return_dense"] != true || gotBody["return_sparse"] != false || gotBody["return_colbert"] != true {
		t.Errorf("unexpected kind flags in request: %v", gotBody)
	}

	if len(vectors) != 2 {
		t.Fatalf("expected 2 results, got %d", len(vectors))
	}
	if len(vectors[0].Dense) != 2 || vectors[0].Dense[0] != 0.1 {
		t.Errorf("unexpected dense vector: %v", vectors[0].Dense)
	}
	if vectors[0].Sparse != nil {
		t.Errorf("expected nil sparse vector, got %v", vectors[0].Sparse)
	}
	if len(vectors[1].MultiVector) != 1 || vectors[1].MultiVector[0][0] != 0.7 {
		t.Errorf("unexpected multi-vector: %v", vectors[1].MultiVector)
	}
}

func TestEncodeSparseMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"index":0,"sparse_embedding":{"15":0.5,"208":0.25}}]}`))
	})

	vectors, err := client.Encode(context.Background(), []string{"text"}, Kinds{Sparse: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if vectors[0].Sparse[15] != 0.5 || vectors[0].Sparse[208] != 0.25 {
		t.Errorf("unexpected sparse mapping: %v", vectors[0].Sparse)
	}
}

func TestEncodeResultCountMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"index":0,"dense_embedding":[0.1]}]}`))
	})

	_, err := client.Encode(context.Background(), []string{"one", "two"}, Kinds{Dense: true})
	if err == nil {
		t.Fatal("expected error on result count mismatch")
	}
}

func TestEncodeBackendFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	})

	_, err := client.Encode(context.Background(), []string{"text"}, Kinds{Dense: true})
	if err == nil {
		t.Fatal("expected error on backend failure")
	}
}

func TestEncodeRejectsEmptyInput(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if _, err := client.Encode(context.Background(), nil, Kinds{Dense: true}); err == nil {
		t.Fatal("expected error for empty text list")
	}
	if _, err := client.Encode(context.Background(), []string{"text"}, Kinds{}); err == nil {
		t.Fatal("expected error when no kind is selected")
	}
	if called {
		t.Fatal("backend should not be called for invalid input")
	}
}

func TestKindsLabels(t *testing.T) {
	all := Kinds{Dense: true, Sparse: true, MultiVector: true}
	got := all.Labels()
	want := []string{"dense", "sparse", "colbert"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if labels := (Kinds{Sparse: true}).Labels(); len(labels) != 1 || labels[0] != "sparse" {
		t.Fatalf("expected [sparse], got %v", labels)
	}

	if (Kinds{}).Any() {
		t.Fatal("zero Kinds should report Any() == false")
	}
}
