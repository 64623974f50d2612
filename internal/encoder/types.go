package encoder

import "context"

// Kinds selects which vector representations a call should produce.
// BGE-M3 supports three: a dense sentence vector, a sparse lexical
// weighting, and ColBERT-style per-token multi-vectors.
type Kinds struct {
	Dense       bool
	Sparse      bool
	MultiVector bool
}

// Any reports whether at least one vector kind is selected.
func (k Kinds) Any() bool {
	return k.Dense || k.Sparse || k.MultiVector
}

// Labels returns the wire names of the selected kinds in canonical order.
func (k Kinds) Labels() []string {
	labels := make([]string, 0, 3)
	if k.Dense {
		labels = append(labels, "dense")
	}
	if k.Sparse {
		labels = append(labels, "sparse")
	}
	if k.MultiVector {
		labels = append(labels, "colbert")
	}
	return labels
}

// Vectors holds the representations computed for one input text.
// Fields for kinds that were not requested remain nil.
type Vectors struct {
	Dense       []float64
	Sparse      map[int]float64
	MultiVector [][]float64
}

// Encoder is the contract consumed by the batching scheduler.
//
// Encode computes vectors for every text in the given order. The returned
// slice is positionally aligned with texts. The call fails atomically: on
// error no per-text results are returned.
type Encoder interface {
	Encode(ctx context.Context, texts []string, kinds Kinds) ([]Vectors, error)
}

// Provider is the internal seam between the public Client and a concrete
// backend implementation.
type Provider interface {
	Encode(ctx context.Context, texts []string, kinds Kinds) ([]Vectors, error)
}
