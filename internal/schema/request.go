package schema

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
)

// Input is the polymorphic input field of an embedding request.
//
// Three JSON forms are accepted:
//   - "a text"            → one text
//   - ["text a", "text b"] → multiple texts
//   - [101, 2023, 102]     → one synthetic text of space-joined integers
//
// Anything else fails decoding with ErrInvalidInput. The normalized text
// list is available via Texts.
type Input struct {
	texts []string
	raw   json.RawMessage
}

// NewInput builds an Input from an already-normalized text list.
// Mostly useful in tests and internal construction.
func NewInput(texts ...string) Input {
	return Input{texts: texts}
}

// UnmarshalJSON decodes the three accepted input forms.
func (in *Input) UnmarshalJSON(data []byte) error {
	in.raw = append(json.RawMessage(nil), data...)

	// Scalar string form.
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		in.texts = []string{single}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return ErrInvalidInput
	}

	if len(items) == 0 {
		in.texts = nil
		return nil
	}

	// Array-of-strings form.
	texts := make([]string, 0, len(items))
	allStrings := true
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			allStrings = false
			break
		}
		texts = append(texts, s)
	}
	if allStrings {
		in.texts = texts
		return nil
	}

	// Array-of-integers form: folded into a single synthetic text so the
	// encoder still receives plain strings.
	tokens := make([]string, 0, len(items))
	for _, item := range items {
		var n int64
		if err := json.Unmarshal(item, &n); err != nil {
			return ErrInvalidInput
		}
		tokens = append(tokens, strconv.FormatInt(n, 10))
	}
	in.texts = []string{strings.Join(tokens, " ")}
	return nil
}

// MarshalJSON round-trips the original JSON form when known,
// otherwise emits the normalized text list.
func (in Input) MarshalJSON() ([]byte, error) {
	if in.raw != nil {
		return in.raw, nil
	}
	if in.texts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(in.texts)
}

// Texts returns the normalized text list.
func (in Input) Texts() []string {
	return in.texts
}

// IsEmpty reports whether the input normalizes to zero texts.
func (in Input) IsEmpty() bool {
	return len(in.texts) == 0
}

// EmbeddingRequest is the body of POST /v1/embeddings.
//
// The three return flags default to true when absent, mirroring the
// behavior clients of the BGE-M3 API expect: a bare request yields all
// vector kinds.
type EmbeddingRequest struct {
	Model          string `json:"model"`
	Input          Input  `json:"input"`
	ReturnDense    *bool  `json:"return_dense,omitempty"`
	ReturnSparse   *bool  `json:"return_sparse,omitempty"`
	ReturnColbert  *bool  `json:"return_colbert,omitempty"`
	EncodingFormat string `json:"encoding_format,omitempty"`
	User           string `json:"user,omitempty"`
}

// Kinds resolves the request's vector-kind flags with their defaults applied.
func (r *EmbeddingRequest) Kinds() encoder.Kinds {
	return encoder.Kinds{
		Dense:       boolOr(r.ReturnDense, true),
		Sparse:      boolOr(r.ReturnSparse, true),
		MultiVector: boolOr(r.ReturnColbert, true),
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
