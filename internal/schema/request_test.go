package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestInput_SingleString(t *testing.T) {
	var req EmbeddingRequest
	if err := json.Unmarshal([]byte(`{"input":"hello world"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	texts := req.Input.Texts()
	if len(texts) != 1 || texts[0] != "hello world" {
		t.Errorf("expected one text, got %v", texts)
	}
	if req.Input.IsEmpty() {
		t.Error("expected non-empty input")
	}
}

func TestInput_StringArray(t *testing.T) {
	var req EmbeddingRequest
	if err := json.Unmarshal([]byte(`{"input":["first","second","third"]}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	texts := req.Input.Texts()
	if len(texts) != 3 {
		t.Fatalf("expected 3 texts, got %d", len(texts))
	}
	if texts[0] != "first" || texts[2] != "third" {
		t.Errorf("unexpected texts: %v", texts)
	}
}

func TestInput_IntegerArray(t *testing.T) {
	var req EmbeddingRequest
	if err := json.Unmarshal([]byte(`{"input":[101,2023,102]}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	texts := req.Input.Texts()
	if len(texts) != 1 {
		t.Fatalf("expected one synthetic text, got %d", len(texts))
	}
	if texts[0] != "101 2023 102" {
		t.Errorf("expected space-joined integers, got %q", texts[0])
	}
}

func TestInput_EmptyArray(t *testing.T) {
	var req EmbeddingRequest
	if err := json.Unmarshal([]byte(`{"input":[]}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.Input.IsEmpty() {
		t.Error("expected empty input")
	}
}

func TestInput_AbsentField(t *testing.T) {
	var req EmbeddingRequest
	if err := json.Unmarshal([]byte(`{"model":"BAAI/bge-m3"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.Input.IsEmpty() {
		t.Error("expected empty input when the field is absent")
	}
}

func TestInput_InvalidForms(t *testing.T) {
	cases := []string{
		`{"input":{"text":"x"}}`,
		`{"input":[1,"two"]}`,
		`{"input":[true]}`,
		`{"input":42}`,
	}
	for _, body := range cases {
		var req EmbeddingRequest
		err := json.Unmarshal([]byte(body), &req)
		if err == nil {
			t.Errorf("expected error for %s", body)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %s, got %v", body, err)
		}
	}
}

func TestInput_MarshalRoundTrip(t *testing.T) {
	var req EmbeddingRequest
	if err := json.Unmarshal([]byte(`{"input":[101,2023]}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := json.Marshal(req.Input)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `[101,2023]` {
		t.Errorf("expected original form preserved, got %s", out)
	}
}

func TestRequestKinds_Defaults(t *testing.T) {
	var req EmbeddingRequest
	if err := json.Unmarshal([]byte(`{"input":"x"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	kinds := req.Kinds()
	if !kinds.Dense || !kinds.Sparse || !kinds.MultiVector {
		t.Errorf("expected all kinds enabled by default, got %+v", kinds)
	}
}

func TestRequestKinds_ExplicitSelection(t *testing.T) {
	var req EmbeddingRequest
	body := `{"input":"x","return_dense":false,"return_sparse":true,"return_colbert":false}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	kinds := req.Kinds()
	if kinds.Dense || !kinds.Sparse || kinds.MultiVector {
		t.Errorf("expected sparse only, got %+v", kinds)
	}
	if !kinds.Any() {
		t.Error("expected Any() == true")
	}
}
