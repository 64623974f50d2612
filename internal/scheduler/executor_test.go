package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
)

func TestCombineTexts_PartitionsExactly(t *testing.T) {
	batch := []*entry{
		{texts: []string{"a1", "a2"}},
		{texts: []string{"b1"}},
		{texts: []string{"c1", "c2", "c3"}},
	}

	texts, bounds := combineTexts(batch)

	want := []string{"a1", "a2", "b1", "c1", "c2", "c3"}
	if len(texts) != len(want) {
		t.Fatalf("expected %d texts, got %d", len(want), len(texts))
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}

	wantBounds := [][2]int{{0, 2}, {2, 3}, {3, 6}}
	for i, b := range bounds {
		if b != wantBounds[i] {
			t.Errorf("bounds[%d] = %v, want %v", i, b, wantBounds[i])
		}
	}

	// Ranges must cover the combined list with no gaps or overlaps.
	covered := 0
	for _, b := range bounds {
		if b[0] != covered {
			t.Errorf("range %v does not start where the previous ended (%d)", b, covered)
		}
		covered = b[1]
	}
	if covered != len(texts) {
		t.Errorf("ranges cover %d of %d texts", covered, len(texts))
	}
}

func TestRunBatch_SlicesAndReindexesPerMember(t *testing.T) {
	enc := &fakeEncoder{}
	cfg := testConfig()
	cfg.BatchSize = 3
	cfg.BatchTimeout = 10 * time.Second
	s := newTestScheduler(t, cfg, enc)

	dense := encoder.Kinds{Dense: true}
	chA := submitAsync(s, []string{"alpha one", "alpha two"}, dense)
	waitFor(t, time.Second, "first entry queued", func() bool { return s.QueueDepth() == 1 })
	chB := submitAsync(s, []string{"beta"}, dense)
	waitFor(t, time.Second, "second entry queued", func() bool { return s.QueueDepth() == 2 })
	chC := submitAsync(s, []string{"gamma one", "gamma two", "gamma three"}, dense)

	outA, outB, outC := <-chA, <-chB, <-chC
	for name, out := range map[string]outcome{"A": outA, "B": outB, "C": outC} {
		if out.err != nil {
			t.Fatalf("submission %s failed: %v", name, out.err)
		}
	}

	// One combined call carried all six texts.
	if enc.callCount() != 1 || len(enc.call(0)) != 6 {
		t.Fatalf("expected one combined call with 6 texts, got %d calls", enc.callCount())
	}

	// Each member sees indices restarting at zero while its dense marker
	// values reveal the position in the combined call.
	checkMember := func(name string, out outcome, wantCount int, wantMarkers []float64) {
		t.Helper()
		if len(out.resp.Data) != wantCount {
			t.Fatalf("%s: expected %d embeddings, got %d", name, wantCount, len(out.resp.Data))
		}
		for i, d := range out.resp.Data {
			if d.Index != i {
				t.Errorf("%s: data[%d] has index %d, want %d", name, i, d.Index, i)
			}
			if len(d.DenseEmbedding) != 1 || d.DenseEmbedding[0] != wantMarkers[i] {
				t.Errorf("%s: data[%d] dense = %v, want marker %v", name, i, d.DenseEmbedding, wantMarkers[i])
			}
		}
	}
	checkMember("A", outA, 2, []float64{0, 1})
	checkMember("B", outB, 1, []float64{2})
	checkMember("C", outC, 3, []float64{3, 4, 5})

	// Usage is computed from each member's own texts, not the whole batch.
	if got := outA.resp.Usage.TotalTokens; got != 5 { // 4 words * 1.3 = 5.2
		t.Errorf("A: expected 5 usage tokens, got %d", got)
	}
	if got := outB.resp.Usage.TotalTokens; got != 1 { // 1 word * 1.3 = 1.3
		t.Errorf("B: expected 1 usage token, got %d", got)
	}
}

func TestRunBatch_FirstMemberKindsDriveCombinedCall(t *testing.T) {
	enc := &fakeEncoder{block: make(chan struct{})}
	cfg := testConfig()
	cfg.BatchSize = 2
	cfg.BatchTimeout = 10 * time.Second
	s := newTestScheduler(t, cfg, enc)

	chA := submitAsync(s, []string{"wants dense"}, encoder.Kinds{Dense: true})
	waitFor(t, time.Second, "first entry queued", func() bool { return s.QueueDepth() == 1 })
	chB := submitAsync(s, []string{"wants sparse"}, encoder.Kinds{Sparse: true})
	waitFor(t, time.Second, "batch dispatched", func() bool { return enc.callCount() == 1 })
	close(enc.block)

	// The combined call runs with the first member's flags only.
	if got := enc.kindsAt(0); !got.Dense || got.Sparse || got.MultiVector {
		t.Fatalf("expected combined call with dense only, got %+v", got)
	}

	outA, outB := <-chA, <-chB
	if outA.err != nil || outB.err != nil {
		t.Fatalf("submissions failed: %v / %v", outA.err, outB.err)
	}

	// The first member gets what it asked for.
	if outA.resp.Data[0].DenseEmbedding == nil {
		t.Error("A requested dense and must receive it")
	}
	if got := outA.resp.EmbeddingTypes; len(got) != 1 || got[0] != "dense" {
		t.Errorf("A: unexpected embedding types %v", got)
	}

	// The second member asked for sparse, which the shared call never
	// computed: it receives null vectors rather than a sibling's kinds.
	d := outB.resp.Data[0]
	if d.DenseEmbedding != nil {
		t.Error("B did not request dense and must not receive it")
	}
	if d.SparseEmbedding != nil {
		t.Error("B requested sparse but the shared call skipped it; expected null")
	}
	if got := outB.resp.EmbeddingTypes; len(got) != 1 || got[0] != "sparse" {
		t.Errorf("B: unexpected embedding types %v", got)
	}
}

func TestRunBatch_EncoderFailureFailsAllMembers(t *testing.T) {
	encodeErr := errors.New("backend exploded")
	enc := &fakeEncoder{err: encodeErr}
	cfg := testConfig()
	cfg.BatchSize = 2
	cfg.BatchTimeout = 10 * time.Second
	s := newTestScheduler(t, cfg, enc)

	chA := submitAsync(s, []string{"a"}, encoder.Kinds{Dense: true})
	waitFor(t, time.Second, "first entry queued", func() bool { return s.QueueDepth() == 1 })
	chB := submitAsync(s, []string{"b"}, encoder.Kinds{Dense: true})

	for name, ch := range map[string]chan outcome{"A": chA, "B": chB} {
		out := <-ch
		if out.err == nil {
			t.Fatalf("submission %s: expected failure, got %+v", name, out.resp)
		}
		if !errors.Is(out.err, encodeErr) {
			t.Errorf("submission %s: expected wrapped encoder error, got %v", name, out.err)
		}
	}

	if st := s.Stats(); st.TotalBatches != 0 || st.TotalRequests != 0 {
		t.Errorf("failed batches must not count toward stats: %+v", st)
	}
}

func TestRunBatch_MemberSlicingFailureIsolated(t *testing.T) {
	// The fake answers with a single vector no matter how many texts went
	// in, so the first single-text member slices cleanly while the second
	// member's range reaches past the result.
	enc := &fakeEncoder{short: true}
	cfg := testConfig()
	cfg.BatchSize = 2
	cfg.BatchTimeout = 10 * time.Second
	s := newTestScheduler(t, cfg, enc)

	chA := submitAsync(s, []string{"fits"}, encoder.Kinds{Dense: true})
	waitFor(t, time.Second, "first entry queued", func() bool { return s.QueueDepth() == 1 })
	chB := submitAsync(s, []string{"does", "not"}, encoder.Kinds{Dense: true})

	outA := <-chA
	if outA.err != nil {
		t.Fatalf("healthy member must still resolve: %v", outA.err)
	}
	if len(outA.resp.Data) != 1 {
		t.Errorf("expected 1 embedding for the healthy member, got %d", len(outA.resp.Data))
	}

	outB := <-chB
	if outB.err == nil {
		t.Fatal("member with an out-of-range slice must fail")
	}
	if !strings.Contains(outB.err.Error(), "out of bounds") {
		t.Errorf("unexpected member error: %v", outB.err)
	}
}

func TestRunBatch_ModelEchoedFromBatch(t *testing.T) {
	enc := &fakeEncoder{}
	cfg := testConfig()
	cfg.BatchSize = 1
	s := newTestScheduler(t, cfg, enc)

	resp, err := s.Submit(context.Background(), []string{"hello"}, encoder.Kinds{Dense: true}, "BAAI/bge-m3")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if resp.Model != "BAAI/bge-m3" {
		t.Errorf("expected model echoed back, got %q", resp.Model)
	}
	if resp.Object != "list" {
		t.Errorf("expected object list, got %q", resp.Object)
	}
}
