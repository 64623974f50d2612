package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/schema"
)

// runBatch executes one claimed batch against the encoder and settles every
// member's deferred result. It never returns an error: all failures are
// delivered through the members' result channels, so an accepted entry can
// never be left waiting.
func (s *BatchScheduler) runBatch(batch []*entry) {
	if len(batch) == 0 {
		return
	}

	batchID := uuid.NewString()
	s.trackBatch(batchID)
	defer s.untrackBatch(batchID)

	// The combined call runs on its own context: a batch serves many callers
	// and one canceled caller must not cancel the call for its siblings. The
	// encoder's HTTP timeout bounds the call instead.
	ctx := context.Background()
	var span traceSpan.Span
	if s.tracer != nil {
		ctx, span = s.tracer.StartSpan(ctx, "scheduler.execute-batch")
		defer span.End()
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.failBatch(batch, fmt.Errorf("scheduler: acquiring processing slot: %w", err))
		return
	}
	defer s.sem.Release(1)

	start := time.Now()
	texts, bounds := combineTexts(batch)

	// One shared encoder invocation means one flag set: the first member's
	// kinds drive the combined call. Members that asked for fewer kinds are
	// filtered on fan-out; members that asked for more receive null vectors
	// for the kinds the shared call skipped.
	kinds := batch[0].kinds
	model := batch[0].model

	s.logDebug(ctx, "processing batch", map[string]interface{}{
		"batch_id": batchID,
		"requests": len(batch),
		"texts":    len(texts),
	})
	if s.tracer != nil {
		s.tracer.SetAttributes(span, map[string]interface{}{
			"batch.id":       batchID,
			"batch.requests": len(batch),
			"batch.texts":    len(texts),
			"model":          model,
		})
	}

	vectors, err := s.enc.Encode(ctx, texts, kinds)
	if err != nil {
		if s.tracer != nil {
			s.tracer.RecordErrorOnSpan(span, err)
		}
		s.observeOperation("execute", model, batchID, time.Since(start), err, int64(len(texts)),
			map[string]interface{}{"requests": len(batch)})
		s.logError(ctx, "batch encode failed", err, map[string]interface{}{
			"batch_id": batchID,
			"requests": len(batch),
		})
		s.failBatch(batch, fmt.Errorf("scheduler: encoding batch: %w", err))
		return
	}

	for i, member := range batch {
		resp, memberErr := s.buildMemberResponse(member, vectors, bounds[i], model)
		if memberErr != nil {
			s.logError(ctx, "member result assembly failed", memberErr, map[string]interface{}{
				"batch_id": batchID,
				"member":   i,
			})
			member.result <- outcome{err: memberErr}
			continue
		}
		member.result <- outcome{resp: resp}
	}

	elapsed := time.Since(start)
	s.recordBatch(len(batch), elapsed)
	s.observeOperation("execute", model, batchID, elapsed, nil, int64(len(texts)),
		map[string]interface{}{"requests": len(batch)})
	s.logInfo(ctx, "batch processed", map[string]interface{}{
		"batch_id":   batchID,
		"requests":   len(batch),
		"texts":      len(texts),
		"elapsed_ms": elapsed.Milliseconds(),
	})
}

// combineTexts concatenates every member's texts in entry order and records
// the [start, end) range each member owns in the combined list. The ranges
// partition the combined list exactly: contiguous, non-overlapping, in
// entry order.
func combineTexts(batch []*entry) ([]string, [][2]int) {
	total := 0
	for _, e := range batch {
		total += len(e.texts)
	}

	texts := make([]string, 0, total)
	bounds := make([][2]int, 0, len(batch))
	for _, e := range batch {
		start := len(texts)
		texts = append(texts, e.texts...)
		bounds = append(bounds, [2]int{start, len(texts)})
	}
	return texts, bounds
}

// buildMemberResponse slices the combined encode result down to one member's
// range and assembles its response: indices restart at zero, the vector
// kinds are filtered to what this member requested, and usage is computed
// from this member's own texts rather than the whole batch. Panics during
// assembly are converted to errors so a malformed member cannot take down
// its batch siblings.
func (s *BatchScheduler) buildMemberResponse(member *entry, vectors []encoder.Vectors, bound [2]int, model string) (resp *schema.EmbeddingResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("scheduler: assembling member response: %v", r)
		}
	}()

	start, end := bound[0], bound[1]
	if start < 0 || end < start || end > len(vectors) {
		return nil, fmt.Errorf("scheduler: member range [%d:%d) out of bounds for %d results", start, end, len(vectors))
	}

	data := make([]schema.EmbeddingData, 0, end-start)
	for i, v := range vectors[start:end] {
		data = append(data, schema.NewEmbeddingData(i, v, member.kinds))
	}

	tokens := schema.EstimateTokens(member.texts)
	return &schema.EmbeddingResponse{
		Object:         "list",
		Data:           data,
		Model:          model,
		Usage:          schema.Usage{PromptTokens: tokens, TotalTokens: tokens},
		EmbeddingTypes: member.kinds.Labels(),
	}, nil
}

// failBatch settles every member of a batch with the same error.
func (s *BatchScheduler) failBatch(batch []*entry, err error) {
	for _, member := range batch {
		member.result <- outcome{err: err}
	}
}

// trackBatch registers a batch execution in the in-flight set.
func (s *BatchScheduler) trackBatch(id string) {
	s.inflightMu.Lock()
	s.inflight[id] = time.Now()
	s.inflightMu.Unlock()
}

// untrackBatch removes a finished batch execution from the in-flight set.
func (s *BatchScheduler) untrackBatch(id string) {
	s.inflightMu.Lock()
	delete(s.inflight, id)
	s.inflightMu.Unlock()
}

// inflightBatches returns the IDs of batch executions still running, sorted
// for stable log output.
func (s *BatchScheduler) inflightBatches() []string {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()

	ids := make([]string, 0, len(s.inflight))
	for id := range s.inflight {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
