package scheduler

import (
	"context"
	"time"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/schema"
)

// Submit accepts one normalized request and blocks until its batch has been
// executed, returning the caller's share of the combined result.
//
// The request joins the pending queue if the scheduler is running and the
// queue has room; otherwise Submit fails immediately with ErrShuttingDown or
// ErrQueueFull and nothing is enqueued. After a successful enqueue the
// dispatch condition is evaluated in the same critical section: reaching
// BatchSize, or the oldest entry aging past BatchTimeout, claims up to
// BatchSize entries and hands them to the executor.
//
// A canceled context abandons the wait but not the work: the entry stays in
// its batch and its result is discarded when it arrives.
//
// Parameters:
//   - ctx: the caller's context, honored only while waiting
//   - texts: normalized input texts, in caller order
//   - kinds: the vector kinds this caller wants returned
//   - model: the model identifier echoed in the response
//
// Returns:
//   - *schema.EmbeddingResponse: the caller's sliced and filtered result
//   - error: ErrQueueFull, ErrShuttingDown, a batch execution error, or
//     the context's error if the caller gave up waiting
func (s *BatchScheduler) Submit(ctx context.Context, texts []string, kinds encoder.Kinds, model string) (*schema.EmbeddingResponse, error) {
	now := time.Now()

	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		s.observeOperation("submit", model, "", 0, ErrShuttingDown, int64(len(texts)), nil)
		return nil, ErrShuttingDown
	}
	if len(s.pending) >= s.cfg.MaxQueueSize {
		s.mu.Unlock()
		s.observeOperation("submit", model, "", 0, ErrQueueFull, int64(len(texts)), nil)
		return nil, ErrQueueFull
	}

	e := &entry{
		texts:      texts,
		kinds:      kinds,
		model:      model,
		enqueuedAt: now,
		result:     make(chan outcome, 1),
	}
	s.pending = append(s.pending, e)
	batch := s.nextBatchLocked(now)
	s.mu.Unlock()

	if batch != nil {
		s.dispatch(batch)
	}

	select {
	case out := <-e.result:
		return out.resp, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// nextBatchLocked evaluates the dispatch condition and, when it holds,
// claims up to BatchSize entries from the head of the queue. The claimed
// entries are a contiguous FIFO prefix; anything beyond BatchSize stays
// queued for a later round. Callers must hold mu.
func (s *BatchScheduler) nextBatchLocked(now time.Time) []*entry {
	if len(s.pending) == 0 {
		return nil
	}

	ready := len(s.pending) >= s.cfg.BatchSize ||
		now.Sub(s.pending[0].enqueuedAt) >= s.cfg.BatchTimeout
	if !ready {
		return nil
	}

	n := s.cfg.BatchSize
	if len(s.pending) < n {
		n = len(s.pending)
	}

	batch := make([]*entry, n)
	copy(batch, s.pending)
	s.pending = s.pending[n:]
	return batch
}

// takeAllLocked claims the entire queue. Used by the sweeper, which trades a
// batch larger than BatchSize for bounded latency, and by the final drain
// flush. Callers must hold mu.
func (s *BatchScheduler) takeAllLocked() []*entry {
	batch := s.pending
	s.pending = nil
	return batch
}

// dispatch hands a claimed batch to the executor on its own goroutine.
func (s *BatchScheduler) dispatch(batch []*entry) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runBatch(batch)
	}()
}

// State reports the scheduler lifecycle state for health reporting.
func (s *BatchScheduler) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// QueueDepth reports how many accepted requests are waiting for dispatch.
func (s *BatchScheduler) QueueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
