package scheduler

import (
	"context"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/schema"
)

// Scheduler is the request-facing contract of the batching core: accept one
// normalized request and return its eventual response, and expose the
// counters and lifecycle state that health and stats endpoints report.
//
// This interface is implemented by the concrete *BatchScheduler type.
type Scheduler interface {
	// Submit blocks until the request's batch has executed and returns the
	// caller's share of the result.
	Submit(ctx context.Context, texts []string, kinds encoder.Kinds, model string) (*schema.EmbeddingResponse, error)

	// Stats returns a snapshot of the batching counters.
	Stats() Stats

	// State reports the lifecycle state: running, draining or drained.
	State() string

	// QueueDepth reports how many accepted requests await dispatch.
	QueueDepth() int
}
