// Package scheduler implements the dynamic batching core of the service.
//
// Computing embeddings has a high fixed cost per encoder invocation, so the
// scheduler coalesces concurrently arriving requests into shared encoder
// calls. Each accepted request joins a bounded FIFO queue; a batch is
// dispatched as soon as the queue reaches BatchSize, or forced out by a
// background sweeper once the oldest request has waited BatchTimeout.
// Dispatched batches run under a global concurrency limit, and every caller
// receives its own correctly sliced share of the combined result.
//
// # Request flow
//
//	Submit -> bounded queue -> dispatch decision -> executor -> Encode -> fan-out
//
// A submitted request blocks on a one-shot result channel until its batch
// completes. The queue, its capacity check and the dispatch decision all
// live under one mutex, so the submit path and the sweeper can never claim
// overlapping entries.
//
// # Dispatch rules
//
//   - Submit-path dispatch claims at most BatchSize entries, FIFO.
//   - The sweeper claims the entire queue once the oldest entry has aged
//     past BatchTimeout; this is the only path that can exceed BatchSize.
//   - A full queue rejects new requests with ErrQueueFull before an entry
//     is created.
//
// # Failure semantics
//
// A failed encoder call fails every member of its batch identically; no
// member of a failed call can succeed. A failure assembling one member's
// slice of the result fails that member only, and its siblings still
// resolve. Stats count successful batches only.
//
// # Shutdown
//
// Drain flips the scheduler to draining (new submits fail with
// ErrShuttingDown), stops the sweeper, flushes the remaining queue as one
// final batch, then waits up to DrainTimeout for in-flight executions.
// Batches still running past the deadline are logged with their IDs and
// left to finish on their own.
//
// # Configuration
//
//	MAX_QUEUE_SIZE=50
//	BATCH_SIZE=8
//	BATCH_TIMEOUT_MS=100
//	PROCESSING_CONCURRENCY=2
//	DRAIN_TIMEOUT_MS=10000
package scheduler
