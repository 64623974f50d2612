package scheduler

import "time"

// Stats is a point-in-time snapshot of batching activity. Counters cover
// successfully executed batches only.
type Stats struct {
	// TotalBatches is the number of batches executed successfully.
	TotalBatches int64 `json:"total_batches"`

	// TotalRequests is the number of requests those batches carried.
	TotalRequests int64 `json:"total_requests"`

	// AvgBatchSize is TotalRequests divided by TotalBatches, or zero before
	// the first batch.
	AvgBatchSize float64 `json:"avg_batch_size"`

	// LastBatchTime is the wall-clock duration of the most recent successful
	// batch, in seconds.
	LastBatchTime float64 `json:"last_batch_time"`
}

// recordBatch folds one successful batch into the running counters.
func (s *BatchScheduler) recordBatch(requests int, elapsed time.Duration) {
	s.statsMu.Lock()
	s.totalBatches++
	s.totalRequests += int64(requests)
	s.lastBatchSeconds = elapsed.Seconds()
	s.statsMu.Unlock()
}

// Stats returns a snapshot of the batching counters.
func (s *BatchScheduler) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	snapshot := Stats{
		TotalBatches:  s.totalBatches,
		TotalRequests: s.totalRequests,
		LastBatchTime: s.lastBatchSeconds,
	}
	if s.totalBatches > 0 {
		snapshot.AvgBatchSize = float64(s.totalRequests) / float64(s.totalBatches)
	}
	return snapshot
}
