package scheduler

import (
	"context"
	"fmt"
	"time"
)

// sweepLoop forces dispatch of batches that age out before reaching the size
// threshold. It ticks at the batch timeout and runs until the scheduler
// begins draining.
func (s *BatchScheduler) sweepLoop() {
	ticker := time.NewTicker(s.cfg.BatchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-s.shutdownSignal:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep claims the entire queue when the oldest entry has waited at least
// BatchTimeout, and hands it to the executor. A failed tick is logged and
// the loop carries on; the sweeper never dies before the scheduler does.
func (s *BatchScheduler) sweep() {
	defer func() {
		if r := recover(); r != nil {
			s.logError(context.Background(), "sweep tick failed", fmt.Errorf("%v", r), nil)
		}
	}()

	s.mu.Lock()
	var batch []*entry
	if len(s.pending) > 0 && time.Since(s.pending[0].enqueuedAt) >= s.cfg.BatchTimeout {
		batch = s.takeAllLocked()
	}
	s.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	s.logDebug(context.Background(), "timeout dispatch", map[string]interface{}{
		"requests": len(batch),
	})
	s.dispatch(batch)
}
