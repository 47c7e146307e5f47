// Package metrics holds the process-wide throughput counters shared by all
// worker loops. They are best-effort observability, reset every reporting
// interval, and tolerate lost updates; nothing billing-grade lives here.
package metrics

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Counters is injected into each worker loop; increments are plain atomics so
// loops never contend on a lock.
type Counters struct {
	started   atomic.Int64
	completed atomic.Int64
}

// NewCounters builds a zeroed counter set.
func NewCounters() *Counters {
	return &Counters{}
}

// JobStarted records one claim.
func (c *Counters) JobStarted() {
	c.started.Add(1)
}

// JobCompleted records one resolution, successful or failed.
func (c *Counters) JobCompleted() {
	c.completed.Add(1)
}

// SnapshotAndReset returns the counts accumulated since the previous call and
// zeroes them. Only the reporter calls this.
func (c *Counters) SnapshotAndReset() (started, completed int64) {
	return c.started.Swap(0), c.completed.Swap(0)
}

// Reporter logs and resets the counters on a fixed interval, giving external
// tooling a per-second throughput line to scrape.
type Reporter struct {
	counters *Counters
	interval time.Duration
}

// NewReporter builds a Reporter; interval defaults to one second.
func NewReporter(counters *Counters, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = time.Second
	}
	return &Reporter{counters: counters, interval: interval}
}

// Run blocks until the context is cancelled.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			started, completed := r.counters.SnapshotAndReset()
			log.Printf("[METRIC] WORKER | job_processing_rps=%d | preprocessing_complete_rps=%d", started, completed)
		}
	}
}
