package metrics

import (
	"sync"
	"testing"
)

func TestSnapshotAndResetZeroesCounts(t *testing.T) {
	c := NewCounters()
	c.JobStarted()
	c.JobStarted()
	c.JobCompleted()

	started, completed := c.SnapshotAndReset()
	if started != 2 || completed != 1 {
		t.Fatalf("snapshot = (%d, %d), want (2, 1)", started, completed)
	}
	started, completed = c.SnapshotAndReset()
	if started != 0 || completed != 0 {
		t.Fatalf("second snapshot = (%d, %d), want zeroes", started, completed)
	}
}

func TestCountersConcurrentIncrements(t *testing.T) {
	c := NewCounters()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.JobStarted()
				c.JobCompleted()
			}
		}()
	}
	wg.Wait()
	started, completed := c.SnapshotAndReset()
	if started != 8000 || completed != 8000 {
		t.Fatalf("counts = (%d, %d), want (8000, 8000)", started, completed)
	}
}
