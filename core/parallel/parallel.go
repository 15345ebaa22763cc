// Package parallel provides a CPU-chunked parallel loop used by the
// bootstrap estimator. Work is split into contiguous [start, end) ranges so
// callers can keep per-range state without locking.
package parallel

import (
	"runtime"
	"sync"
)

// For runs fn over [0, items) split across up to runtime.NumCPU() workers.
// Each worker receives a disjoint contiguous range. fn must be safe to call
// concurrently for disjoint ranges.
func For(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so every item is covered.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ForWithThreshold runs fn sequentially when items is at or below threshold,
// in parallel otherwise. Small bootstrap counts are not worth the goroutine
// overhead.
func ForWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	For(items, fn)
}
