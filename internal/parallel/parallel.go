// Package parallel provides the data-parallel execution abstraction the
// state-vector engine drives its per-amplitude work through: ParallelFor
// splits a range of independent work items across goroutines, and Fence
// marks the synchronization boundary between dependent passes, the way the
// teacher's serial/parallel-static runners split shots across worker
// goroutines in qc/simulator/parstat_runner.go. The Feynman engine reaches
// it only through the state-vector sub-engines it runs for each path; its
// path loop and per-index accumulation, and the sampler's candidate loop,
// run sequentially on the caller's goroutine.
package parallel

import (
	"runtime"
	"sync"
)

// Backend names the execution backend compiled into this build. Only CPU
// ships today; a GPU backend would implement the same ParallelFor/Fence
// seam and this constant would become a runtime choice.
const Backend = "cpu"

// minChunk is the smallest amount of work worth handing to its own
// goroutine; below this, ParallelFor just runs inline.
const minChunk = 1 << 12

// ParallelFor calls body(i) for every i in [0,n), across up to
// GOMAXPROCS goroutines operating on disjoint contiguous ranges, and does
// not return until every call has completed. body must be safe to call
// concurrently for disjoint i.
func ParallelFor(n int, body func(i int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if n < minChunk || workers <= 1 {
		for i := 0; i < n; i++ {
			body(i)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				body(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Fence marks the synchronization boundary between one ParallelFor pass
// and the next. ParallelFor's own sync.WaitGroup already establishes the
// happens-before relation required for correctness, so Fence is a no-op
// today; it exists as an explicit call site so a future backend (e.g. one
// that queues work asynchronously) has a single place to insert a real
// synchronization barrier.
func Fence() {}
