// Package parallel provides the fork-join worker infrastructure for sdfbake.
//
// Work is split up front into a fixed number of workers. Each worker runs to
// completion on its own goroutine and the caller blocks until all of them
// have returned. There is no queue, work stealing or cancellation.
package parallel

import "sync"

// Run starts exactly n goroutines, calls fn once on each with a worker index
// in [0, n), and returns after every call has returned.
//
// If n is 0 or negative, HardwareThreads (or FallbackThreads when detection
// fails) is used. A single worker runs on the calling goroutine.
//
// A panic in fn is not recovered and terminates the program.
func Run(n int, fn func(worker int)) {
	if fn == nil {
		return
	}
	if n <= 0 {
		n, _ = Workers(0)
	}

	if n == 1 {
		fn(0)
		return
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for id := range n {
		go func() {
			defer wg.Done()
			fn(id)
		}()
	}
	wg.Wait()
}

// Workers resolves a requested worker count. A positive request is returned
// unchanged; otherwise the detected hardware parallelism is used. When
// detection fails the result is FallbackThreads and fallback is true.
func Workers(requested int) (n int, fallback bool) {
	if requested > 0 {
		return requested, false
	}
	if n := HardwareThreads(); n > 0 {
		return n, false
	}
	return FallbackThreads, true
}
