package sph

import (
	"runtime"
	"sync"
)

// ParallelFor executes a function in parallel over the index range [0, n).
// The range is split into contiguous chunks, one per worker, so writes to
// per-index slots never overlap. Ranges smaller than minChunk run inline.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.GOMAXPROCS(0)
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelReduce folds fn over [0, n) in parallel and combines the per-chunk
// partials with combine. identity seeds every chunk.
func ParallelReduce(n, minChunk int, identity float64, fn func(start, end int, acc float64) float64, combine func(a, b float64) float64) float64 {
	numWorkers := runtime.GOMAXPROCS(0)
	if n <= minChunk || numWorkers <= 1 {
		return fn(0, n, identity)
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers
	partials := make([]float64, workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(idx, s, e int) {
			defer wg.Done()
			partials[idx] = fn(s, e, identity)
		}(w, start, end)
	}

	wg.Wait()

	out := identity
	for _, p := range partials {
		out = combine(out, p)
	}
	return out
}
