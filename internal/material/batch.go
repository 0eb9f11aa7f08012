package material

import (
	"runtime"
	"sync"
)

// minChunk is the smallest slice of points worth a goroutine.
const minChunk = 64

// EvaluateBatch evaluates every point, preserving order. Points are split
// into chunks evaluated concurrently; the error of the lowest failing index
// is returned.
func (m *Material) EvaluateBatch(points []Point) ([]Properties, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	out := make([]Properties, len(points))
	errs := make([]error, len(points))

	ParallelFor(len(points), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			out[i], errs[i] = m.Evaluate(points[i].Phi, points[i].TempC)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParallelFor executes fn over [0, n) in contiguous chunks.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
