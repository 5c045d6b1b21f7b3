package seird

import (
	"runtime"
	"sync"
)

// Batch is a set of independent population states sharing one Params.
// Rows are uncoupled: evaluating row i reads only row i.
type Batch []State

func NewBatch(n int, initial State) Batch {
	b := make(Batch, n)
	for i := range b {
		b[i] = initial
	}
	return b
}

func (b Batch) Clone() Batch {
	c := make(Batch, len(b))
	copy(c, b)
	return c
}

// minChunk is the smallest per-worker slice worth a goroutine; below
// this the fan-out overhead dominates the five-term arithmetic.
const minChunk = 64

// DeriveBatch writes the derivative of each row of in to the matching
// row of out, fanning out across workers. Rows are evaluated
// independently, so any worker count produces results identical to the
// sequential loop. workers <= 0 selects GOMAXPROCS.
func (m *Model) DeriveBatch(in Batch, out Batch, workers int) error {
	if len(in) != len(out) {
		return ErrInvalidDimension
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ParallelFor(len(in), minChunk, workers, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = m.Derive(in[i])
		}
	})
	return nil
}

// ParallelFor executes fn over contiguous chunks of [0, n) on up to
// maxWorkers goroutines. Each chunk is owned exclusively by one worker,
// so fn needs no synchronization as long as chunks touch disjoint data.
func ParallelFor(n, minChunk, maxWorkers int, fn func(start, end int)) {
	if n <= minChunk || maxWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := maxWorkers
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
