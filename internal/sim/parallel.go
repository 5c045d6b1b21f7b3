package sim

import (
	"context"
	"sync"

	"github.com/epiforge/episim/internal/seird"
)

// Ensemble runs many independent populations concurrently. Each
// goroutine builds its own Simulator (and so its own metrics and
// statistics), keeping all mutable state unshared.
type Ensemble struct {
	runs  int
	build func(idx int) (*Simulator, seird.State)
}

func NewEnsemble(runs int, build func(idx int) (*Simulator, seird.State)) *Ensemble {
	return &Ensemble{runs: runs, build: build}
}

func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, y0 := e.build(idx)
			results[idx], errs[idx] = s.Run(ctx, y0, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
