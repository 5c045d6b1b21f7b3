// Package optim sweeps scenario parameters over a grid, searching for
// the combination that minimizes a chosen summary metric (for example
// the vaccination rate and contact reduction that minimize peak
// infectious load).
package optim

import (
	"context"
	"errors"
	"math"

	"github.com/epiforge/episim/internal/experiment"
)

// Axis is one swept dimension of a scenario: the values to try and how
// a value is written into the scenario before it runs.
type Axis struct {
	Name   string
	Values []float64
	Apply  func(cfg *experiment.Config, v float64)
}

// Point is one evaluated grid combination: the value chosen on each
// axis and the metric it scored.
type Point struct {
	Values map[string]float64
	Score  float64
}

// GridSearch evaluates every combination of its axes' values against a
// base scenario and keeps the combination with the lowest metric.
type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Search walks the full grid. Each point copies the base scenario,
// applies one value per axis, and runs it; points whose runs fail are
// skipped. Returns the best completed point, or an error when no point
// completed.
func (g *GridSearch) Search(ctx context.Context, registry *experiment.Registry, base experiment.Config, metricName string) (Point, error) {
	best := Point{Score: math.Inf(1)}

	idx := make([]int, len(g.axes))
	for {
		select {
		case <-ctx.Done():
			return best, ctx.Err()
		default:
		}

		cfg := base
		values := make(map[string]float64, len(g.axes))
		for i, ax := range g.axes {
			v := ax.Values[idx[i]]
			ax.Apply(&cfg, v)
			values[ax.Name] = v
		}

		if score, err := evaluate(ctx, registry, cfg, metricName); err == nil && score < best.Score {
			best = Point{Values: values, Score: score}
		}

		if !advance(idx, g.axes) {
			break
		}
	}

	if best.Values == nil {
		return best, errors.New("optim: no grid point completed")
	}
	return best, nil
}

func evaluate(ctx context.Context, registry *experiment.Registry, cfg experiment.Config, metricName string) (float64, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(registry); err != nil {
		return 0, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return 0, err
	}
	return result.Metrics[metricName], nil
}

// advance increments the axis indices like an odometer, rolling each
// digit over at its axis length; it reports false once every
// combination has been visited.
func advance(idx []int, axes []Axis) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < len(axes[i].Values) {
			return true
		}
		idx[i] = 0
	}
	return false
}
