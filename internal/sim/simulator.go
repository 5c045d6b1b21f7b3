package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/epiforge/episim/internal/integrators"
	"github.com/epiforge/episim/internal/seird"
)

// ErrDayStalled indicates the adaptive stepper rejected so many
// consecutive attempts that a simulated day could not be completed.
var ErrDayStalled = errors.New("sim: adaptive stepper stalled, day not completed")

// maxAttemptsPerDay bounds rejection storms in pathological parameter
// regimes so a run fails with ErrDayStalled instead of spinning.
const maxAttemptsPerDay = 100000

// Simulator advances one population day by day with a chosen stepper.
// Not safe for concurrent use; Ensemble builds one per population.
type Simulator struct {
	model    *seird.Model
	stepper  Stepper
	adaptive *integrators.Dopri45
	metrics  []Metric
}

// New builds a fixed-step simulator.
func New(model *seird.Model, stepper Stepper) *Simulator {
	return &Simulator{model: model, stepper: stepper}
}

// NewAdaptive builds a simulator driven by the Dormand-Prince stepper.
func NewAdaptive(model *seird.Model, adaptive *integrators.Dopri45) *Simulator {
	return &Simulator{model: model, adaptive: adaptive}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run integrates cfg.Days simulated days from y0 and records the state
// at each day boundary. A rejected adaptive step consumes solver work
// but no simulated time, so day d in the result is always d days of
// simulated evolution regardless of how many attempts it took.
func (s *Simulator) Run(ctx context.Context, y0 seird.State, cfg RunConfig) (*Result, error) {
	if err := s.validate(y0, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([]seird.State, 0, cfg.Days+1),
		Times:   make([]float64, 0, cfg.Days+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	y := y0
	dt := cfg.Dt

	result.States = append(result.States, y)
	result.Times = append(result.Times, 0)
	for _, m := range s.metrics {
		m.Observe(y, 0)
	}

	for day := 1; day <= cfg.Days; day++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var err error
		if s.adaptive != nil {
			dt, err = s.adaptiveDay(&y, dt, &result.Stats)
		} else {
			err = s.fixedDay(&y, cfg.Dt)
		}
		if err != nil {
			return result, &seird.SimError{Day: day, Time: float64(day), Wrapped: err}
		}

		if !y.IsValid() {
			return result, &seird.SimError{Day: day, Time: float64(day), Wrapped: seird.ErrInvalidState}
		}

		result.States = append(result.States, y)
		result.Times = append(result.Times, float64(day))
		for _, m := range s.metrics {
			m.Observe(y, float64(day))
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// fixedDay advances exactly one day in round(1/dt) equal substeps.
func (s *Simulator) fixedDay(y *seird.State, dt float64) error {
	substeps := int(math.Round(1.0 / dt))
	if substeps < 1 {
		substeps = 1
	}
	h := 1.0 / float64(substeps)
	for i := 0; i < substeps; i++ {
		if err := s.stepper.Step(s.model, y, h); err != nil {
			return err
		}
	}
	return nil
}

// adaptiveDay integrates until one day of simulated time has elapsed.
// The final attempt of a day is truncated to land on the boundary; the
// controller's suggestion from a truncated accepted step is discarded
// so that an artificially short step cannot shrink dt for the next day.
func (s *Simulator) adaptiveDay(y *seird.State, dt float64, st *integrators.Stats) (float64, error) {
	remaining := 1.0
	for attempts := 0; remaining > 0; attempts++ {
		if attempts >= maxAttemptsPerDay {
			return dt, ErrDayStalled
		}

		attempt := math.Min(dt, remaining)
		truncated := attempt < dt

		h := attempt
		accepted, err := s.adaptive.Step(s.model, y, &h, st)
		if err != nil {
			return dt, err
		}

		if accepted {
			remaining -= attempt
		}
		if !truncated || !accepted {
			dt = h
		}
	}
	return dt, nil
}

func (s *Simulator) validate(y0 seird.State, cfg RunConfig) error {
	if cfg.Days <= 0 {
		return fmt.Errorf("sim: days must be positive, got %d", cfg.Days)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: %w: dt=%g", seird.ErrInvalidStepSize, cfg.Dt)
	}
	if s.adaptive == nil && cfg.Dt > 1 {
		return fmt.Errorf("sim: %w: dt=%g exceeds one day", seird.ErrInvalidStepSize, cfg.Dt)
	}
	if s.adaptive != nil && (s.adaptive.AbsTol <= 0 || s.adaptive.RelTol <= 0) {
		return fmt.Errorf("sim: %w: abstol=%g reltol=%g",
			seird.ErrInvalidStepSize, s.adaptive.AbsTol, s.adaptive.RelTol)
	}
	if !y0.IsValid() {
		return seird.ErrInvalidState
	}
	return nil
}
