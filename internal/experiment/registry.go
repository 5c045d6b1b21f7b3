package experiment

import (
	"fmt"

	"github.com/epiforge/episim/internal/integrators"
	"github.com/epiforge/episim/internal/metrics"
	"github.com/epiforge/episim/internal/seird"
	"github.com/epiforge/episim/internal/sim"
)

// Registry maps stepper names to simulator constructors.
type Registry struct {
	steppers map[string]func(model *seird.Model, abstol, reltol float64) *sim.Simulator
}

func NewRegistry() *Registry {
	r := &Registry{
		steppers: make(map[string]func(*seird.Model, float64, float64) *sim.Simulator),
	}

	r.steppers["euler"] = func(m *seird.Model, _, _ float64) *sim.Simulator {
		return sim.New(m, integrators.NewEuler())
	}
	r.steppers["rk4"] = func(m *seird.Model, _, _ float64) *sim.Simulator {
		return sim.New(m, integrators.NewRK4())
	}
	r.steppers["dopri45"] = func(m *seird.Model, abstol, reltol float64) *sim.Simulator {
		return sim.NewAdaptive(m, integrators.NewDopri45(abstol, reltol))
	}

	return r
}

func (r *Registry) GetSimulator(name string, model *seird.Model, abstol, reltol float64) (*sim.Simulator, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
	return fn(model, abstol, reltol), nil
}

func (r *Registry) ListSteppers() []string {
	names := make([]string, 0, len(r.steppers))
	for name := range r.steppers {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics returns the standard epidemic summary metrics.
func DefaultMetrics(p seird.Params) []sim.Metric {
	return []sim.Metric{
		metrics.NewPeakInfectious(),
		metrics.NewAttackRate(p.Population),
		metrics.NewCaseFatality(p.Population),
		metrics.NewDetectedCases(p.Population, p.AsymptomaticFrac),
	}
}
