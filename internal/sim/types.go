package sim

import (
	"github.com/epiforge/episim/internal/integrators"
	"github.com/epiforge/episim/internal/seird"
)

// Stepper advances a state vector in place by one fixed increment.
// Euler and RK4 satisfy this; the adaptive stepper has its own path
// through the simulator.
type Stepper interface {
	Step(sys seird.System, y *seird.State, dt float64) error
}

// Metric observes the per-day trajectory and reduces it to one number.
type Metric interface {
	Name() string
	Observe(y seird.State, day float64)
	Value() float64
	Reset()
}

// RunConfig controls one simulation run. Time is measured in days; a
// fixed-step run subdivides each day into round(1/Dt) equal steps and
// rejects Dt above one day, an adaptive run treats Dt as the initial
// attempt (truncated at day boundaries) and integrates until a full
// day of simulated time has elapsed.
type RunConfig struct {
	Days int
	Dt   float64
}

// Result is the per-day trajectory of one run plus solver bookkeeping.
// States[d] is the state at the end of day d, with States[0] the
// initial condition. Stats is only populated by adaptive runs.
type Result struct {
	States  []seird.State
	Times   []float64
	Stats   integrators.Stats
	Metrics map[string]float64
}

// Final returns the last recorded state.
func (r *Result) Final() seird.State {
	if len(r.States) == 0 {
		return seird.State{}
	}
	return r.States[len(r.States)-1]
}

// Series extracts the per-day time series of one compartment.
func (r *Result) Series(compartment int) []float64 {
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = s[compartment]
	}
	return out
}
