package integrators

import "github.com/epiforge/episim/internal/seird"

// Euler is the explicit first-order stepper. One derivative evaluation
// per step, O(dt) accuracy, no error estimate; large steps can diverge
// on fast parameter regimes.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys seird.System, y *seird.State, dt float64) error {
	if dt <= 0 {
		return seird.ErrInvalidStepSize
	}
	dy := sys.Derive(*y)
	for i := range y {
		y[i] += dt * dy[i]
	}
	return nil
}
