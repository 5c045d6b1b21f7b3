package integrators

import "github.com/epiforge/episim/internal/seird"

// RK4 is the classical fixed-step fourth-order Runge-Kutta stepper.
// Four derivative evaluations per step.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys seird.System, y *seird.State, dt float64) error {
	if dt <= 0 {
		return seird.ErrInvalidStepSize
	}

	var stage seird.State

	k1 := sys.Derive(*y)

	for i := range stage {
		stage[i] = y[i] + dt*0.5*k1[i]
	}
	k2 := sys.Derive(stage)

	for i := range stage {
		stage[i] = y[i] + dt*0.5*k2[i]
	}
	k3 := sys.Derive(stage)

	for i := range stage {
		stage[i] = y[i] + dt*k3[i]
	}
	k4 := sys.Derive(stage)

	dt6 := dt / 6.0
	for i := range y {
		y[i] += dt6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
	return nil
}
