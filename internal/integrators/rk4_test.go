package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/epiforge/episim/internal/seird"
)

// With beta=0 each compartment flow is linear, so the infectious
// compartment seeded alone decays as a closed-form exponential:
// I(t) = I0 * exp(-(gamma+mu)*t).
func TestRK4_MatchesExponentialDecay(t *testing.T) {
	p := seird.DefaultParams()
	p.Beta = 0
	m := seird.NewModel(p)

	stepper := NewRK4()
	y := seird.State{0, 0, 50, 0, 0}

	dt := 0.1
	steps := 100
	for i := 0; i < steps; i++ {
		if err := stepper.Step(m, &y, dt); err != nil {
			t.Fatal(err)
		}
	}

	elapsed := float64(steps) * dt
	want := 50.0 * math.Exp(-(p.Gamma+p.Mu)*elapsed)

	if math.Abs(y[seird.I]-want) > 1e-8 {
		t.Errorf("I after t=%.1f: got %.12f, want %.12f", elapsed, y[seird.I], want)
	}
}

func TestRK4_ExposedDecay(t *testing.T) {
	p := seird.DefaultParams()
	p.Beta = 0
	m := seird.NewModel(p)

	stepper := NewRK4()
	y := seird.State{0, 100, 0, 0, 0}

	dt := 0.1
	if err := stepper.Step(m, &y, dt); err != nil {
		t.Fatal(err)
	}

	// One step local truncation error is O(dt^5).
	want := 100.0 * math.Exp(-p.Sigma*dt)
	if math.Abs(y[seird.E]-want) > 100.0*math.Pow(p.Sigma*dt, 5) {
		t.Errorf("E after one step: got %.12f, want %.12f", y[seird.E], want)
	}
}

func TestRK4_InvalidStepSize(t *testing.T) {
	stepper := NewRK4()
	m := seird.NewModel(seird.DefaultParams())
	y := seird.State{990, 10, 0, 0, 0}

	err := stepper.Step(m, &y, 0)
	if !errors.Is(err, seird.ErrInvalidStepSize) {
		t.Errorf("expected ErrInvalidStepSize, got %v", err)
	}
}

func TestRK4_MoreAccurateThanEuler(t *testing.T) {
	p := seird.DefaultParams()
	p.Beta = 0
	m := seird.NewModel(p)

	dt := 0.5
	steps := 20
	elapsed := float64(steps) * dt
	exact := 50.0 * math.Exp(-(p.Gamma+p.Mu)*elapsed)

	yEuler := seird.State{0, 0, 50, 0, 0}
	yRK4 := seird.State{0, 0, 50, 0, 0}
	euler := NewEuler()
	rk4 := NewRK4()

	for i := 0; i < steps; i++ {
		if err := euler.Step(m, &yEuler, dt); err != nil {
			t.Fatal(err)
		}
		if err := rk4.Step(m, &yRK4, dt); err != nil {
			t.Fatal(err)
		}
	}

	errEuler := math.Abs(yEuler[seird.I] - exact)
	errRK4 := math.Abs(yRK4[seird.I] - exact)
	if errRK4 >= errEuler {
		t.Errorf("RK4 error %g not smaller than Euler error %g", errRK4, errEuler)
	}
}
