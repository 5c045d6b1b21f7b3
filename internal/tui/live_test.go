package tui

import (
	"testing"

	"github.com/epiforge/episim/internal/integrators"
	"github.com/epiforge/episim/internal/seird"
)

func TestAdvanceDay_SubstepsMatchSimulator(t *testing.T) {
	params := seird.DefaultParams()
	initial := seird.State{990, 10, 0, 0, 0}

	// dt=0.4 rounds to 3 substeps of a third of a day; integer
	// truncation of 1/0.4 would take only 2 and drift from a stored
	// run of the same scenario.
	m := NewModel(params, initial, 10, 0.4)
	m.advanceDay()

	want := initial
	stepper := integrators.NewRK4()
	model := seird.NewModel(params)
	for i := 0; i < 3; i++ {
		if err := stepper.Step(model, &want, 1.0/3.0); err != nil {
			t.Fatal(err)
		}
	}

	if m.state != want {
		t.Errorf("state after one day = %v, want %v", m.state, want)
	}
	if m.day != 1 {
		t.Errorf("day = %d, want 1", m.day)
	}
}
