package storage

import (
	"math"
	"strings"
	"testing"

	"github.com/epiforge/episim/internal/integrators"
	"github.com/epiforge/episim/internal/seird"
	"github.com/epiforge/episim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States: []seird.State{
			{990, 10, 0, 0, 0},
			{985.5, 9.2, 4.1, 1.1, 0.1},
			{978.25, 11.75, 7.5, 2.25, 0.25},
		},
		Times:   []float64{0, 1, 2},
		Stats:   integrators.Stats{StepsTaken: 42, RejectedSteps: 3, MaxError: 1.5e-7},
		Metrics: map[string]float64{"peak_infectious": 7.5},
	}
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	params := seird.DefaultParams()
	cfg := sim.RunConfig{Days: 2, Dt: 0.1}
	result := sampleResult()

	runID, err := st.Save("dopri45", cfg, params, result)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(runID, "dopri45_") {
		t.Errorf("run id %q missing stepper prefix", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Stepper != "dopri45" || meta.Days != 2 || meta.Dt != 0.1 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Steps != 42 || meta.Rejected != 3 || meta.MaxError != 1.5e-7 {
		t.Errorf("stats not persisted: %+v", meta)
	}
	if meta.Params.Beta != params.Beta {
		t.Errorf("params not persisted: %+v", meta.Params)
	}
	if meta.Metrics["peak_infectious"] != 7.5 {
		t.Errorf("metrics not persisted: %+v", meta.Metrics)
	}

	states, times, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("LoadTrajectory: %v", err)
	}
	if len(states) != len(result.States) {
		t.Fatalf("got %d states, want %d", len(states), len(result.States))
	}
	for i := range states {
		if times[i] != result.Times[i] {
			t.Errorf("times[%d] = %g, want %g", i, times[i], result.Times[i])
		}
		for c := 0; c < seird.Compartments; c++ {
			// CSV carries six decimal places.
			if math.Abs(states[i][c]-result.States[i][c]) > 5e-7 {
				t.Errorf("state[%d][%d] = %g, want %g", i, c, states[i][c], result.States[i][c])
			}
		}
	}
}

func TestStore_List(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty store, got %d runs", len(runs))
	}

	cfg := sim.RunConfig{Days: 2, Dt: 0.1}
	for i := 0; i < 3; i++ {
		if _, err := st.Save("rk4", cfg, seird.DefaultParams(), sampleResult()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	st := New("/nonexistent/episim-store")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List on missing dir should not fail: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestStore_LoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); err == nil {
		t.Error("expected error for unknown run id")
	}
}
