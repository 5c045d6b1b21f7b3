package integrators

import (
	"testing"

	"github.com/epiforge/episim/internal/seird"
)

func BenchmarkEuler(b *testing.B) {
	stepper := NewEuler()
	m := seird.NewModel(seird.DefaultParams())
	y := seird.State{990, 10, 0, 0, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = stepper.Step(m, &y, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	stepper := NewRK4()
	m := seird.NewModel(seird.DefaultParams())
	y := seird.State{990, 10, 0, 0, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = stepper.Step(m, &y, 0.01)
	}
}

func BenchmarkDopri45(b *testing.B) {
	stepper := NewDopri45(1e-6, 1e-3)
	m := seird.NewModel(seird.DefaultParams())
	y := seird.State{990, 10, 0, 0, 0}
	dt := 0.01
	var st Stats

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = stepper.Step(m, &y, &dt, &st)
	}
}

func BenchmarkDeriveBatch(b *testing.B) {
	m := seird.NewModel(seird.DefaultParams())
	in := seird.NewBatch(1024, seird.State{990, 10, 0, 0, 0})
	out := make(seird.Batch, len(in))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.DeriveBatch(in, out, 0)
	}
}
