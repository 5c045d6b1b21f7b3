package seird

import (
	"errors"
	"testing"
)

func makeBatch(n int) Batch {
	b := make(Batch, n)
	for i := range b {
		f := float64(i)
		b[i] = State{990 - f, 10 + 0.5*f, f, 0.25 * f, 0.1 * f}
	}
	return b
}

func TestDeriveBatch_MatchesSequential(t *testing.T) {
	m := NewModel(DefaultParams())
	in := makeBatch(500)

	want := make(Batch, len(in))
	for i, y := range in {
		want[i] = m.Derive(y)
	}

	for _, workers := range []int{1, 2, 8, 64, 0} {
		out := make(Batch, len(in))
		if err := m.DeriveBatch(in, out, workers); err != nil {
			t.Fatalf("DeriveBatch(workers=%d): %v", workers, err)
		}
		for i := range out {
			if out[i] != want[i] {
				t.Fatalf("workers=%d row %d: got %v, want %v", workers, i, out[i], want[i])
			}
		}
	}
}

func TestDeriveBatch_InputUntouched(t *testing.T) {
	m := NewModel(DefaultParams())
	in := makeBatch(100)
	snapshot := in.Clone()

	out := make(Batch, len(in))
	if err := m.DeriveBatch(in, out, 4); err != nil {
		t.Fatal(err)
	}

	for i := range in {
		if in[i] != snapshot[i] {
			t.Fatalf("row %d mutated: %v -> %v", i, snapshot[i], in[i])
		}
	}
}

func TestDeriveBatch_DimensionMismatch(t *testing.T) {
	m := NewModel(DefaultParams())
	in := makeBatch(10)
	out := make(Batch, 9)

	err := m.DeriveBatch(in, out, 2)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	tests := []struct {
		n, minChunk, workers int
	}{
		{0, 64, 4},
		{10, 64, 4},   // below minChunk, sequential
		{1000, 64, 4}, // chunked
		{1000, 64, 1},
		{129, 64, 16},
	}

	for _, tt := range tests {
		hits := make([]int32, tt.n)
		ParallelFor(tt.n, tt.minChunk, tt.workers, func(start, end int) {
			for i := start; i < end; i++ {
				hits[i]++
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d workers=%d: index %d visited %d times", tt.n, tt.workers, i, h)
			}
		}
	}
}

func TestNewBatch(t *testing.T) {
	initial := State{990, 10, 0, 0, 0}
	b := NewBatch(7, initial)

	if len(b) != 7 {
		t.Fatalf("len = %d, want 7", len(b))
	}
	for i, y := range b {
		if y != initial {
			t.Errorf("row %d = %v, want %v", i, y, initial)
		}
	}
}
