package seird

import "math"

// Compartment indices into a State vector.
const (
	S = iota // susceptible
	E        // exposed
	I        // infectious
	R        // recovered
	D        // deceased

	Compartments = 5
)

// Epsilon floors the mixing denominator S+E+I+R so the infection term
// never divides by zero when a population empties out.
const Epsilon = 1e-12

// State holds the five SEIRD compartment counts. The fixed array size
// makes dimension mismatches unrepresentable for single populations.
type State [Compartments]float64

func (s State) Clone() State {
	return s
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Living returns S+E+I+R, the mixing population for the infection term.
func (s State) Living() float64 {
	return s[S] + s[E] + s[I] + s[R]
}

func (s State) Total() float64 {
	return s.Living() + s[D]
}

// MaxAbs returns the infinity norm over the five compartments.
func (s State) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func (s State) Sub(other State) State {
	var out State
	for i := range s {
		out[i] = s[i] - other[i]
	}
	return out
}

func (s State) Scale(factor float64) State {
	var out State
	for i := range s {
		out[i] = s[i] * factor
	}
	return out
}

// System is the derivative function of the epidemic ODE, dy/dt = f(y).
// Implementations must be pure: no mutation of y, no retained state.
type System interface {
	Derive(y State) State
}
