package integrators

// Stats accumulates adaptive-stepper bookkeeping over one run. The
// adaptive stepper is its sole mutator; the driver owns one instance
// per run and must not share it across concurrently stepped
// populations.
type Stats struct {
	// StepsTaken counts every attempted step, accepted or not.
	StepsTaken int
	// RejectedSteps counts attempts whose local error exceeded
	// tolerance. Always <= StepsTaken.
	RejectedSteps int
	// MaxError is the largest local error estimate observed so far.
	MaxError float64
}

func (s *Stats) Reset() {
	s.StepsTaken = 0
	s.RejectedSteps = 0
	s.MaxError = 0
}
