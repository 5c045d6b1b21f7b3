package integrators

import (
	"math"

	"github.com/epiforge/episim/internal/seird"
)

// Dormand-Prince coefficients (embedded 4th/5th order pair)
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	// 5th-order solution weights (c2 and c7 are zero)
	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	// embedded 4th-order solution weights (e2 is zero)
	e1 = 5179.0 / 57600.0
	e3 = 7571.0 / 16695.0
	e4 = 393.0 / 640.0
	e5 = -92097.0 / 339200.0
	e6 = 187.0 / 2100.0
	e7 = 1.0 / 40.0
)

const (
	safety   = 0.9
	minScale = 0.1
	maxScale = 5.0
	minStep  = 1e-8
)

// Dopri45 is the adaptive Dormand-Prince 4(5) stepper. Each call
// attempts one step of size *dt: seven derivative evaluations build a
// 5th-order candidate and an embedded 4th-order candidate, the
// infinity norm of their difference is the local error estimate, and
// the step is accepted iff the estimate is within tolerance. *dt is
// rescaled for the next attempt in both branches; *y advances only on
// acceptance. The stepper itself holds no mutable state across calls.
type Dopri45 struct {
	AbsTol float64
	RelTol float64
}

func NewDopri45(abstol, reltol float64) *Dopri45 {
	return &Dopri45{AbsTol: abstol, RelTol: reltol}
}

// Step attempts one adaptive step and reports whether it was accepted.
// st is updated on every call: StepsTaken increments, MaxError absorbs
// the error estimate, and RejectedSteps increments on rejection.
func (d *Dopri45) Step(sys seird.System, y *seird.State, dt *float64, st *Stats) (bool, error) {
	if *dt <= 0 || d.AbsTol <= 0 || d.RelTol <= 0 {
		return false, seird.ErrInvalidStepSize
	}

	h := *dt
	var stage seird.State

	k1 := sys.Derive(*y)

	for i := range stage {
		stage[i] = y[i] + h*b21*k1[i]
	}
	k2 := sys.Derive(stage)

	for i := range stage {
		stage[i] = y[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(stage)

	for i := range stage {
		stage[i] = y[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(stage)

	for i := range stage {
		stage[i] = y[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(stage)

	for i := range stage {
		stage[i] = y[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(stage)

	// 5th-order candidate; its derivative is the 7th stage (FSAL).
	var y5 seird.State
	for i := range y5 {
		y5[i] = y[i] + h*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}
	k7 := sys.Derive(y5)

	var y4 seird.State
	for i := range y4 {
		y4[i] = y[i] + h*(e1*k1[i]+e3*k3[i]+e4*k4[i]+e5*k5[i]+e6*k6[i]+e7*k7[i])
	}

	errEst := y5.Sub(y4).MaxAbs()

	st.StepsTaken++
	if errEst > st.MaxError {
		st.MaxError = errEst
	}

	tol := math.Max(d.AbsTol, d.RelTol*y.MaxAbs())
	accepted := errEst <= tol
	if accepted {
		*y = y5
	} else {
		st.RejectedSteps++
	}

	// Exponent 1/5 matches the embedded order; 0.9 is the safety
	// margin. A zero error estimate would divide by zero, so it is
	// treated as maximal growth.
	var factor float64
	if errEst == 0 {
		factor = maxScale
	} else {
		factor = safety * math.Pow(math.Max(d.AbsTol, errEst)/errEst, 0.2)
	}
	if factor < minScale {
		factor = minScale
	}
	if accepted && factor > maxScale {
		factor = maxScale
	}

	*dt = math.Max(*dt*factor, minStep)

	return accepted, nil
}
