// Package integrators provides the time-stepping schemes for the SEIRD
// system: explicit [Euler], classical [RK4], and the adaptive
// Dormand-Prince embedded pair [Dopri45] with step-size control.
//
// All steppers advance a state vector in place and validate their step
// size, returning seird.ErrInvalidStepSize on a non-positive dt. Only
// Dopri45 estimates local error; it records its bookkeeping in a
// caller-owned [Stats].
package integrators
