// Package seird defines the SEIRD compartmental epidemic model: the
// state vector, the rate parameters, and the ODE right-hand side
// evaluator in single-population and batched form.
//
// The model tracks five compartments (Susceptible, Exposed, Infectious,
// Recovered, Deceased) with optional vaccination, waning immunity, and
// hospitalization/severe-mortality extensions:
//
//	p := seird.DefaultParams()
//	m := seird.NewModel(p)
//	dy := m.Derive(seird.State{990, 10, 0, 0, 0})
//
// # Thread Safety
//
// Model is stateless and safe for concurrent use. Batch rows are
// uncoupled, so [Model.DeriveBatch] parallelizes over any worker count
// without locks.
package seird
