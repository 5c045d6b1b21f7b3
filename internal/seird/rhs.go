package seird

import "math"

// Model evaluates the SEIRD right-hand side for one parameter set.
// It is stateless beyond the borrowed Params and safe for concurrent use.
type Model struct {
	Params Params
}

func NewModel(p Params) *Model {
	return &Model{Params: p}
}

// Derive computes dy/dt at y. Flows:
//
//	infection:   S -> E at beta * contact * S * I / (S+E+I+R)
//	incubation:  E -> I at sigma
//	recovery:    I -> R at gamma
//	mortality:   I -> D at mu, plus severe-case mortality among
//	             the hospitalized fraction
//	vaccination: S -> R
//	waning:      R -> S
//
// The mixing denominator is floored at Epsilon so an emptied population
// yields zero flows rather than NaN. Compartments are not clamped here;
// renderers clamp defensively.
func (m *Model) Derive(y State) State {
	p := m.Params

	living := math.Max(y.Living(), Epsilon)
	infection := p.Beta * p.ContactRate * y[S] * y[I] / living
	vaccinated := p.VaccinationRate * y[S]
	waned := p.WaningRate * y[R]

	var dy State
	dy[S] = -infection - vaccinated + waned
	dy[E] = infection - p.Sigma*y[E]
	dy[I] = p.Sigma*y[E] - (p.Gamma+p.Mu)*y[I]
	dy[R] = p.Gamma*y[I] + vaccinated - waned
	dy[D] = p.Mu*y[I] + p.SevereMortality*p.HospitalizationRate*y[I]
	return dy
}
