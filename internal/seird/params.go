package seird

// Params collects the epidemiological rate constants for one run.
// A Params value is immutable for the duration of an integration:
// steppers and evaluators borrow it read-only.
type Params struct {
	Beta                float64 // transmission rate
	Sigma               float64 // incubation rate (E -> I)
	Gamma               float64 // recovery rate (I -> R)
	Mu                  float64 // baseline infection mortality (I -> D)
	Population          float64 // total population N
	VaccinationRate     float64 // S -> R
	ContactRate         float64 // contact multiplier on transmission
	WaningRate          float64 // immunity loss, R -> S
	AsymptomaticFrac    float64 // fraction of infections never detected
	HospitalizationRate float64 // fraction of infectious hospitalized
	SevereMortality     float64 // extra mortality among hospitalized
}

// DefaultParams returns the baseline SEIRD parameterization: a
// moderately transmissible disease in a population of 1000 with
// no vaccination, waning, or hospitalization pathway.
func DefaultParams() Params {
	return Params{
		Beta:        0.5,
		Sigma:       0.2,
		Gamma:       0.1,
		Mu:          0.01,
		Population:  1000,
		ContactRate: 1.0,
	}
}

// R0 is the basic reproduction number implied by the parameters.
func (p Params) R0() float64 {
	denom := p.Gamma + p.Mu
	if denom <= 0 {
		return 0
	}
	return p.Beta * p.ContactRate / denom
}
