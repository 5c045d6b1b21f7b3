package metrics

import "github.com/epiforge/episim/internal/seird"

// PeakInfectious tracks the largest infectious count and the day it
// occurred.
type PeakInfectious struct {
	peak float64
	day  float64
}

func NewPeakInfectious() *PeakInfectious {
	return &PeakInfectious{}
}

func (p *PeakInfectious) Name() string { return "peak_infectious" }

func (p *PeakInfectious) Observe(y seird.State, day float64) {
	if y[seird.I] > p.peak {
		p.peak = y[seird.I]
		p.day = day
	}
}

func (p *PeakInfectious) Value() float64 { return p.peak }
func (p *PeakInfectious) Day() float64   { return p.day }

func (p *PeakInfectious) Reset() {
	p.peak = 0
	p.day = 0
}

// AttackRate is the fraction of the population infected at least once
// by the end of the run: 1 - S_final/N.
type AttackRate struct {
	population float64
	finalS     float64
	samples    int
}

func NewAttackRate(population float64) *AttackRate {
	return &AttackRate{population: population}
}

func (a *AttackRate) Name() string { return "attack_rate" }

func (a *AttackRate) Observe(y seird.State, day float64) {
	a.finalS = y[seird.S]
	a.samples++
}

func (a *AttackRate) Value() float64 {
	if a.samples == 0 || a.population <= 0 {
		return 0
	}
	return 1.0 - a.finalS/a.population
}

func (a *AttackRate) Reset() {
	a.finalS = 0
	a.samples = 0
}

// CaseFatality is deaths divided by cumulative infections.
type CaseFatality struct {
	population float64
	finalS     float64
	finalD     float64
	samples    int
}

func NewCaseFatality(population float64) *CaseFatality {
	return &CaseFatality{population: population}
}

func (c *CaseFatality) Name() string { return "case_fatality" }

func (c *CaseFatality) Observe(y seird.State, day float64) {
	c.finalS = y[seird.S]
	c.finalD = y[seird.D]
	c.samples++
}

func (c *CaseFatality) Value() float64 {
	infected := c.population - c.finalS
	if c.samples == 0 || infected <= 0 {
		return 0
	}
	return c.finalD / infected
}

func (c *CaseFatality) Reset() {
	c.finalS = 0
	c.finalD = 0
	c.samples = 0
}

// DetectedCases scales cumulative infections by the symptomatic
// fraction, estimating how many would surface in case counts.
type DetectedCases struct {
	population       float64
	asymptomaticFrac float64
	finalS           float64
	samples          int
}

func NewDetectedCases(population, asymptomaticFrac float64) *DetectedCases {
	return &DetectedCases{population: population, asymptomaticFrac: asymptomaticFrac}
}

func (d *DetectedCases) Name() string { return "detected_cases" }

func (d *DetectedCases) Observe(y seird.State, day float64) {
	d.finalS = y[seird.S]
	d.samples++
}

func (d *DetectedCases) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return (d.population - d.finalS) * (1.0 - d.asymptomaticFrac)
}

func (d *DetectedCases) Reset() {
	d.finalS = 0
	d.samples = 0
}
