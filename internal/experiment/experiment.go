package experiment

import (
	"context"
	"fmt"

	"github.com/epiforge/episim/internal/seird"
	"github.com/epiforge/episim/internal/sim"
)

// Config bundles everything needed to run one scenario.
type Config struct {
	Stepper   string
	Params    seird.Params
	InitState seird.State
	Days      int
	Dt        float64
	AbsTol    float64
	RelTol    float64
}

// Experiment wires a configured scenario to a simulator.
type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(registry *Registry) error {
	model := seird.NewModel(e.cfg.Params)
	s, err := registry.GetSimulator(e.cfg.Stepper, model, e.cfg.AbsTol, e.cfg.RelTol)
	if err != nil {
		return err
	}
	for _, m := range DefaultMetrics(e.cfg.Params) {
		s.AddMetric(m)
	}
	e.simulator = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	runCfg := sim.RunConfig{
		Days: e.cfg.Days,
		Dt:   e.cfg.Dt,
	}

	return e.simulator.Run(ctx, e.cfg.InitState, runCfg)
}
