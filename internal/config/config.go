package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/epiforge/episim/internal/seird"
)

const (
	DefaultDays   = 160
	DefaultDt     = 0.1
	DefaultAbsTol = 1e-6
	DefaultRelTol = 1e-3
)

type Config struct {
	Stepper string        `yaml:"stepper"`
	Days    int           `yaml:"days"`
	Dt      float64       `yaml:"dt"`
	AbsTol  float64       `yaml:"abstol"`
	RelTol  float64       `yaml:"reltol"`
	Params  ParamsConfig  `yaml:"params"`
	Init    InitialConfig `yaml:"init"`
}

type ParamsConfig struct {
	Beta                float64 `yaml:"beta"`
	Sigma               float64 `yaml:"sigma"`
	Gamma               float64 `yaml:"gamma"`
	Mu                  float64 `yaml:"mu"`
	Population          float64 `yaml:"population"`
	VaccinationRate     float64 `yaml:"vaccination_rate"`
	ContactRate         float64 `yaml:"contact_rate"`
	WaningRate          float64 `yaml:"waning_rate"`
	AsymptomaticFrac    float64 `yaml:"asymptomatic_frac"`
	HospitalizationRate float64 `yaml:"hospitalization_rate"`
	SevereMortality     float64 `yaml:"severe_mortality"`
}

type InitialConfig struct {
	Exposed    float64 `yaml:"exposed"`
	Infectious float64 `yaml:"infectious"`
	Recovered  float64 `yaml:"recovered"`
	Deceased   float64 `yaml:"deceased"`
}

func DefaultConfig() *Config {
	p := seird.DefaultParams()
	return &Config{
		Stepper: "rk4",
		Days:    DefaultDays,
		Dt:      DefaultDt,
		AbsTol:  DefaultAbsTol,
		RelTol:  DefaultRelTol,
		Params: ParamsConfig{
			Beta:        p.Beta,
			Sigma:       p.Sigma,
			Gamma:       p.Gamma,
			Mu:          p.Mu,
			Population:  p.Population,
			ContactRate: p.ContactRate,
		},
		Init: InitialConfig{
			Exposed: 10,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetParams converts the yaml view into the model's parameter set.
func (c *Config) GetParams() seird.Params {
	return seird.Params{
		Beta:                c.Params.Beta,
		Sigma:               c.Params.Sigma,
		Gamma:               c.Params.Gamma,
		Mu:                  c.Params.Mu,
		Population:          c.Params.Population,
		VaccinationRate:     c.Params.VaccinationRate,
		ContactRate:         c.Params.ContactRate,
		WaningRate:          c.Params.WaningRate,
		AsymptomaticFrac:    c.Params.AsymptomaticFrac,
		HospitalizationRate: c.Params.HospitalizationRate,
		SevereMortality:     c.Params.SevereMortality,
	}
}

// GetInitState builds the day-0 state vector; susceptible is whatever
// remains of the population after the seeded compartments.
func (c *Config) GetInitState() seird.State {
	var y seird.State
	y[seird.E] = c.Init.Exposed
	y[seird.I] = c.Init.Infectious
	y[seird.R] = c.Init.Recovered
	y[seird.D] = c.Init.Deceased
	y[seird.S] = c.Params.Population - c.Init.Exposed - c.Init.Infectious - c.Init.Recovered - c.Init.Deceased
	return y
}
