package config

var Presets = map[string]*Config{
	"baseline": {
		Stepper: "rk4", Days: 160, Dt: 0.1,
		Params: ParamsConfig{Beta: 0.5, Sigma: 0.2, Gamma: 0.1, Mu: 0.01, Population: 1000, ContactRate: 1.0},
		Init:   InitialConfig{Exposed: 10},
	},
	"vaccination": {
		Stepper: "rk4", Days: 200, Dt: 0.1,
		Params: ParamsConfig{Beta: 0.5, Sigma: 0.2, Gamma: 0.1, Mu: 0.01, Population: 1000, ContactRate: 1.0, VaccinationRate: 0.02},
		Init:   InitialConfig{Exposed: 10},
	},
	"waning": {
		Stepper: "dopri45", Days: 365, Dt: 0.1, AbsTol: 1e-6, RelTol: 1e-3,
		Params: ParamsConfig{Beta: 0.5, Sigma: 0.2, Gamma: 0.1, Mu: 0.01, Population: 1000, ContactRate: 1.0, WaningRate: 0.01},
		Init:   InitialConfig{Exposed: 10},
	},
	"severe": {
		Stepper: "dopri45", Days: 200, Dt: 0.1, AbsTol: 1e-6, RelTol: 1e-3,
		Params: ParamsConfig{
			Beta: 0.8, Sigma: 0.25, Gamma: 0.08, Mu: 0.02, Population: 1000, ContactRate: 1.0,
			HospitalizationRate: 0.15, SevereMortality: 0.1, AsymptomaticFrac: 0.3,
		},
		Init: InitialConfig{Exposed: 5, Infectious: 1},
	},
	"slow-burn": {
		Stepper: "euler", Days: 365, Dt: 0.05,
		Params: ParamsConfig{Beta: 0.15, Sigma: 0.1, Gamma: 0.1, Mu: 0.005, Population: 10000, ContactRate: 1.0},
		Init:   InitialConfig{Exposed: 20},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
