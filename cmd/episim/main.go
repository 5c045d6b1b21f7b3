package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/epiforge/episim/internal/config"
	"github.com/epiforge/episim/internal/experiment"
	"github.com/epiforge/episim/internal/optim"
	"github.com/epiforge/episim/internal/report"
	"github.com/epiforge/episim/internal/seird"
	"github.com/epiforge/episim/internal/sim"
	"github.com/epiforge/episim/internal/storage"
	"github.com/epiforge/episim/internal/tui"
)

var (
	dataDir string
	stepper string
	days    int
	dt      float64
	abstol  float64
	reltol  float64

	beta            float64
	sigma           float64
	gamma           float64
	mu              float64
	population      float64
	vaccinationRate float64
	contactRate     float64
	waningRate      float64
	asymptomatic    float64
	hospitalization float64
	severeMortality float64

	exposed    float64
	infectious float64

	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "episim",
		Short: "SEIRD epidemic simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".episim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-day derived statistics to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [stepper1] [stepper2] ...",
		Short: "compare steppers on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSteppers,
	}
	addScenarioFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid-sweep vaccination and contact rate for minimum peak",
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, presetsCmd, liveCmd, compareCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&stepper, "stepper", "rk4", "stepper (euler, rk4, dopri45)")
	cmd.Flags().IntVar(&days, "days", config.DefaultDays, "simulated days")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size in days")
	cmd.Flags().Float64Var(&abstol, "abstol", config.DefaultAbsTol, "absolute tolerance (dopri45)")
	cmd.Flags().Float64Var(&reltol, "reltol", config.DefaultRelTol, "relative tolerance (dopri45)")
	cmd.Flags().Float64Var(&beta, "beta", 0.5, "transmission rate")
	cmd.Flags().Float64Var(&sigma, "sigma", 0.2, "incubation rate")
	cmd.Flags().Float64Var(&gamma, "gamma", 0.1, "recovery rate")
	cmd.Flags().Float64Var(&mu, "mu", 0.01, "baseline mortality rate")
	cmd.Flags().Float64Var(&population, "population", 1000, "total population")
	cmd.Flags().Float64Var(&vaccinationRate, "vaccination", 0, "vaccination rate")
	cmd.Flags().Float64Var(&contactRate, "contact", 1.0, "contact rate multiplier")
	cmd.Flags().Float64Var(&waningRate, "waning", 0, "waning immunity rate")
	cmd.Flags().Float64Var(&asymptomatic, "asymptomatic", 0, "asymptomatic fraction")
	cmd.Flags().Float64Var(&hospitalization, "hospitalization", 0, "hospitalization rate")
	cmd.Flags().Float64Var(&severeMortality, "severe-mortality", 0, "severe-case mortality rate")
	cmd.Flags().Float64Var(&exposed, "exposed", 10, "initially exposed")
	cmd.Flags().Float64Var(&infectious, "infectious", 0, "initially infectious")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")
}

// resolveConfig merges preset, config file, and CLI flags in increasing
// precedence, mirroring run's defaulting behavior across subcommands.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
		if cfg.AbsTol == 0 {
			cfg.AbsTol = config.DefaultAbsTol
		}
		if cfg.RelTol == 0 {
			cfg.RelTol = config.DefaultRelTol
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagOverrides := map[string]func(){
		"stepper":          func() { cfg.Stepper = stepper },
		"days":             func() { cfg.Days = days },
		"dt":               func() { cfg.Dt = dt },
		"abstol":           func() { cfg.AbsTol = abstol },
		"reltol":           func() { cfg.RelTol = reltol },
		"beta":             func() { cfg.Params.Beta = beta },
		"sigma":            func() { cfg.Params.Sigma = sigma },
		"gamma":            func() { cfg.Params.Gamma = gamma },
		"mu":               func() { cfg.Params.Mu = mu },
		"population":       func() { cfg.Params.Population = population },
		"vaccination":      func() { cfg.Params.VaccinationRate = vaccinationRate },
		"contact":          func() { cfg.Params.ContactRate = contactRate },
		"waning":           func() { cfg.Params.WaningRate = waningRate },
		"asymptomatic":     func() { cfg.Params.AsymptomaticFrac = asymptomatic },
		"hospitalization":  func() { cfg.Params.HospitalizationRate = hospitalization },
		"severe-mortality": func() { cfg.Params.SevereMortality = severeMortality },
		"exposed":          func() { cfg.Init.Exposed = exposed },
		"infectious":       func() { cfg.Init.Infectious = infectious },
	}
	for name, apply := range flagOverrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	return cfg, nil
}

func experimentConfig(cfg *config.Config) experiment.Config {
	return experiment.Config{
		Stepper:   cfg.Stepper,
		Params:    cfg.GetParams(),
		InitState: cfg.GetInitState(),
		Days:      cfg.Days,
		Dt:        cfg.Dt,
		AbsTol:    cfg.AbsTol,
		RelTol:    cfg.RelTol,
	}
}

func buildExperiment(cfg *config.Config) *experiment.Experiment {
	return experiment.New(experimentConfig(cfg))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := buildExperiment(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("running %s simulation for %d days...\n", cfg.Stepper, cfg.Days)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Stepper, sim.RunConfig{Days: cfg.Days, Dt: cfg.Dt}, cfg.GetParams(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Println(report.Summary(cfg.GetParams(), result))

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTEPPER\tDAYS\tDT\tSTEPS\tREJECTED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stepper,
			run.Days,
			run.Dt,
			run.Steps,
			run.Rejected,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nstepper: %s\nsamples: %d\n\n", meta.ID, meta.Stepper, len(states))

	result := &sim.Result{States: states, Times: times}
	fmt.Println(report.PlotCompartments(result, 80, 10))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	result := &sim.Result{States: states, Times: times}
	return report.ExportDerived(os.Stdout, meta.Params, result)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(cfg.GetParams(), cfg.GetInitState(), cfg.Days, cfg.Dt)
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tS\tE\tI\tR\tD\tPEAK\tSTEPS\tREJECTED")

	for _, name := range args {
		runCfg := *cfg
		runCfg.Stepper = name

		exp := buildExperiment(&runCfg)
		if err := exp.Setup(registry); err != nil {
			return err
		}

		result, err := exp.Run(context.Background())
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		final := result.Final()
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\n",
			name,
			final[seird.S], final[seird.E], final[seird.I], final[seird.R], final[seird.D],
			result.Metrics["peak_infectious"],
			result.Stats.StepsTaken,
			result.Stats.RejectedSteps,
		)
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	search := optim.NewGridSearch(
		optim.Axis{
			Name:   "vaccination_rate",
			Values: []float64{0, 0.005, 0.01, 0.02, 0.05},
			Apply:  func(c *experiment.Config, v float64) { c.Params.VaccinationRate = v },
		},
		optim.Axis{
			Name:   "contact_rate",
			Values: []float64{0.5, 0.7, 0.9, 1.0},
			Apply:  func(c *experiment.Config, v float64) { c.Params.ContactRate = v },
		},
	)

	best, err := search.Search(context.Background(), experiment.NewRegistry(), experimentConfig(cfg), "peak_infectious")
	if err != nil {
		return err
	}

	fmt.Printf("minimum peak_infectious: %.2f\n", best.Score)
	var keys []string
	for k := range best.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %g\n", k, best.Values[k])
	}
	return nil
}
