package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/epiforge/episim/internal/config"
	"github.com/epiforge/episim/internal/seird"
)

var _ = Describe("Config", func() {
	Describe("DefaultConfig", func() {
		It("matches the baseline parameterization", func() {
			cfg := config.DefaultConfig()

			Expect(cfg.Stepper).To(Equal("rk4"))
			Expect(cfg.Days).To(BeNumerically(">", 0))
			Expect(cfg.Dt).To(BeNumerically(">", 0))
			Expect(cfg.Params.Beta).To(Equal(0.5))
			Expect(cfg.Params.ContactRate).To(Equal(1.0))
			Expect(cfg.Init.Exposed).To(Equal(10.0))
		})

		It("converts to a matching parameter set", func() {
			p := config.DefaultConfig().GetParams()
			Expect(p).To(Equal(seird.DefaultParams()))
		})
	})

	Describe("GetInitState", func() {
		It("assigns the population remainder to susceptible", func() {
			cfg := config.DefaultConfig()
			cfg.Init.Exposed = 10
			cfg.Init.Infectious = 5

			y := cfg.GetInitState()
			Expect(y[seird.S]).To(Equal(985.0))
			Expect(y[seird.E]).To(Equal(10.0))
			Expect(y[seird.I]).To(Equal(5.0))
			Expect(y.Total()).To(Equal(cfg.Params.Population))
		})
	})

	Describe("Load and Save", func() {
		It("round-trips through yaml", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "scenario.yaml")

			cfg := config.DefaultConfig()
			cfg.Stepper = "dopri45"
			cfg.Days = 365
			cfg.Params.VaccinationRate = 0.02

			Expect(config.Save(path, cfg)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("fills omitted fields from defaults", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "partial.yaml")
			Expect(os.WriteFile(path, []byte("stepper: euler\ndays: 30\n"), 0644)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Stepper).To(Equal("euler"))
			Expect(loaded.Days).To(Equal(30))
			Expect(loaded.Params.Beta).To(Equal(0.5))
		})

		It("fails on a missing file", func() {
			_, err := config.Load("/nonexistent/scenario.yaml")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Presets", func() {
		It("resolves known presets", func() {
			cfg := config.GetPreset("baseline")
			Expect(cfg).NotTo(BeNil())
			Expect(cfg.Params.Population).To(Equal(1000.0))
		})

		It("returns nil for unknown presets", func() {
			Expect(config.GetPreset("nonexistent")).To(BeNil())
		})

		It("lists every preset", func() {
			names := config.ListPresets()
			Expect(names).To(ContainElements("baseline", "vaccination", "waning", "severe"))
		})

		It("keeps every preset runnable", func() {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				Expect(cfg.Days).To(BeNumerically(">", 0), name)
				Expect(cfg.Dt).To(BeNumerically(">", 0), name)
				Expect(cfg.Params.Population).To(BeNumerically(">", 0), name)
			}
		})
	})
})
