// Package report renders simulation results for the console: ASCII
// compartment curves, a styled summary panel, and CSV export of
// per-day derived statistics.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/epiforge/episim/internal/seird"
	"github.com/epiforge/episim/internal/sim"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2)
)

var compartmentNames = [seird.Compartments]string{
	"susceptible", "exposed", "infectious", "recovered", "deceased",
}

// PlotCompartments renders one asciigraph per compartment. Negative
// values produced by coarse fixed steps are clamped to zero for
// display only; the stored trajectory is untouched.
func PlotCompartments(result *sim.Result, width, height int) string {
	var b strings.Builder
	for c := 0; c < seird.Compartments; c++ {
		series := result.Series(c)
		for i, v := range series {
			if v < 0 {
				series[i] = 0
			}
		}
		graph := asciigraph.Plot(series,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(compartmentNames[c]),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Summary renders a styled panel with the final state, the derived
// metrics, and the adaptive solver statistics when present.
func Summary(params seird.Params, result *sim.Result) string {
	final := result.Final()

	var rows []string
	rows = append(rows, headerStyle.Render("simulation summary"))
	rows = append(rows, row("days", fmt.Sprintf("%d", len(result.States)-1)))
	rows = append(rows, row("R0", fmt.Sprintf("%.3f", params.R0())))
	for c := 0; c < seird.Compartments; c++ {
		rows = append(rows, row(compartmentNames[c], fmt.Sprintf("%.2f", final[c])))
	}
	for name, val := range result.Metrics {
		rows = append(rows, row(name, fmt.Sprintf("%.4f", val)))
	}
	if result.Stats.StepsTaken > 0 {
		rows = append(rows, row("steps taken", fmt.Sprintf("%d", result.Stats.StepsTaken)))
		rows = append(rows, row("steps rejected", fmt.Sprintf("%d", result.Stats.RejectedSteps)))
		rows = append(rows, row("max local error", fmt.Sprintf("%.3e", result.Stats.MaxError)))
	}

	return panelStyle.Render(strings.Join(rows, "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// ExportDerived writes per-day derived statistics as CSV: daily new
// cases (day-over-day drop in susceptibles), active cases (E+I),
// cumulative deaths, and the detected share of active cases.
func ExportDerived(w io.Writer, params seird.Params, result *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"day", "new_cases", "active_cases", "cumulative_deaths", "detected_active"}); err != nil {
		return err
	}

	detectRate := 1.0 - params.AsymptomaticFrac
	for i, y := range result.States {
		newCases := 0.0
		if i > 0 {
			newCases = result.States[i-1][seird.S] - y[seird.S]
			if newCases < 0 {
				newCases = 0
			}
		}
		active := y[seird.E] + y[seird.I]

		record := []string{
			strconv.FormatFloat(result.Times[i], 'f', 2, 64),
			strconv.FormatFloat(newCases, 'f', 6, 64),
			strconv.FormatFloat(active, 'f', 6, 64),
			strconv.FormatFloat(y[seird.D], 'f', 6, 64),
			strconv.FormatFloat(active*detectRate, 'f', 6, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	return nil
}
