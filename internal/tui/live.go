// Package tui provides a live terminal view of a running simulation:
// each animation tick advances one simulated day and redraws the
// compartment curves.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/epiforge/episim/internal/integrators"
	"github.com/epiforge/episim/internal/seird"
)

const (
	graphWidth    = 70
	graphHeight   = 10
	historyLength = 400
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model holds the live simulation and its display buffers.
type Model struct {
	model   *seird.Model
	stepper *integrators.RK4
	state   seird.State
	day     int
	days    int
	dt      float64
	running bool

	infectious []float64
	deceased   []float64
}

func NewModel(params seird.Params, initial seird.State, days int, dt float64) Model {
	return Model{
		model:      seird.NewModel(params),
		stepper:    integrators.NewRK4(),
		state:      initial,
		days:       days,
		dt:         dt,
		running:    true,
		infectious: make([]float64, 0, historyLength),
		deceased:   make([]float64, 0, historyLength),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.day < m.days {
			m.advanceDay()
		}
		return m, tick()
	}
	return m, nil
}

// advanceDay subdivides the day exactly like the simulator so the live
// view and a stored run of the same scenario agree.
func (m *Model) advanceDay() {
	substeps := int(math.Round(1.0 / m.dt))
	if substeps < 1 {
		substeps = 1
	}
	h := 1.0 / float64(substeps)
	for i := 0; i < substeps; i++ {
		if err := m.stepper.Step(m.model, &m.state, h); err != nil {
			m.running = false
			return
		}
	}
	m.day++

	m.infectious = append(m.infectious, clampNonNeg(m.state[seird.I]))
	m.deceased = append(m.deceased, clampNonNeg(m.state[seird.D]))
	if len(m.infectious) > historyLength {
		m.infectious = m.infectious[1:]
		m.deceased = m.deceased[1:]
	}
}

func clampNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("episim live"))
	b.WriteString("\n")

	if len(m.infectious) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.infectious,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("infectious"),
		)))
		b.WriteString("\n")
	}

	stats := []string{
		labelStyle.Render("day") + valueStyle.Render(fmt.Sprintf("%d / %d", m.day, m.days)),
		labelStyle.Render("susceptible") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[seird.S])),
		labelStyle.Render("exposed") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[seird.E])),
		labelStyle.Render("infectious") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[seird.I])),
		labelStyle.Render("recovered") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[seird.R])),
		labelStyle.Render("deceased") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[seird.D])),
	}
	b.WriteString(statsStyle.Render(strings.Join(stats, "\n")))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space: pause/resume  q: quit"))
	return b.String()
}

// Run launches the live view and blocks until the user quits.
func Run(params seird.Params, initial seird.State, days int, dt float64) error {
	p := tea.NewProgram(NewModel(params, initial, days, dt))
	_, err := p.Run()
	return err
}
