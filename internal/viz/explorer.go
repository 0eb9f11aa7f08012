package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/material"
	"github.com/san-kum/curesim/internal/sweep"
)

const (
	defaultPhiStep  = 0.01
	defaultTempStep = 5.0
	curveSteps      = 60
	curveWidth      = 48
)

// Entry is a named material the explorer can switch to.
type Entry struct {
	Name     string
	Material *material.Material
}

type Explorer struct {
	entries  []Entry
	index    int
	phi      float64
	tempC    float64
	phi0     float64
	temp0    float64
	phiStep  float64
	tempStep float64
	prop     sweep.Property
	theme    Theme

	props material.Properties
	curve []float64
	err   error
	width int
}

func NewExplorer(entries []Entry, phi, tempC float64) (Explorer, error) {
	if len(entries) == 0 {
		return Explorer{}, fmt.Errorf("%w: explorer needs at least one material", cure.ErrConfiguration)
	}
	e := Explorer{
		entries:  entries,
		phi:      phi,
		tempC:    tempC,
		phi0:     phi,
		temp0:    tempC,
		phiStep:  defaultPhiStep,
		tempStep: defaultTempStep,
		prop:     sweep.Tg,
		theme:    Themes[0],
		width:    80,
	}
	e.evaluate()
	return e, nil
}

// WithTheme selects a color theme by name.
func (e Explorer) WithTheme(name string) (Explorer, error) {
	t, ok := GetTheme(name)
	if !ok {
		return e, cure.ConfigError("theme", name, ThemeNames())
	}
	e.theme = t
	return e, nil
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg)
	case tea.WindowSizeMsg:
		e.width = msg.Width
	}
	return e, nil
}

func (e Explorer) handleKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "left", "h":
		e.phi = nudge(e.phi, -e.phiStep)
	case "right", "l":
		e.phi = nudge(e.phi, e.phiStep)
	case "up", "k":
		e.tempC = nudge(e.tempC, e.tempStep)
	case "down", "j":
		e.tempC = nudge(e.tempC, -e.tempStep)
	case "tab":
		e.index = (e.index + 1) % len(e.entries)
	case "shift+tab":
		e.index = (e.index + len(e.entries) - 1) % len(e.entries)
	case "p":
		props := sweep.Properties()
		e.prop = props[(int(e.prop)+1)%len(props)]
	case "t":
		e.theme = nextTheme(e.theme.Name)
		return e, nil
	case "r":
		e.phi, e.tempC = e.phi0, e.temp0
	default:
		return e, nil
	}
	e.evaluate()
	return e, nil
}

// nudge steps v by d and rounds off accumulated float error.
func nudge(v, d float64) float64 {
	return math.Round((v+d)*1e6) / 1e6
}

func (e *Explorer) evaluate() {
	m := e.entries[e.index].Material
	e.props, e.err = m.Evaluate(e.phi, e.tempC)

	e.curve = nil
	res, err := sweep.Run(m, sweep.Spec{Axis: sweep.Phi, Min: 0, Max: 1, Steps: curveSteps, Fixed: e.tempC})
	if err == nil {
		e.curve = res.Series[e.prop]
	}
}

func (e Explorer) View() string {
	s := newStyles(e.theme)
	entry := e.entries[e.index]

	var b strings.Builder
	b.WriteString("\n  " + s.title.Render("CURESIM") + "  " + s.sub.Render("material explorer") + "\n")
	b.WriteString("  " + s.value.Render(entry.Name) + s.sub.Render(fmt.Sprintf("  (%d/%d)", e.index+1, len(e.entries))) + "\n")

	models := entry.Material.Describe()
	b.WriteString("  " + s.sub.Render(fmt.Sprintf("glass=%s kinetics=%s modulus=%s expansion=%s heat=%s",
		models["glass"], models["kinetics"], models["modulus"], models["expansion"], models["heat_capacity"])) + "\n\n")

	var rows strings.Builder
	row := func(label, value string) {
		rows.WriteString(s.label.Render(fmt.Sprintf("%-14s", label)) + s.value.Render(value) + "\n")
	}
	row("phi", fmt.Sprintf("%.3f", e.phi))
	row("temperature", fmt.Sprintf("%.1f °C", e.tempC))
	if e.err != nil {
		rows.WriteString("\n" + s.err.Render(e.err.Error()))
	} else {
		row("tg", fmt.Sprintf("%.3f °C", e.props.Tg))
		row("cure rate", fmt.Sprintf("%.6g 1/s", e.props.CureRate))
		row("modulus", fmt.Sprintf("%.6g", e.props.Modulus))
		row("cte", fmt.Sprintf("%.6g 1/K", e.props.CTE))
		row("specific heat", fmt.Sprintf("%.6g", e.props.SpecificHeat))
	}
	b.WriteString(s.panel.Render(strings.TrimRight(rows.String(), "\n")) + "\n\n")

	b.WriteString("  " + s.curve.Render(fmt.Sprintf("%s vs phi at %.1f °C", e.prop, e.tempC)) + "\n")
	b.WriteString("  " + s.Sparkline(e.curve, min(curveWidth, max(e.width-4, 1))) + "\n\n")

	b.WriteString("  " + s.hints("←/→", "phi", "↑/↓", "temp", "tab", "material", "p", "property", "t", "theme", "r", "reset", "q", "quit") + "\n")
	return b.String()
}

func Run(e Explorer) error {
	_, err := tea.NewProgram(e, tea.WithAltScreen()).Run()
	return err
}
