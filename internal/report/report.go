// Package report renders a Markdown summary of a material: one section per
// property family with its formula, parameters and a terminal chart.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/curesim/internal/checks"
	"github.com/san-kum/curesim/internal/config"
	"github.com/san-kum/curesim/internal/material"
	"github.com/san-kum/curesim/internal/modulus"
	"github.com/san-kum/curesim/internal/sweep"
)

type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 72, Height: 12}
}

// Report holds the sweeps a rendered report is drawn from.
type Report struct {
	Material *material.Material
	Phi      *sweep.Result // properties against phi at a fixed temperature
	Temp     *sweep.Result // properties against temperature at a fixed phi
	Checks   []checks.Outcome
}

type section struct {
	title    string
	family   string
	property sweep.Property
	axis     sweep.Axis
	model    any
}

// Build runs the phi and temperature sweeps described by cfg. The temperature
// sweep is held at the midpoint of the phi range.
func Build(m *material.Material, cfg config.SweepConfig) (*Report, error) {
	phi, err := sweep.Run(m, sweep.Spec{
		Axis: sweep.Phi, Min: cfg.PhiMin, Max: cfg.PhiMax, Steps: cfg.Steps, Fixed: cfg.TempC,
	})
	if err != nil {
		return nil, fmt.Errorf("phi sweep: %w", err)
	}
	temp, err := sweep.Run(m, sweep.Spec{
		Axis: sweep.Temperature, Min: cfg.TempMin, Max: cfg.TempMax, Steps: cfg.Steps,
		Fixed: (cfg.PhiMin + cfg.PhiMax) / 2,
	})
	if err != nil {
		return nil, fmt.Errorf("temperature sweep: %w", err)
	}
	return &Report{Material: m, Phi: phi, Temp: temp}, nil
}

func (r *Report) sections() []section {
	m := r.Material
	return []section{
		{"Glass transition", "glass", sweep.Tg, sweep.Phi, m.Glass},
		{"Cure kinetics", "kinetics", sweep.CureRate, sweep.Phi, m.Kinetics},
		{"Elastic modulus", "modulus", sweep.Modulus, sweep.Phi, m.Modulus},
		{"Thermal expansion", "expansion", sweep.CTE, sweep.Phi, m.Expansion},
		{"Specific heat", "heat_capacity", sweep.HeatCapacity, sweep.Temperature, m.HeatCapacity},
	}
}

func (r *Report) Render(w io.Writer, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Material report: %s\n\n", r.Material.Name)

	models := r.Material.Describe()
	b.WriteString("| family | model |\n|---|---|\n")
	for _, s := range r.sections() {
		fmt.Fprintf(&b, "| %s | %s |\n", s.family, models[s.family])
	}
	b.WriteString("\n")

	for _, s := range r.sections() {
		kind := models[s.family]
		res := r.Phi
		if s.axis == sweep.Temperature {
			res = r.Temp
		}

		fmt.Fprintf(&b, "## %s (%s)\n\n", s.title, kind)
		if f, ok := formulas[s.family+"/"+kind]; ok {
			fmt.Fprintf(&b, "Formula: `%s`\n\n", f)
		}
		fmt.Fprintf(&b, "Parameters: `%+v`\n\n", s.model)
		if mb, ok := s.model.(modulus.ModelB); ok && mb.Table != nil {
			writeTable(&b, mb.Table)
		}

		lo, hi := res.Range(s.property)
		fmt.Fprintf(&b, "Sweep over %s in [%g, %g] at %s: %s ranges over [%.6g, %.6g] %s\n\n",
			res.Axis, res.X[0], res.X[len(res.X)-1], fixedLabel(res), s.property, lo, hi, s.property.Unit())

		b.WriteString("```\n")
		b.WriteString(Chart(res, s.property, opts))
		b.WriteString("\n```\n\n")
	}

	if len(r.Checks) > 0 {
		b.WriteString("## Behavioral checks\n\n")
		for _, c := range r.Checks {
			mark := "x"
			if !c.Passed {
				mark = " "
			}
			fmt.Fprintf(&b, "- [%s] %s: %s\n", mark, c.Name, c.Detail)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeTable renders the base modulus samples of a lookup-table model.
func writeTable(b *strings.Builder, t *modulus.Table) {
	phi, e := t.Samples()
	fmt.Fprintf(b, "Base modulus table (%d samples):\n\n| phi | E |\n|---|---|\n", t.Len())
	for i := range phi {
		fmt.Fprintf(b, "| %g | %g |\n", phi[i], e[i])
	}
	b.WriteString("\n")
}

func fixedLabel(res *sweep.Result) string {
	if res.Axis == sweep.Phi {
		return fmt.Sprintf("T=%g °C", res.Fixed)
	}
	return fmt.Sprintf("phi=%g", res.Fixed)
}

// Chart plots one property of a sweep. A constant series has nothing to plot.
func Chart(res *sweep.Result, p sweep.Property, opts Options) string {
	ys := res.Series[p]
	if lo, hi := res.Range(p); lo == hi {
		return fmt.Sprintf("%s constant at %g", p, lo)
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(fmt.Sprintf("%s vs %s", p, res.Axis)),
	)
}

var formulas = map[string]string{
	"glass/dibenedetto":        "Tg0 + (Tg1-Tg0)·λφ / (1-(1-λ)φ)",
	"glass/venditti_gillham":   "exp((ln Tg1 - ln Tg0)·λφ / (1-(1-λ)φ) + ln Tg0)",
	"glass/dykeman":            "DiBenedetto + 35 / (1 + exp(-25(φ-φcrit(T, ramp))))",
	"kinetics/prout_thompkins": "A·exp(-Ea/RT)·φ^m·(1-φ)^n",
	"kinetics/kamal_sourour":   "(k1 + k2·φ^m)·(1-φ)^n",
	"kinetics/dykeman":         "Σ Kc·Kd/(Kc+Kd) over three mechanisms with free-volume diffusion",
	"modulus/model_a":          "A2 + (A1-A2) / (1 + exp((η-η0)/Δη)), 1e-6 below gel",
	"modulus/model_b":          "E_table(φ)·f_A·f_φ·f_η, 1e-6 below gel",
	"expansion/model_a":        "(α - β(φ - φgel))·1e-5",
	"expansion/linear":         "(αφ + β)·1e-5",
	"heat_capacity/linear":     "(αT + β)·1e9",
}
