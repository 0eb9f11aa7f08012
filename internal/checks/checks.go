// Package checks runs the documented behavioral properties of the property
// models against their reference parameter sets.
package checks

import (
	"fmt"
	"math"

	"github.com/san-kum/curesim/internal/arrhenius"
	"github.com/san-kum/curesim/internal/config"
	"github.com/san-kum/curesim/internal/glass"
	"github.com/san-kum/curesim/internal/kinetics"
	"github.com/san-kum/curesim/internal/modulus"
	"github.com/san-kum/curesim/internal/sweep"
	"github.com/san-kum/curesim/internal/thermal"
)

type Outcome struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type Check struct {
	Name string
	Run  func() (string, error)
}

var (
	tgParams = glass.DiBenedetto{Tg0: 50, Tg1: 180, Lambda: 0.8}
	phiGrid  = sweep.Linspace(0.01, 0.99, 99)

	modulusA = modulus.ModelA{
		GelPoint: 0.4, TempRef: 180,
		Eta0A: 0.2, Eta0B: 0.1, DEta0A: 0.05, DEta0B: 0.02,
		A1A: 1000, A1B: 0.1, A2A: 10, A2B: 1,
	}
)

// All returns every check in report order.
func All() []Check {
	return []Check{
		{"dibenedetto tg non-decreasing in phi", diBenedettoMonotone},
		{"venditti-gillham tg positive", vendittiPositive},
		{"dykeman tg positive at 150 C", dykemanTgPositive},
		{"arrhenius rate positive", ratePositive},
		{"empirical cure rates positive", empiricalPositive},
		{"dykeman cure rate finite and non-negative", dykemanRateFinite},
		{"model a modulus positive above gel", modulusPositive},
		{"model a modulus placeholder below gel", modulusPlaceholder},
		{"cte positive over phi in [0,1]", ctePositive},
		{"specific heat positive and non-decreasing", heatMonotone},
		{"evaluation is bit-reproducible", reproducible},
	}
}

// Run executes every check. A check that returns an error fails with the
// error as its detail.
func Run() []Outcome {
	checks := All()
	out := make([]Outcome, len(checks))
	for i, c := range checks {
		detail, err := c.Run()
		out[i] = Outcome{Name: c.Name, Passed: err == nil, Detail: detail}
		if err != nil {
			out[i].Detail = err.Error()
		}
	}
	return out
}

// Passed reports whether every outcome passed.
func Passed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if !o.Passed {
			return false
		}
	}
	return true
}

func diBenedettoMonotone() (string, error) {
	prev := math.Inf(-1)
	for _, phi := range phiGrid {
		tg, err := tgParams.Tg(phi, 0)
		if err != nil {
			return "", err
		}
		if tg < prev {
			return "", fmt.Errorf("tg(%g)=%g below tg at previous phi %g", phi, tg, prev)
		}
		prev = tg
	}
	return fmt.Sprintf("%d points, tg(0.99)=%.4g", len(phiGrid), prev), nil
}

func positiveOverPhi(name string, f func(phi float64) (float64, error)) (string, error) {
	lo := math.Inf(1)
	for _, phi := range phiGrid {
		v, err := f(phi)
		if err != nil {
			return "", err
		}
		if !(v > 0) {
			return "", fmt.Errorf("%s(%g)=%g is not positive", name, phi, v)
		}
		lo = math.Min(lo, v)
	}
	return fmt.Sprintf("min %s=%.4g", name, lo), nil
}

func vendittiPositive() (string, error) {
	v := glass.VendittiGillham{Tg0: tgParams.Tg0, Tg1: tgParams.Tg1, Lambda: tgParams.Lambda}
	return positiveOverPhi("tg", func(phi float64) (float64, error) { return v.Tg(phi, 0) })
}

func dykemanTgPositive() (string, error) {
	d := glass.NewDykeman(tgParams.Tg0, tgParams.Tg1, tgParams.Lambda)
	return positiveOverPhi("tg", func(phi float64) (float64, error) { return d.Tg(phi, 150) })
}

func ratePositive() (string, error) {
	k, err := arrhenius.RateChecked(1e5, 50, 150)
	if err != nil {
		return "", err
	}
	if !(k > 0) {
		return "", fmt.Errorf("rate=%g", k)
	}
	return fmt.Sprintf("k=%.4g", k), nil
}

func empiricalPositive() (string, error) {
	pt, err := kinetics.ProutThompkins{A: 1e5, Ea: 50, M: 1, N: 1}.CureRate(0.5, 150, 0)
	if err != nil {
		return "", err
	}
	ks, err := kinetics.KamalSourour{A1: 1e5, A2: 1e3, Ea1: 50, Ea2: 40, M: 1, N: 2}.CureRate(0.4, 180, 0)
	if err != nil {
		return "", err
	}
	if !(pt > 0) || !(ks > 0) {
		return "", fmt.Errorf("prout-thompkins=%g kamal-sourour=%g", pt, ks)
	}
	return fmt.Sprintf("prout-thompkins=%.4g kamal-sourour=%.4g", pt, ks), nil
}

func dykemanRateFinite() (string, error) {
	var d kinetics.Dykeman
	for _, phi := range []float64{0.01, 0.1, 0.9} {
		r, err := d.CureRate(phi, 160, 140)
		if err != nil {
			return "", err
		}
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return "", fmt.Errorf("rate(%g)=%g", phi, r)
		}
	}
	return "phi in {0.01, 0.1, 0.9} at 160 C, tg 140 C", nil
}

func modulusPositive() (string, error) {
	e, err := modulusA.Modulus(0.5, 100)
	if err != nil {
		return "", err
	}
	if !(e > 0) {
		return "", fmt.Errorf("modulus=%g", e)
	}
	return fmt.Sprintf("E(0.5, 100)=%.6g", e), nil
}

func modulusPlaceholder() (string, error) {
	for _, phi := range []float64{0, 0.1, 0.2, 0.39} {
		for _, temp := range []float64{-50, 20, 150, 400} {
			e, err := modulusA.Modulus(phi, temp)
			if err != nil {
				return "", err
			}
			if e != modulus.GelPlaceholder {
				return "", fmt.Errorf("E(%g, %g)=%g", phi, temp, e)
			}
		}
	}
	return fmt.Sprintf("E=%g below gel point %g", modulus.GelPlaceholder, modulusA.GelPoint), nil
}

func ctePositive() (string, error) {
	models := []thermal.Expansion{
		thermal.ExpansionA{GelPoint: 0.45, Alpha: 80, Beta: 70},
		thermal.ExpansionLinear{Alpha: 90, Beta: 10},
	}
	for _, m := range models {
		for _, phi := range sweep.Linspace(0, 1, 101) {
			c, err := m.CTE(phi)
			if err != nil {
				return "", err
			}
			if !(c > 0) {
				return "", fmt.Errorf("%s cte(%g)=%g", m.Kind(), phi, c)
			}
		}
	}
	return "model_a and linear over 101 points", nil
}

func heatMonotone() (string, error) {
	h := thermal.HeatCapacityLinear{Alpha: 1.2e-3, Beta: 0.2}
	prev := 0.0
	for _, temp := range sweep.Linspace(20, 500, 97) {
		c, err := h.SpecificHeat(temp)
		if err != nil {
			return "", err
		}
		if !(c > 0) || c < prev {
			return "", fmt.Errorf("cp(%g)=%g after %g", temp, c, prev)
		}
		prev = c
	}
	return fmt.Sprintf("cp(500)=%.4g", prev), nil
}

func reproducible() (string, error) {
	points := 0
	for _, name := range config.ListPresets() {
		m, err := config.GetPreset(name).Build()
		if err != nil {
			return "", err
		}
		for _, phi := range phiGrid {
			a, err := m.Evaluate(phi, 150)
			if err != nil {
				return "", fmt.Errorf("%s: %w", name, err)
			}
			b, err := m.Evaluate(phi, 150)
			if err != nil {
				return "", fmt.Errorf("%s: %w", name, err)
			}
			for _, pair := range [][2]float64{
				{a.Tg, b.Tg}, {a.CureRate, b.CureRate}, {a.Modulus, b.Modulus},
				{a.CTE, b.CTE}, {a.SpecificHeat, b.SpecificHeat},
			} {
				if math.Float64bits(pair[0]) != math.Float64bits(pair[1]) {
					return "", fmt.Errorf("%s: phi=%g differs: %g vs %g", name, phi, pair[0], pair[1])
				}
			}
			points++
		}
	}
	return fmt.Sprintf("%d points across %d presets", points, len(config.ListPresets())), nil
}
