// Package sweep evaluates a material along one axis of the cure state while
// holding the other fixed.
package sweep

import (
	"fmt"
	"strings"

	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/material"
)

type Property int

const (
	Tg Property = iota
	CureRate
	Modulus
	CTE
	HeatCapacity
)

var propertyNames = []string{"tg", "cure_rate", "modulus", "cte", "heat_capacity"}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return "unknown"
}

// Unit is the display unit of the property.
func (p Property) Unit() string {
	switch p {
	case Tg:
		return "°C"
	case CureRate:
		return "1/s"
	case Modulus:
		return "Pa"
	case CTE:
		return "1/K"
	case HeatCapacity:
		return "J/(kg·K)"
	}
	return ""
}

func Properties() []Property {
	return []Property{Tg, CureRate, Modulus, CTE, HeatCapacity}
}

func ParseProperty(name string) (Property, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range propertyNames {
		if n == key {
			return Property(i), nil
		}
	}
	return 0, cure.ConfigError("property", name, propertyNames)
}

func (p Property) of(props material.Properties) float64 {
	switch p {
	case Tg:
		return props.Tg
	case CureRate:
		return props.CureRate
	case Modulus:
		return props.Modulus
	case CTE:
		return props.CTE
	case HeatCapacity:
		return props.SpecificHeat
	}
	return 0
}

type Axis int

const (
	Phi Axis = iota
	Temperature
)

func (a Axis) String() string {
	switch a {
	case Phi:
		return "phi"
	case Temperature:
		return "temp"
	}
	return "unknown"
}

func ParseAxis(name string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "phi", "cure":
		return Phi, nil
	case "temp", "temperature", "t":
		return Temperature, nil
	}
	return 0, cure.ConfigError("axis", name, []string{"phi", "temp"})
}

// Spec describes one sweep. Fixed is the value of the axis not swept.
type Spec struct {
	Axis  Axis
	Min   float64
	Max   float64
	Steps int
	Fixed float64
}

type Result struct {
	Material string
	Axis     Axis
	Fixed    float64
	X        []float64
	Series   map[Property][]float64
}

// Linspace returns n evenly spaced values from min to max inclusive.
func Linspace(min, max float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{min}
	}
	out := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	out[n-1] = max
	return out
}

// Run evaluates every property at each point of the sweep. The first point that
// fails aborts the sweep.
func Run(m *material.Material, spec Spec) (*Result, error) {
	if spec.Steps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps, got %d", cure.ErrConfiguration, spec.Steps)
	}
	if spec.Max <= spec.Min {
		return nil, fmt.Errorf("%w: sweep range [%g, %g] is empty", cure.ErrConfiguration, spec.Min, spec.Max)
	}

	xs := Linspace(spec.Min, spec.Max, spec.Steps)
	points := make([]material.Point, len(xs))
	for i, x := range xs {
		switch spec.Axis {
		case Phi:
			points[i] = material.Point{Phi: x, TempC: spec.Fixed}
		case Temperature:
			points[i] = material.Point{Phi: spec.Fixed, TempC: x}
		default:
			return nil, cure.ConfigError("axis", spec.Axis.String(), []string{"phi", "temp"})
		}
	}

	props, err := m.EvaluateBatch(points)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Material: m.Name,
		Axis:     spec.Axis,
		Fixed:    spec.Fixed,
		X:        xs,
		Series:   make(map[Property][]float64, len(propertyNames)),
	}
	for _, p := range Properties() {
		ys := make([]float64, len(props))
		for i, pr := range props {
			ys[i] = p.of(pr)
		}
		res.Series[p] = ys
	}
	return res, nil
}

// Range returns the min and max of a property over the sweep.
func (r *Result) Range(p Property) (lo, hi float64) {
	ys := r.Series[p]
	if len(ys) == 0 {
		return 0, 0
	}
	lo, hi = ys[0], ys[0]
	for _, y := range ys[1:] {
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi
}
