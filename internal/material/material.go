// Package material bundles one model per property family and evaluates them
// together at a cure state.
//
// Evaluation order is fixed: Tg(phi, T), then phi_dot(phi, T, Tg), then the
// mechanical and thermal properties. The caller owns time integration of phi.
package material

import (
	"fmt"

	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/glass"
	"github.com/san-kum/curesim/internal/kinetics"
	"github.com/san-kum/curesim/internal/modulus"
	"github.com/san-kum/curesim/internal/thermal"
)

type Material struct {
	Name         string
	Glass        glass.Model
	Kinetics     kinetics.Model
	Modulus      modulus.Model
	Expansion    thermal.Expansion
	HeatCapacity thermal.HeatCapacity
}

// Point is a cure state at which properties are evaluated.
type Point struct {
	Phi   float64 `json:"phi"`
	TempC float64 `json:"temp_c"`
}

// Properties holds every property of a material at one point.
type Properties struct {
	Point
	Tg           float64 `json:"tg"`
	CureRate     float64 `json:"cure_rate"`
	Modulus      float64 `json:"modulus"`
	CTE          float64 `json:"cte"`
	SpecificHeat float64 `json:"specific_heat"`
}

// Validate reports missing property families.
func (m *Material) Validate() error {
	missing := make([]string, 0)
	if m.Glass == nil {
		missing = append(missing, "glass")
	}
	if m.Kinetics == nil {
		missing = append(missing, "kinetics")
	}
	if m.Modulus == nil {
		missing = append(missing, "modulus")
	}
	if m.Expansion == nil {
		missing = append(missing, "expansion")
	}
	if m.HeatCapacity == nil {
		missing = append(missing, "heat_capacity")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: material %q missing %v", cure.ErrConfiguration, m.Name, missing)
	}
	return nil
}

// Evaluate computes every property at (phi, tempC).
func (m *Material) Evaluate(phi, tempC float64) (Properties, error) {
	if err := m.Validate(); err != nil {
		return Properties{}, err
	}

	p := Properties{Point: Point{Phi: phi, TempC: tempC}}
	var err error

	if p.Tg, err = m.Glass.Tg(phi, tempC); err != nil {
		return Properties{}, err
	}
	if p.CureRate, err = m.Kinetics.CureRate(phi, tempC, p.Tg); err != nil {
		return Properties{}, err
	}
	if p.Modulus, err = m.Modulus.Modulus(phi, tempC); err != nil {
		return Properties{}, err
	}
	if p.CTE, err = m.Expansion.CTE(phi); err != nil {
		return Properties{}, err
	}
	if p.SpecificHeat, err = m.HeatCapacity.SpecificHeat(tempC); err != nil {
		return Properties{}, err
	}
	return p, nil
}

// Describe lists the model chosen for each family.
func (m *Material) Describe() map[string]string {
	d := make(map[string]string, 5)
	if m.Glass != nil {
		d["glass"] = m.Glass.Kind().String()
	}
	if m.Kinetics != nil {
		d["kinetics"] = m.Kinetics.Kind().String()
	}
	if m.Modulus != nil {
		d["modulus"] = m.Modulus.Kind().String()
	}
	if m.Expansion != nil {
		d["expansion"] = m.Expansion.Kind().String()
	}
	if m.HeatCapacity != nil {
		d["heat_capacity"] = m.HeatCapacity.Kind().String()
	}
	return d
}
