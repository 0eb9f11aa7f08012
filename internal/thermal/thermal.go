// Package thermal provides thermal expansion and specific heat models.
package thermal

import (
	"strings"

	"github.com/san-kum/curesim/internal/cure"
)

const (
	// cteScale converts the fitted coefficients to 1/K.
	cteScale = 1e-5

	// heatScale is the fitted specific heat scale. It is large for J/(kg·K)
	// and is kept as fitted pending review of the unit convention.
	heatScale = 1e9
)

// Expansion returns the coefficient of thermal expansion at a cure fraction.
type Expansion interface {
	CTE(phi float64) (float64, error)
	Kind() ExpansionKind
	sealedExpansion()
}

// HeatCapacity returns the specific heat at a temperature in Celsius.
type HeatCapacity interface {
	SpecificHeat(tempC float64) (float64, error)
	Kind() HeatCapacityKind
	sealedHeatCapacity()
}

type ExpansionKind int

const (
	KindExpansionA ExpansionKind = iota
	KindExpansionLinear
)

func (k ExpansionKind) String() string {
	switch k {
	case KindExpansionA:
		return "model_a"
	case KindExpansionLinear:
		return "linear"
	}
	return "unknown"
}

func ParseExpansionKind(name string) (ExpansionKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "model_a":
		return KindExpansionA, nil
	case "linear":
		return KindExpansionLinear, nil
	}
	return 0, cure.ConfigError("expansion model", name, []string{"model_a", "linear"})
}

type HeatCapacityKind int

const (
	KindHeatCapacityLinear HeatCapacityKind = iota
)

func (k HeatCapacityKind) String() string {
	if k == KindHeatCapacityLinear {
		return "linear"
	}
	return "unknown"
}

func ParseHeatCapacityKind(name string) (HeatCapacityKind, error) {
	if strings.ToLower(strings.TrimSpace(name)) == "linear" {
		return KindHeatCapacityLinear, nil
	}
	return 0, cure.ConfigError("heat capacity model", name, []string{"linear"})
}

// ExpansionA is (alpha - beta·(phi - gel))·1e-5.
type ExpansionA struct {
	GelPoint float64
	Alpha    float64
	Beta     float64
}

func (ExpansionA) Kind() ExpansionKind { return KindExpansionA }
func (ExpansionA) sealedExpansion()    {}

func (e ExpansionA) CTE(phi float64) (float64, error) {
	const op = "thermal.ExpansionA"
	if err := cure.CheckFraction(op, phi); err != nil {
		return 0, err
	}
	return cure.CheckFinite(op, (e.Alpha-e.Beta*(phi-e.GelPoint))*cteScale)
}

// ExpansionLinear is (alpha·phi + beta)·1e-5.
type ExpansionLinear struct {
	Alpha float64
	Beta  float64
}

func (ExpansionLinear) Kind() ExpansionKind { return KindExpansionLinear }
func (ExpansionLinear) sealedExpansion()    {}

func (e ExpansionLinear) CTE(phi float64) (float64, error) {
	const op = "thermal.ExpansionLinear"
	if err := cure.CheckFraction(op, phi); err != nil {
		return 0, err
	}
	return cure.CheckFinite(op, (e.Alpha*phi+e.Beta)*cteScale)
}

// HeatCapacityLinear is (alpha·T + beta)·1e9.
type HeatCapacityLinear struct {
	Alpha float64
	Beta  float64
}

func (HeatCapacityLinear) Kind() HeatCapacityKind { return KindHeatCapacityLinear }
func (HeatCapacityLinear) sealedHeatCapacity()    {}

func (h HeatCapacityLinear) SpecificHeat(tempC float64) (float64, error) {
	const op = "thermal.HeatCapacityLinear"
	if err := cure.CheckKelvin(op, tempC); err != nil {
		return 0, err
	}
	return cure.CheckFinite(op, (h.Alpha*tempC+h.Beta)*heatScale)
}
