// Package arrhenius evaluates Arrhenius rate constants, k = A·exp(-Ea/(R·T)).
package arrhenius

import (
	"math"

	"github.com/san-kum/curesim/internal/cure"
)

// GasConstant is the universal gas constant in kJ/(mol·K).
const GasConstant = 0.008314

// Rate returns A·exp(-Ea/(R·T_K)) for an activation energy in kJ/mol and a
// temperature in Celsius. It does not validate; T_K <= 0 gives a non-finite
// or meaningless result.
func Rate(a, ea, tempC float64) float64 {
	return a * math.Exp(-ea/(GasConstant*cure.Kelvin(tempC)))
}

// RateChecked is Rate with the temperature rejected at or below absolute zero.
func RateChecked(a, ea, tempC float64) (float64, error) {
	if err := cure.CheckKelvin("arrhenius.Rate", tempC); err != nil {
		return 0, err
	}
	return cure.CheckFinite("arrhenius.Rate", Rate(a, ea, tempC))
}
