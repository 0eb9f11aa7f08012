package cure

import "math"

// KelvinOffset converts degrees Celsius to Kelvin.
const KelvinOffset = 273.15

// Kelvin converts a Celsius temperature to Kelvin.
func Kelvin(tempC float64) float64 {
	return tempC + KelvinOffset
}

// CheckFraction rejects cure fractions outside [0, 1] and NaN.
func CheckFraction(op string, phi float64) error {
	if math.IsNaN(phi) || phi < 0 || phi > 1 {
		return &DomainError{Op: op, Param: "phi", Value: phi, Wrapped: ErrInputDomain}
	}
	return nil
}

// CheckKelvin rejects Celsius temperatures at or below absolute zero.
func CheckKelvin(op string, tempC float64) error {
	if math.IsNaN(tempC) || math.IsInf(tempC, 0) || Kelvin(tempC) <= 0 {
		return &DomainError{Op: op, Param: "T", Value: tempC, Wrapped: ErrInputDomain}
	}
	return nil
}

// CheckPositive rejects values that are not strictly positive.
func CheckPositive(op, param string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return &DomainError{Op: op, Param: param, Value: v, Wrapped: ErrInputDomain}
	}
	return nil
}

// CheckFinite classifies a computed result: NaN is a domain violation,
// an infinity is an overflow.
func CheckFinite(op string, v float64) (float64, error) {
	switch {
	case math.IsNaN(v):
		return 0, &DomainError{Op: op, Param: "result", Value: v, Wrapped: ErrInputDomain}
	case math.IsInf(v, 0):
		return 0, &DomainError{Op: op, Param: "result", Value: v, Wrapped: ErrNumericOverflow}
	}
	return v, nil
}
