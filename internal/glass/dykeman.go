package glass

import (
	"math"

	"github.com/san-kum/curesim/internal/cure"
)

const (
	// DefaultRamp is the heating ramp the Dykeman constants were fitted at.
	DefaultRamp = 2.8

	sigmoidHeight = 35.0
	sigmoidSlope  = 25.0
	phiCritMin    = 0.675
	phiCritMax    = 1.0
	isothermalCut = 0.0001
)

// Dykeman adds a sigmoid step centred on a critical cure fraction to the
// DiBenedetto baseline. The critical fraction depends on the processing
// temperature and the heating ramp.
type Dykeman struct {
	Tg0    float64
	Tg1    float64
	Lambda float64
	Ramp   float64 // heating ramp; below 0.006 the isothermal fit is used
}

// NewDykeman returns a Dykeman model at DefaultRamp.
func NewDykeman(tg0, tg1, lambda float64) Dykeman {
	return Dykeman{Tg0: tg0, Tg1: tg1, Lambda: lambda, Ramp: DefaultRamp}
}

func (Dykeman) Kind() Kind { return KindDykeman }
func (Dykeman) sealed()    {}

func (d Dykeman) Tg(phi, tempC float64) (float64, error) {
	const op = "glass.Dykeman"
	if err := cure.CheckFraction(op, phi); err != nil {
		return 0, err
	}
	if err := cure.CheckKelvin(op, tempC); err != nil {
		return 0, err
	}
	if math.IsNaN(d.Ramp) || d.Ramp < 0 {
		return 0, &cure.DomainError{Op: op, Param: "ramp", Value: d.Ramp, Wrapped: cure.ErrInputDomain}
	}
	w, err := conversion(op, phi, d.Lambda)
	if err != nil {
		return 0, err
	}

	crit := CriticalFraction(tempC, d.Ramp)
	tgK := w*(d.Tg1-d.Tg0) + d.Tg0 + cure.KelvinOffset + sigmoidHeight/(1+math.Exp(-sigmoidSlope*(phi-crit)))
	return cure.CheckFinite(op, tgK-cure.KelvinOffset)
}

// CriticalFraction is the cure fraction at which the Tg step is centred,
// clamped to [0.675, 1].
func CriticalFraction(tempC, ramp float64) float64 {
	tk := cure.Kelvin(tempC)
	var crit float64
	if ramp/60 < isothermalCut {
		crit = 0.0025*tk - 0.3329
	} else {
		crit = 0.0025*tk - 0.00017*60/ramp - 0.3329
	}
	return math.Min(math.Max(crit, phiCritMin), phiCritMax)
}
