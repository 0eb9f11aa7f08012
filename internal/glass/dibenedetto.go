package glass

import (
	"math"

	"github.com/san-kum/curesim/internal/cure"
)

// DiBenedetto is Tg0 + (Tg1-Tg0)·lam·phi / (1-(1-lam)·phi).
type DiBenedetto struct {
	Tg0    float64 // uncured Tg
	Tg1    float64 // fully cured Tg
	Lambda float64
}

func (DiBenedetto) Kind() Kind { return KindDiBenedetto }
func (DiBenedetto) sealed()    {}

func (d DiBenedetto) Tg(phi, _ float64) (float64, error) {
	const op = "glass.DiBenedetto"
	if err := cure.CheckFraction(op, phi); err != nil {
		return 0, err
	}
	w, err := conversion(op, phi, d.Lambda)
	if err != nil {
		return 0, err
	}
	return cure.CheckFinite(op, d.Tg0+(d.Tg1-d.Tg0)*w)
}

// VendittiGillham interpolates ln(Tg) with the DiBenedetto weight. Both end
// points must be positive.
type VendittiGillham struct {
	Tg0    float64
	Tg1    float64
	Lambda float64
}

func (VendittiGillham) Kind() Kind { return KindVendittiGillham }
func (VendittiGillham) sealed()    {}

func (v VendittiGillham) Tg(xi, _ float64) (float64, error) {
	const op = "glass.VendittiGillham"
	if err := cure.CheckFraction(op, xi); err != nil {
		return 0, err
	}
	if err := cure.CheckPositive(op, "Tg0", v.Tg0); err != nil {
		return 0, err
	}
	if err := cure.CheckPositive(op, "Tg1", v.Tg1); err != nil {
		return 0, err
	}
	w, err := conversion(op, xi, v.Lambda)
	if err != nil {
		return 0, err
	}
	lnTg0 := math.Log(v.Tg0)
	return cure.CheckFinite(op, math.Exp((math.Log(v.Tg1)-lnTg0)*w+lnTg0))
}
