package kinetics

import (
	"math"

	"github.com/san-kum/curesim/internal/arrhenius"
	"github.com/san-kum/curesim/internal/cure"
)

// ProutThompkins is the autocatalytic law k(T)·phi^m·(1-phi)^n.
type ProutThompkins struct {
	A  float64 // pre-exponential factor
	Ea float64 // activation energy, kJ/mol
	M  float64
	N  float64
}

func (ProutThompkins) Kind() Kind { return KindProutThompkins }
func (ProutThompkins) sealed()    {}

// CureRate ignores tg.
func (p ProutThompkins) CureRate(phi, tempC, _ float64) (float64, error) {
	const op = "kinetics.ProutThompkins"
	if err := checkPoint(op, phi, tempC); err != nil {
		return 0, err
	}
	k := arrhenius.Rate(p.A, p.Ea, tempC)
	return cure.CheckFinite(op, k*math.Pow(phi, p.M)*math.Pow(1-phi, p.N))
}

// KamalSourour superposes an uncatalysed and an autocatalysed pathway:
// (k1 + k2·phi^m)·(1-phi)^n.
type KamalSourour struct {
	A1  float64
	A2  float64
	Ea1 float64
	Ea2 float64
	M   float64
	N   float64
}

func (KamalSourour) Kind() Kind { return KindKamalSourour }
func (KamalSourour) sealed()    {}

// CureRate ignores tg.
func (k KamalSourour) CureRate(phi, tempC, _ float64) (float64, error) {
	const op = "kinetics.KamalSourour"
	if err := checkPoint(op, phi, tempC); err != nil {
		return 0, err
	}
	k1 := arrhenius.Rate(k.A1, k.Ea1, tempC)
	k2 := arrhenius.Rate(k.A2, k.Ea2, tempC)
	return cure.CheckFinite(op, (k1+k2*math.Pow(phi, k.M))*math.Pow(1-phi, k.N))
}
