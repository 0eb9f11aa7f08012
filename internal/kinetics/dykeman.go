package kinetics

import (
	"math"

	"github.com/san-kum/curesim/internal/arrhenius"
	"github.com/san-kum/curesim/internal/cure"
)

// Dykeman constants. Mechanism 1 switches chemistry below regimeTempC.
const (
	regimeTempC    = 124.0
	lowCureLimit   = 0.035
	ac1LogSlope    = 34378.0
	ac1LogVertex   = 229563.0
	ac1Floor       = 50000.0
	ac1LowTemp     = 113881.0
	ec1LowTemp     = 73.300
	ac1HighTemp    = 14240.0
	ec1HighTemp    = 66.435
	ac2, ec2       = 473684.0, 73.063
	ac3, ec3       = 1.5e9, 115.624
	ad12, ed12     = 4e12, 60.0
	b12            = 0.5268
	ad3, b3        = 1.5e9, 0.0147
	freeVolumeA    = 8e-5
	freeVolumeG    = 0.025
	glassyLimit    = -323.15
	diffusionFloor = 1e-99
)

// Reaction orders (m, n) per mechanism.
var dykemanOrders = [3][2]float64{
	{0, 1},
	{1, 2.5},
	{2.91, 0.83},
}

// Dykeman combines three concurrent mechanisms, each the series combination
// of a chemically controlled and a diffusion controlled rate. It has no
// tunable parameters and needs the current Tg.
type Dykeman struct{}

func (Dykeman) Kind() Kind { return KindDykeman }
func (Dykeman) sealed()    {}

func (Dykeman) CureRate(phi, tempC, tg float64) (float64, error) {
	const op = "kinetics.Dykeman"
	if err := checkPoint(op, phi, tempC); err != nil {
		return 0, err
	}
	if math.IsNaN(tg) || math.IsInf(tg, 0) {
		return 0, &cure.DomainError{Op: op, Param: "Tg", Value: tg, Wrapped: cure.ErrInputDomain}
	}

	ac1, ec1 := mechanismOne(phi, tempC)
	kc := [3]float64{
		arrhenius.Rate(ac1, ec1, tempC),
		arrhenius.Rate(ac2, ec2, tempC),
		arrhenius.Rate(ac3, ec3, tempC),
	}

	kd12, kd3 := diffusionRates(tempC, tg)
	kd := [3]float64{kd12, kd12, kd3}

	sum := 0.0
	for i := range kc {
		ke := (kc[i] * kd[i]) / (kc[i] + kd[i])
		sum += ke * math.Pow(phi, dykemanOrders[i][0]) * math.Pow(1-phi, dykemanOrders[i][1])
	}
	return cure.CheckFinite(op, sum)
}

// mechanismOne returns the pre-exponential and activation energy of the first
// mechanism. At phi = 0 the logarithm is -Inf and the floor applies.
func mechanismOne(phi, tempC float64) (float64, float64) {
	switch {
	case tempC < regimeTempC && phi < lowCureLimit:
		return math.Max(ac1LogSlope*math.Log(phi)+ac1LogVertex, ac1Floor), ec1LowTemp
	case tempC < regimeTempC:
		return ac1LowTemp, ec1LowTemp
	default:
		return ac1HighTemp, ec1HighTemp
	}
}

// diffusionRates returns the free-volume diffusion rates. Deep in the glass
// both collapse to a floor instead of overflowing.
func diffusionRates(tempC, tg float64) (kd12, kd3 float64) {
	if tempC-tg < glassyLimit {
		return diffusionFloor, diffusionFloor
	}
	fv := FreeVolume(tempC, tg)
	kd12 = arrhenius.Rate(ad12, ed12, tempC) + (-b12 / fv)
	kd3 = ad3 * math.Exp(-b3/fv)
	return kd12, kd3
}

// FreeVolume is the fractional free volume af·(T - Tg) + fg.
func FreeVolume(tempC, tg float64) float64 {
	return freeVolumeA*(tempC-tg) + freeVolumeG
}
