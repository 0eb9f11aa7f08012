package modulus

import (
	"math"

	"github.com/san-kum/curesim/internal/cure"
)

// ModelB scales a tabulated base modulus by temperature, conversion and
// amplitude factors.
//
// The amplitude factor is A1·ln(0.001/2e8) + A2, built from fixed literals
// and independent of phi and T. It is kept as fitted and awaits review.
type ModelB struct {
	GelPoint    float64
	TempMax     float64 // effective temperature cap, Celsius
	TempRefHigh float64 // normalising temperature, Celsius

	Eta1A, Eta1B float64 // eta1 = Eta1A·eta^Eta1B
	Eta0A, Eta0B float64 // eta0 = Eta0A·phi + Eta0B
	DEta         float64
	Phi0         float64
	DPhi         float64
	A1, A2       float64

	Table *Table
}

func (ModelB) Kind() Kind { return KindModelB }
func (ModelB) sealed()    {}

func (m ModelB) Modulus(phi, tempC float64) (float64, error) {
	const op = "modulus.ModelB"
	if err := checkPoint(op, phi, tempC); err != nil {
		return 0, err
	}
	if phi < m.GelPoint {
		return GelPlaceholder, nil
	}
	if m.Table == nil {
		return 0, &cure.DomainError{Op: op, Param: "table", Wrapped: cure.ErrConfiguration}
	}
	if err := cure.CheckKelvin(op, m.TempRefHigh); err != nil {
		return 0, err
	}

	tEff := math.Min(tempC, m.TempMax)
	eta := 1 - cure.Kelvin(tEff)/cure.Kelvin(m.TempRefHigh)
	eta1 := m.Eta1A * math.Pow(eta, m.Eta1B)
	eta0 := m.Eta0A*phi + m.Eta0B

	fEta := (1 - 1/(1+math.Exp(1+(eta-eta0)/m.DEta))) * eta1
	fPhi := 1 - 1/(1+math.Exp(1+(phi-m.Phi0)/m.DPhi))
	fA := m.AmplitudeFactor()

	return cure.CheckFinite(op, m.Table.At(phi)*fA*fPhi*fEta)
}

// AmplitudeFactor returns A1·ln(0.001/2e8) + A2.
func (m ModelB) AmplitudeFactor() float64 {
	return m.A1*math.Log(0.001/2.0e8) + m.A2
}
