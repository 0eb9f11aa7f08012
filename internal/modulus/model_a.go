package modulus

import (
	"math"

	"github.com/san-kum/curesim/internal/cure"
)

// ModelA blends a lower plateau A2 and an upper plateau A1 with a sigmoid in
// the normalised temperature distance eta = 1 - T*/Tref (in Kelvin), where
// T* = min(T, Tref).
type ModelA struct {
	GelPoint float64
	TempRef  float64 // Celsius

	Eta0A, Eta0B   float64 // eta0 = Eta0A·phi + Eta0B
	DEta0A, DEta0B float64 // deta = DEta0A·phi + DEta0B
	A1A, A1B       float64 // A1 = A1A·exp(A1B·phi)
	A2A, A2B       float64 // A2 = A2A·phi + A2B
}

func (ModelA) Kind() Kind { return KindModelA }
func (ModelA) sealed()    {}

func (m ModelA) Modulus(phi, tempC float64) (float64, error) {
	const op = "modulus.ModelA"
	if err := checkPoint(op, phi, tempC); err != nil {
		return 0, err
	}
	if phi < m.GelPoint {
		return GelPlaceholder, nil
	}
	if err := cure.CheckKelvin(op, m.TempRef); err != nil {
		return 0, err
	}

	tStar := math.Min(tempC, m.TempRef)
	eta := 1.0 - cure.Kelvin(tStar)/cure.Kelvin(m.TempRef)
	eta0 := m.Eta0A*phi + m.Eta0B
	deta := m.DEta0A*phi + m.DEta0B
	a1 := m.A1A * math.Exp(m.A1B*phi)
	a2 := m.A2A*phi + m.A2B

	return cure.CheckFinite(op, a2+(a1-a2)/(1+math.Exp((eta-eta0)/deta)))
}
