package kinetics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/curesim/internal/arrhenius"
	"github.com/san-kum/curesim/internal/cure"
)

func TestProutThompkinsPositive(t *testing.T) {
	m := ProutThompkins{A: 1e5, Ea: 50, M: 1, N: 1}
	rate, err := m.CureRate(0.5, 150, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate <= 0 {
		t.Errorf("expected positive rate, got %g", rate)
	}

	expected := arrhenius.Rate(1e5, 50, 150) * 0.25
	if math.Abs(rate-expected) > 1e-12*expected {
		t.Errorf("rate = %g, want %g", rate, expected)
	}
}

func TestProutThompkinsEndpoints(t *testing.T) {
	m := ProutThompkins{A: 1e5, Ea: 60, M: 1, N: 1}

	onset, err := m.CureRate(0, 150, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if onset != 0 {
		t.Errorf("expected zero rate at phi=0 with m>0, got %g", onset)
	}

	full, err := m.CureRate(1, 150, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if full != 0 {
		t.Errorf("expected zero rate at full cure, got %g", full)
	}
}

func TestKamalSourourPositive(t *testing.T) {
	m := KamalSourour{A1: 1e5, A2: 1e3, Ea1: 50, Ea2: 40, M: 1, N: 2}
	rate, err := m.CureRate(0.4, 180, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate <= 0 {
		t.Errorf("expected positive rate, got %g", rate)
	}
}

func TestKamalSourourUncatalysedOnset(t *testing.T) {
	m := KamalSourour{A1: 1e5, A2: 1e4, Ea1: 60, Ea2: 40, M: 1, N: 2}
	rate, err := m.CureRate(0, 150, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := arrhenius.Rate(1e5, 60, 150); rate != want {
		t.Errorf("rate at phi=0 should be the uncatalysed k1, got %g want %g", rate, want)
	}
}

func TestDykemanNonNegative(t *testing.T) {
	for _, phi := range []float64{0.01, 0.1, 0.9} {
		rate, err := Dykeman{}.CureRate(phi, 160, 140)
		if err != nil {
			t.Fatalf("phi=%g: unexpected error: %v", phi, err)
		}
		if math.IsNaN(rate) || rate < 0 {
			t.Errorf("phi=%g: expected finite non-negative rate, got %g", phi, rate)
		}
	}
}

func TestDykemanLowTemperatureFloor(t *testing.T) {
	ac1, ec1 := mechanismOne(1e-9, 100)
	if ac1 != ac1Floor || ec1 != ec1LowTemp {
		t.Errorf("expected floored pre-exponential, got %g/%g", ac1, ec1)
	}

	ac1, _ = mechanismOne(0.03, 100)
	want := ac1LogSlope*math.Log(0.03) + ac1LogVertex
	if ac1 != want {
		t.Errorf("expected logarithmic pre-exponential %g, got %g", want, ac1)
	}

	rate, err := Dykeman{}.CureRate(0, 100, 50)
	if err != nil {
		t.Fatalf("phi=0 in the low temperature branch: %v", err)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		t.Errorf("expected finite positive rate at phi=0, got %g", rate)
	}
}

func TestDykemanRegimes(t *testing.T) {
	tests := []struct {
		phi, tempC float64
		ac, ec     float64
	}{
		{0.5, 100, ac1LowTemp, ec1LowTemp},
		{0.01, 150, ac1HighTemp, ec1HighTemp},
		{0.5, 124, ac1HighTemp, ec1HighTemp},
	}
	for _, tt := range tests {
		ac, ec := mechanismOne(tt.phi, tt.tempC)
		if ac != tt.ac || ec != tt.ec {
			t.Errorf("mechanismOne(%g, %g) = %g/%g, want %g/%g", tt.phi, tt.tempC, ac, ec, tt.ac, tt.ec)
		}
	}
}

func TestDykemanGlassyFloor(t *testing.T) {
	kd12, kd3 := diffusionRates(25, 400)
	if kd12 != diffusionFloor || kd3 != diffusionFloor {
		t.Fatalf("expected diffusion floor, got %g/%g", kd12, kd3)
	}

	rate, err := Dykeman{}.CureRate(0.5, 25, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate < 0 || rate > 1e-90 {
		t.Errorf("expected a vanishing rate deep in the glass, got %g", rate)
	}
}

func TestDykemanSeriesCombinationBound(t *testing.T) {
	// Each effective rate never exceeds the chemical rate it is built from,
	// so the total is bounded by the chemically controlled sum.
	phi, tempC, tg := 0.3, 160.0, 140.0
	rate, err := Dykeman{}.CureRate(phi, tempC, tg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ac1, ec1 := mechanismOne(phi, tempC)
	chem := arrhenius.Rate(ac1, ec1, tempC)*math.Pow(1-phi, 1) +
		arrhenius.Rate(ac2, ec2, tempC)*phi*math.Pow(1-phi, 2.5) +
		arrhenius.Rate(ac3, ec3, tempC)*math.Pow(phi, 2.91)*math.Pow(1-phi, 0.83)
	if rate > chem*(1+1e-12) {
		t.Errorf("effective rate %g exceeds chemical limit %g", rate, chem)
	}
}

func TestDykemanFreeVolumeSingularity(t *testing.T) {
	// free volume crosses zero just above the glassy cut-off
	if _, err := (Dykeman{}).CureRate(0.5, 25, 337.6); err == nil {
		t.Error("expected an error where the free volume vanishes")
	}
}

func TestInputDomain(t *testing.T) {
	models := []Model{
		ProutThompkins{A: 1e5, Ea: 60, M: 1, N: 1},
		KamalSourour{A1: 1e5, A2: 1e4, Ea1: 60, Ea2: 40, M: 1, N: 2},
		Dykeman{},
	}
	for _, m := range models {
		for _, phi := range []float64{-0.1, 1.1, math.NaN()} {
			if _, err := m.CureRate(phi, 150, 140); !errors.Is(err, cure.ErrInputDomain) {
				t.Errorf("%s: phi=%g expected ErrInputDomain, got %v", m.Kind(), phi, err)
			}
		}
		if _, err := m.CureRate(0.5, -300, 140); !errors.Is(err, cure.ErrInputDomain) {
			t.Errorf("%s: expected ErrInputDomain below absolute zero, got %v", m.Kind(), err)
		}
	}

	if _, err := (Dykeman{}).CureRate(0.5, 150, math.NaN()); !errors.Is(err, cure.ErrInputDomain) {
		t.Errorf("expected ErrInputDomain for NaN Tg, got %v", err)
	}
}

func TestPurity(t *testing.T) {
	models := []Model{
		ProutThompkins{A: 1e5, Ea: 60, M: 1, N: 1},
		KamalSourour{A1: 1e5, A2: 1e4, Ea1: 60, Ea2: 40, M: 1, N: 2},
		Dykeman{},
	}
	for _, m := range models {
		a, errA := m.CureRate(0.37, 155, 120)
		b, errB := m.CureRate(0.37, 155, 120)
		if errA != nil || errB != nil {
			t.Fatalf("%s: unexpected errors %v / %v", m.Kind(), errA, errB)
		}
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Errorf("%s: repeated calls differ: %v vs %v", m.Kind(), a, b)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}

	if k, err := ParseKind(" Dykeman "); err != nil || k != KindDykeman {
		t.Errorf("ParseKind should ignore case and spaces, got %v, %v", k, err)
	}

	if _, err := ParseKind("arrhenius"); !errors.Is(err, cure.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}
