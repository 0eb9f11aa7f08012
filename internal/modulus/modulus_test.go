package modulus

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/san-kum/curesim/internal/cure"
)

func referenceA() ModelA {
	return ModelA{
		GelPoint: 0.4, TempRef: 180,
		Eta0A: 0.2, Eta0B: 0.1,
		DEta0A: 0.05, DEta0B: 0.02,
		A1A: 1000, A1B: 0.1,
		A2A: 10, A2B: 1,
	}
}

func referenceB(t *testing.T) ModelB {
	t.Helper()
	table, err := NewTable([]float64{0.4, 0.6, 0.8, 1.0}, []float64{0.5e9, 1.5e9, 2.5e9, 3.0e9})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	return ModelB{
		GelPoint: 0.4, TempMax: 200, TempRefHigh: 250,
		Eta1A: 1, Eta1B: 0.5,
		Eta0A: 0.2, Eta0B: 0.1,
		DEta: 0.05, Phi0: 0.6, DPhi: 0.1,
		A1: -0.03, A2: 0.2,
		Table: table,
	}
}

func TestModelAValue(t *testing.T) {
	e, err := referenceA().Modulus(0.5, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e <= 0 {
		t.Fatalf("expected positive modulus, got %g", e)
	}
	if math.Abs(e-661.8544984665759) > 1e-9 {
		t.Errorf("modulus = %.12g, want 661.854498467", e)
	}
}

func TestModelABelowGel(t *testing.T) {
	m := referenceA()
	for _, phi := range []float64{0, 0.1, 0.399999} {
		for _, tc := range []float64{-50, 25, 120, 300} {
			e, err := m.Modulus(phi, tc)
			if err != nil {
				t.Fatalf("phi=%g T=%g: %v", phi, tc, err)
			}
			if e != GelPlaceholder {
				t.Errorf("phi=%g T=%g: expected placeholder, got %g", phi, tc, e)
			}
		}
	}
}

func TestModelAClampsTemperature(t *testing.T) {
	m := referenceA()
	atRef, _ := m.Modulus(0.7, m.TempRef)
	above, _ := m.Modulus(0.7, m.TempRef+100)
	if atRef != above {
		t.Errorf("temperature above Tref should be clamped: %g vs %g", atRef, above)
	}
}

func TestModelBValue(t *testing.T) {
	e, err := referenceB(t).Modulus(0.7, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(e-657163607.3268663) > 1e-3 {
		t.Errorf("modulus = %.10g, want 657163607.3", e)
	}
}

func TestModelBBelowGel(t *testing.T) {
	m := referenceB(t)
	m.Table = nil
	e, err := m.Modulus(0.2, 120)
	if err != nil || e != GelPlaceholder {
		t.Errorf("expected placeholder before the table is consulted, got %g, %v", e, err)
	}
}

func TestModelBMissingTable(t *testing.T) {
	m := referenceB(t)
	m.Table = nil
	if _, err := m.Modulus(0.7, 120); !errors.Is(err, cure.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestModelBAmplitudeIndependent(t *testing.T) {
	m := referenceB(t)
	want := m.A1*math.Log(0.001/2.0e8) + m.A2
	if got := m.AmplitudeFactor(); got != want {
		t.Errorf("AmplitudeFactor = %g, want %g", got, want)
	}
}

func TestTableInterpolation(t *testing.T) {
	table, err := NewTable([]float64{0.4, 0.6, 0.8}, []float64{10, 20, 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		phi, want float64
	}{
		{0.0, 10},
		{0.4, 10},
		{0.5, 15},
		{0.6, 20},
		{0.7, 30},
		{0.8, 40},
		{1.0, 40},
	}
	for _, tt := range tests {
		if got := table.At(tt.phi); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("At(%g) = %g, want %g", tt.phi, got, tt.want)
		}
	}
}

func TestTableRepeatedSamples(t *testing.T) {
	table, err := NewTable([]float64{0.5, 0.5, 1.0}, []float64{1, 3, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.At(0.75); math.Abs(got-4) > 1e-12 {
		t.Errorf("At(0.75) = %g, want 4", got)
	}
}

func TestTableValidation(t *testing.T) {
	tests := []struct {
		name   string
		phi, e []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{0.1, 0.2}, []float64{1}},
		{"decreasing", []float64{0.5, 0.4}, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.phi, tt.e); !errors.Is(err, cure.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestTableIsCopied(t *testing.T) {
	phi := []float64{0, 1}
	e := []float64{0, 10}
	table, _ := NewTable(phi, e)
	e[1] = 1000
	if got := table.At(0.5); got != 5 {
		t.Errorf("table should not alias caller slices, got %g", got)
	}
}

func TestTableConcurrentReads(t *testing.T) {
	m := referenceB(t)
	want, _ := m.Modulus(0.75, 130)

	var wg sync.WaitGroup
	errs := make(chan float64, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := m.Modulus(0.75, 130)
			if got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent evaluation differs: %g vs %g", got, want)
	}
}

func TestInputDomain(t *testing.T) {
	models := []Model{referenceA(), referenceB(t)}
	for _, m := range models {
		if _, err := m.Modulus(1.2, 100); !errors.Is(err, cure.ErrInputDomain) {
			t.Errorf("%s: expected ErrInputDomain, got %v", m.Kind(), err)
		}
		if _, err := m.Modulus(0.5, -500); !errors.Is(err, cure.ErrInputDomain) {
			t.Errorf("%s: expected ErrInputDomain, got %v", m.Kind(), err)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("model_b"); err != nil || k != KindModelB {
		t.Errorf("ParseKind(model_b) = %v, %v", k, err)
	}
	if _, err := ParseKind("rule_of_mixtures"); !errors.Is(err, cure.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestTableString(t *testing.T) {
	table, err := NewTable([]float64{0.4, 1}, []float64{5e8, 3e9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := table.String(), "[(0.4, 5e+08) (1, 3e+09)]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := fmt.Sprintf("%+v", ModelB{Table: table}); !strings.Contains(got, "Table:[(0.4, 5e+08) (1, 3e+09)]") {
		t.Errorf("expected table samples in %q", got)
	}

	phi, e := table.Samples()
	phi[0], e[0] = 0, 0
	if table.At(0) != 5e8 {
		t.Error("Samples must return copies")
	}
}
