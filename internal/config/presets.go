package config

import "sort"

const DefaultPreset = "reference"

var referenceModulus = ModulusConfig{
	Model: "model_a", GelPoint: 0.4, TempRef: 180,
	Eta0A: 0.2, Eta0B: 0.1, DEta0A: 0.05, DEta0B: 0.02,
	A1A: 1000, A1B: 0.1, A2A: 10, A2B: 1,
}

var Presets = map[string]*Config{
	"reference": {
		Name:         "reference",
		Glass:        GlassConfig{Model: "dibenedetto", Tg0: 50, Tg1: 180, Lambda: 0.8},
		Kinetics:     KineticsConfig{Model: "prout_thompkins", A: 1e5, Ea: 60, M: 1, N: 1},
		Modulus:      referenceModulus,
		Expansion:    ExpansionConfig{Model: "model_a", GelPoint: 0.45, Alpha: 80, Beta: 70},
		HeatCapacity: HeatCapacityConfig{Model: "linear", Alpha: 1.1e-3, Beta: 0.15},
		Sweep:        DefaultSweep(),
	},
	"autocatalytic": {
		Name:         "autocatalytic",
		Glass:        GlassConfig{Model: "venditti_gillham", Tg0: 50, Tg1: 180, Lambda: 0.8},
		Kinetics:     KineticsConfig{Model: "kamal_sourour", A1: 1e5, A2: 1e4, Ea1: 60, Ea2: 40, M: 1, N: 2},
		Modulus:      referenceModulus,
		Expansion:    ExpansionConfig{Model: "linear", Alpha: 90, Beta: 10},
		HeatCapacity: HeatCapacityConfig{Model: "linear", Alpha: 1.2e-3, Beta: 0.2},
		Sweep:        DefaultSweep(),
	},
	"dykeman": {
		Name:         "dykeman",
		Glass:        GlassConfig{Model: "dykeman", Tg0: 50, Tg1: 180, Lambda: 0.8},
		Kinetics:     KineticsConfig{Model: "dykeman"},
		Modulus:      referenceModulus,
		Expansion:    ExpansionConfig{Model: "model_a", GelPoint: 0.45, Alpha: 80, Beta: 70},
		HeatCapacity: HeatCapacityConfig{Model: "linear", Alpha: 1.2e-3, Beta: 0.2},
		Sweep:        SweepConfig{PhiMin: 0.01, PhiMax: 0.99, TempC: 160, TempMin: 20, TempMax: 250, Steps: 200},
	},
	"lookup": {
		Name:     "lookup",
		Glass:    GlassConfig{Model: "dibenedetto", Tg0: 50, Tg1: 180, Lambda: 0.8},
		Kinetics: KineticsConfig{Model: "prout_thompkins", A: 1e5, Ea: 60, M: 1, N: 1},
		Modulus: ModulusConfig{
			Model: "model_b", GelPoint: 0.4, TempMax: 200, TempRefHigh: 250,
			Eta1A: 1, Eta1B: 0.5, Eta0A: 0.2, Eta0B: 0.1,
			DEta: 0.05, Phi0: 0.6, DPhi: 0.1, A1: -0.03, A2: 0.2,
			Table: TableConfig{
				Phi: []float64{0.4, 0.6, 0.8, 1.0},
				E:   []float64{0.5e9, 1.5e9, 2.5e9, 3.0e9},
			},
		},
		Expansion:    ExpansionConfig{Model: "linear", Alpha: 90, Beta: 10},
		HeatCapacity: HeatCapacityConfig{Model: "linear", Alpha: 1.2e-3, Beta: 0.2},
		Sweep:        SweepConfig{PhiMin: 0, PhiMax: 1, TempC: 120, TempMin: 20, TempMax: 250, Steps: 300},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Modulus.Table = TableConfig{
		Phi: append([]float64(nil), p.Modulus.Table.Phi...),
		E:   append([]float64(nil), p.Modulus.Table.E...),
	}
	if p.Glass.Ramp != nil {
		r := *p.Glass.Ramp
		cfg.Glass.Ramp = &r
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
