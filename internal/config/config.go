package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/glass"
	"github.com/san-kum/curesim/internal/kinetics"
	"github.com/san-kum/curesim/internal/material"
	"github.com/san-kum/curesim/internal/modulus"
	"github.com/san-kum/curesim/internal/thermal"
)

const (
	DefaultPhiMin  = 0.01
	DefaultPhiMax  = 0.99
	DefaultTempC   = 150.0
	DefaultTempMin = 20.0
	DefaultTempMax = 500.0
	DefaultSteps   = 200
)

type Config struct {
	Name         string             `yaml:"name"`
	Glass        GlassConfig        `yaml:"glass"`
	Kinetics     KineticsConfig     `yaml:"kinetics"`
	Modulus      ModulusConfig      `yaml:"modulus"`
	Expansion    ExpansionConfig    `yaml:"expansion"`
	HeatCapacity HeatCapacityConfig `yaml:"heat_capacity"`
	Sweep        SweepConfig        `yaml:"sweep"`
}

type GlassConfig struct {
	Model  string   `yaml:"model"`
	Tg0    float64  `yaml:"tg0"`
	Tg1    float64  `yaml:"tg1"`
	Lambda float64  `yaml:"lambda"`
	Ramp   *float64 `yaml:"ramp,omitempty"`
}

type KineticsConfig struct {
	Model string  `yaml:"model"`
	A     float64 `yaml:"a,omitempty"`
	Ea    float64 `yaml:"ea,omitempty"`
	A1    float64 `yaml:"a1,omitempty"`
	A2    float64 `yaml:"a2,omitempty"`
	Ea1   float64 `yaml:"ea1,omitempty"`
	Ea2   float64 `yaml:"ea2,omitempty"`
	M     float64 `yaml:"m,omitempty"`
	N     float64 `yaml:"n,omitempty"`
}

type ModulusConfig struct {
	Model    string  `yaml:"model"`
	GelPoint float64 `yaml:"gel_point"`

	// model_a
	TempRef float64 `yaml:"temp_ref,omitempty"`
	Eta0A   float64 `yaml:"eta0_a,omitempty"`
	Eta0B   float64 `yaml:"eta0_b,omitempty"`
	DEta0A  float64 `yaml:"deta0_a,omitempty"`
	DEta0B  float64 `yaml:"deta0_b,omitempty"`
	A1A     float64 `yaml:"a1_a,omitempty"`
	A1B     float64 `yaml:"a1_b,omitempty"`
	A2A     float64 `yaml:"a2_a,omitempty"`
	A2B     float64 `yaml:"a2_b,omitempty"`

	// model_b
	TempMax     float64     `yaml:"temp_max,omitempty"`
	TempRefHigh float64     `yaml:"temp_ref_high,omitempty"`
	Eta1A       float64     `yaml:"eta1_a,omitempty"`
	Eta1B       float64     `yaml:"eta1_b,omitempty"`
	DEta        float64     `yaml:"deta,omitempty"`
	Phi0        float64     `yaml:"phi0,omitempty"`
	DPhi        float64     `yaml:"dphi,omitempty"`
	A1          float64     `yaml:"a1,omitempty"`
	A2          float64     `yaml:"a2,omitempty"`
	Table       TableConfig `yaml:"table,omitempty"`
}

type TableConfig struct {
	Phi []float64 `yaml:"phi,flow"`
	E   []float64 `yaml:"e,flow"`
}

type ExpansionConfig struct {
	Model    string  `yaml:"model"`
	GelPoint float64 `yaml:"gel_point,omitempty"`
	Alpha    float64 `yaml:"alpha"`
	Beta     float64 `yaml:"beta"`
}

type HeatCapacityConfig struct {
	Model string  `yaml:"model"`
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

// SweepConfig holds the default ranges used by the sweep and report commands.
type SweepConfig struct {
	PhiMin  float64 `yaml:"phi_min"`
	PhiMax  float64 `yaml:"phi_max"`
	TempC   float64 `yaml:"temp_c"`
	TempMin float64 `yaml:"temp_min"`
	TempMax float64 `yaml:"temp_max"`
	Steps   int     `yaml:"steps"`
}

func DefaultSweep() SweepConfig {
	return SweepConfig{
		PhiMin:  DefaultPhiMin,
		PhiMax:  DefaultPhiMax,
		TempC:   DefaultTempC,
		TempMin: DefaultTempMin,
		TempMax: DefaultTempMax,
		Steps:   DefaultSteps,
	}
}

func DefaultConfig() *Config {
	return GetPreset(DefaultPreset)
}

// Load reads a material config. Files ending in .json or .jsonc may carry
// comments and trailing commas.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	cfg := &Config{Sweep: DefaultSweep()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build turns the configuration into a material. Unknown model names are
// rejected with cure.ErrConfiguration.
func (c *Config) Build() (*material.Material, error) {
	g, err := c.Glass.build()
	if err != nil {
		return nil, err
	}
	k, err := c.Kinetics.build()
	if err != nil {
		return nil, err
	}
	mod, err := c.Modulus.build()
	if err != nil {
		return nil, err
	}
	exp, err := c.Expansion.build()
	if err != nil {
		return nil, err
	}
	heat, err := c.HeatCapacity.build()
	if err != nil {
		return nil, err
	}

	m := &material.Material{
		Name:         c.Name,
		Glass:        g,
		Kinetics:     k,
		Modulus:      mod,
		Expansion:    exp,
		HeatCapacity: heat,
	}
	return m, m.Validate()
}

func (g GlassConfig) build() (glass.Model, error) {
	kind, err := glass.ParseKind(g.Model)
	if err != nil {
		return nil, err
	}
	switch kind {
	case glass.KindDiBenedetto:
		return glass.DiBenedetto{Tg0: g.Tg0, Tg1: g.Tg1, Lambda: g.Lambda}, nil
	case glass.KindVendittiGillham:
		return glass.VendittiGillham{Tg0: g.Tg0, Tg1: g.Tg1, Lambda: g.Lambda}, nil
	case glass.KindDykeman:
		d := glass.NewDykeman(g.Tg0, g.Tg1, g.Lambda)
		if g.Ramp != nil {
			d.Ramp = *g.Ramp
		}
		return d, nil
	}
	return nil, cure.ConfigError("glass model", g.Model, nil)
}

func (k KineticsConfig) build() (kinetics.Model, error) {
	kind, err := kinetics.ParseKind(k.Model)
	if err != nil {
		return nil, err
	}
	switch kind {
	case kinetics.KindProutThompkins:
		return kinetics.ProutThompkins{A: k.A, Ea: k.Ea, M: k.M, N: k.N}, nil
	case kinetics.KindKamalSourour:
		return kinetics.KamalSourour{A1: k.A1, A2: k.A2, Ea1: k.Ea1, Ea2: k.Ea2, M: k.M, N: k.N}, nil
	case kinetics.KindDykeman:
		return kinetics.Dykeman{}, nil
	}
	return nil, cure.ConfigError("kinetics model", k.Model, nil)
}

func (m ModulusConfig) build() (modulus.Model, error) {
	kind, err := modulus.ParseKind(m.Model)
	if err != nil {
		return nil, err
	}
	switch kind {
	case modulus.KindModelA:
		return modulus.ModelA{
			GelPoint: m.GelPoint, TempRef: m.TempRef,
			Eta0A: m.Eta0A, Eta0B: m.Eta0B,
			DEta0A: m.DEta0A, DEta0B: m.DEta0B,
			A1A: m.A1A, A1B: m.A1B,
			A2A: m.A2A, A2B: m.A2B,
		}, nil
	case modulus.KindModelB:
		table, err := modulus.NewTable(m.Table.Phi, m.Table.E)
		if err != nil {
			return nil, err
		}
		return modulus.ModelB{
			GelPoint: m.GelPoint, TempMax: m.TempMax, TempRefHigh: m.TempRefHigh,
			Eta1A: m.Eta1A, Eta1B: m.Eta1B,
			Eta0A: m.Eta0A, Eta0B: m.Eta0B,
			DEta: m.DEta, Phi0: m.Phi0, DPhi: m.DPhi,
			A1: m.A1, A2: m.A2,
			Table: table,
		}, nil
	}
	return nil, cure.ConfigError("modulus model", m.Model, nil)
}

func (e ExpansionConfig) build() (thermal.Expansion, error) {
	kind, err := thermal.ParseExpansionKind(e.Model)
	if err != nil {
		return nil, err
	}
	switch kind {
	case thermal.KindExpansionA:
		return thermal.ExpansionA{GelPoint: e.GelPoint, Alpha: e.Alpha, Beta: e.Beta}, nil
	case thermal.KindExpansionLinear:
		return thermal.ExpansionLinear{Alpha: e.Alpha, Beta: e.Beta}, nil
	}
	return nil, cure.ConfigError("expansion model", e.Model, nil)
}

func (h HeatCapacityConfig) build() (thermal.HeatCapacity, error) {
	kind, err := thermal.ParseHeatCapacityKind(h.Model)
	if err != nil {
		return nil, err
	}
	switch kind {
	case thermal.KindHeatCapacityLinear:
		return thermal.HeatCapacityLinear{Alpha: h.Alpha, Beta: h.Beta}, nil
	}
	return nil, cure.ConfigError("heat capacity model", h.Model, nil)
}
