package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/glass"
	"github.com/san-kum/curesim/internal/modulus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != DefaultPreset {
		t.Errorf("expected name %s, got %s", DefaultPreset, cfg.Name)
	}
	if cfg.Sweep.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.Sweep.PhiMin >= cfg.Sweep.PhiMax {
		t.Error("phi range should be increasing")
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("expected preset, got nil")
			}
			m, err := cfg.Build()
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if _, err := m.Evaluate(0.5, cfg.Sweep.TempC); err != nil {
				t.Errorf("evaluate failed: %v", err)
			}
		})
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_IsCopy(t *testing.T) {
	cfg := GetPreset("lookup")
	cfg.Modulus.Table.E[0] = -1
	cfg.Glass.Tg0 = -1

	again := GetPreset("lookup")
	if again.Modulus.Table.E[0] == -1 || again.Glass.Tg0 == -1 {
		t.Error("mutating a preset copy changed the preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestBuildUnknownModel(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"glass", func(c *Config) { c.Glass.Model = "fox" }},
		{"kinetics", func(c *Config) { c.Kinetics.Model = "nth_order" }},
		{"modulus", func(c *Config) { c.Modulus.Model = "model_c" }},
		{"expansion", func(c *Config) { c.Expansion.Model = "cubic" }},
		{"heat capacity", func(c *Config) { c.HeatCapacity.Model = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if _, err := cfg.Build(); !errors.Is(err, cure.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestBuildBadTable(t *testing.T) {
	cfg := GetPreset("lookup")
	cfg.Modulus.Table.E = cfg.Modulus.Table.E[:2]
	if _, err := cfg.Build(); !errors.Is(err, cure.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestBuildDykemanRamp(t *testing.T) {
	cfg := GetPreset("dykeman")
	m, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if d := m.Glass.(glass.Dykeman); d.Ramp != glass.DefaultRamp {
		t.Errorf("expected default ramp, got %g", d.Ramp)
	}

	ramp := 0.0
	cfg.Glass.Ramp = &ramp
	m, err = cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if d := m.Glass.(glass.Dykeman); d.Ramp != 0 {
		t.Errorf("expected isothermal ramp, got %g", d.Ramp)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "material.yaml")
	cfg := GetPreset("lookup")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "lookup" || loaded.Modulus.Model != "model_b" {
		t.Errorf("unexpected config: %+v", loaded)
	}
	if len(loaded.Modulus.Table.Phi) != 4 {
		t.Errorf("expected 4 table rows, got %d", len(loaded.Modulus.Table.Phi))
	}

	m, err := loaded.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if m.Modulus.Kind() != modulus.KindModelB {
		t.Errorf("expected model_b, got %s", m.Modulus.Kind())
	}
}

func TestLoadDefaultsSweep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte(`name: partial
glass: {model: dibenedetto, tg0: 40, tg1: 170, lambda: 0.5}
kinetics: {model: dykeman}
modulus: {model: model_a, gel_point: 0.4, temp_ref: 180}
expansion: {model: linear, alpha: 90, beta: 10}
heat_capacity: {model: linear, alpha: 0.001, beta: 0.1}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Sweep != DefaultSweep() {
		t.Errorf("expected default sweep, got %+v", cfg.Sweep)
	}
	if cfg.Glass.Tg0 != 40 {
		t.Errorf("expected tg0 40, got %g", cfg.Glass.Tg0)
	}
}

func TestLoadJSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "material.jsonc")
	data := []byte(`{
  // cured at a slow ramp
  "name": "slow",
  "glass": {"model": "dykeman", "tg0": 50, "tg1": 180, "lambda": 0.8, "ramp": 1.0},
  "kinetics": {"model": "dykeman"},
  "modulus": {"model": "model_a", "gel_point": 0.4, "temp_ref": 180},
  "expansion": {"model": "linear", "alpha": 90, "beta": 10},
  /* per-kelvin slope */
  "heat_capacity": {"model": "linear", "alpha": 0.0012, "beta": 0.2,},
}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	m, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if d := m.Glass.(glass.Dykeman); d.Ramp != 1.0 {
		t.Errorf("expected ramp 1.0, got %g", d.Ramp)
	}
	if cfg.HeatCapacity.Alpha != 0.0012 {
		t.Errorf("expected alpha 0.0012, got %g", cfg.HeatCapacity.Alpha)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
