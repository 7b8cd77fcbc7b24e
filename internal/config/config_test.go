package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Qubits != 5 || cfg.Depth != 3 || cfg.Inputs != 2 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg)
	}
	if cfg.ColPoints != 100 || cfg.Steps != 1000 || cfg.Seed != 42 {
		t.Fatalf("unexpected training defaults: %+v", cfg)
	}
	if cfg.LearningRate != 0.001 || cfg.GridPoints != 150 {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	body := "qubits: 4\nsteps: 20\nout: field.png\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Qubits != 4 || cfg.Steps != 20 || cfg.Out != "field.png" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Depth != 3 {
		t.Fatalf("defaults lost on file load: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.ApplyOverrides(Overrides{Steps: 7, Seed: -3, Out: "x.png"})
	if cfg.Steps != 7 || cfg.Seed != -3 || cfg.Out != "x.png" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	cfg.ApplyOverrides(Overrides{})
	if cfg.Steps != 7 {
		t.Fatalf("zero override clobbered value: %+v", cfg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return cfg
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero qubits", func(c *Config) { c.Qubits = 0 }},
		{"zero depth", func(c *Config) { c.Depth = 0 }},
		{"one input", func(c *Config) { c.Inputs = 1 }},
		{"inputs exceed qubits", func(c *Config) { c.Inputs = 9 }},
		{"zero colpoints", func(c *Config) { c.ColPoints = 0 }},
		{"negative lr", func(c *Config) { c.LearningRate = -1 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"tiny grid", func(c *Config) { c.GridPoints = 1 }},
		{"empty out", func(c *Config) { c.Out = "" }},
	}
	for _, tc := range cases {
		cfg := base()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
