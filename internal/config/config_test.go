package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Cation != "Na+" || cfg.Anion != "Cl-" || cfg.Solvent != "water" {
		t.Errorf("unexpected default electrolyte: %s/%s in %s", cfg.Cation, cfg.Anion, cfg.Solvent)
	}
	if cfg.Concentration != 1.0 || cfg.Temperature != 298.15 {
		t.Errorf("unexpected default conditions: %g M, %g K", cfg.Concentration, cfg.Temperature)
	}
	if cfg.StericModel != "cs" {
		t.Errorf("unexpected default steric model: %s", cfg.StericModel)
	}
	if cfg.Sweep.Start != -1.0 || cfg.Sweep.End != 1.0 || cfg.Sweep.Steps != 81 {
		t.Errorf("unexpected default sweep: %+v", cfg.Sweep)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Cation = "Cs+"
	cfg.Anion = "I-"
	cfg.Concentration = 2.5
	cfg.StericModel = "liu"
	cfg.Sweep.Steps = 41

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("roundtrip mismatch:\nsaved:  %+v\nloaded: %+v", cfg, loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("cation: K+\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// A sparse file only overrides what it names.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Cation != "K+" {
		t.Errorf("expected overridden cation K+, got %s", loaded.Cation)
	}
	if loaded.Concentration != DefaultConcentration || loaded.Sweep.Steps != DefaultSweepSteps {
		t.Errorf("unnamed keys must keep defaults: %+v", loaded)
	}
}

func TestBuildSystem(t *testing.T) {
	cfg := DefaultConfig()
	sys, err := cfg.BuildSystem()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if sys.Cation.Name != "Na+" || sys.Anion.Name != "Cl-" {
		t.Errorf("unexpected system ions: %s/%s", sys.Cation.Name, sys.Anion.Name)
	}

	cfg.Cation = "Unobtainium+"
	if _, err := cfg.BuildSystem(); err == nil {
		t.Error("expected error for unknown cation")
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		p := GetPreset(name)
		if p == nil {
			t.Fatalf("listed preset %q missing", name)
		}
		if _, err := p.BuildSystem(); err != nil {
			t.Errorf("preset %q does not build: %v", name, err)
		}
		if p.Sweep.Steps < 2 {
			t.Errorf("preset %q has degenerate sweep: %+v", name, p.Sweep)
		}
	}

	if GetPreset("nope") != nil {
		t.Error("expected nil for unknown preset")
	}
}
