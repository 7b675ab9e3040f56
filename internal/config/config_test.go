package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Spacing <= 0 {
		t.Error("spacing should be positive")
	}
	if cfg.Fluid.RestDensity <= 0 {
		t.Error("rest density should be positive")
	}
	if cfg.Run.EndTime <= 0 {
		t.Error("end time should be positive")
	}
	if cfg.Run.OutputInterval <= 0 {
		t.Error("output interval should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("poiseuille", "standard")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Spacing != 5.0e-5 {
		t.Errorf("expected spacing 5e-5, got %g", cfg.Spacing)
	}
	if cfg.Fluid.Gravity[0] != 1.0e-4 {
		t.Errorf("expected x gravity 1e-4, got %g", cfg.Fluid.Gravity[0])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("poiseuille", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "standard"); cfg != nil {
		t.Error("expected nil for nonexistent case")
	}
}

func TestGetPreset_Copies(t *testing.T) {
	cfg := GetPreset("dambreak", "standard")
	cfg.Spacing = 42

	if Presets["dambreak"]["standard"].Spacing == 42 {
		t.Error("editing a preset copy leaked into the shared table")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("dambreak")
	if len(presets) == 0 {
		t.Error("expected presets for dambreak")
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent case")
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	partial := "spacing: 0.01\nrun:\n  end_time: 3.5\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Spacing != 0.01 {
		t.Errorf("expected spacing 0.01, got %g", cfg.Spacing)
	}
	if cfg.Run.EndTime != 3.5 {
		t.Errorf("expected end time 3.5, got %g", cfg.Run.EndTime)
	}
	// Unnamed fields keep their defaults.
	if cfg.Fluid.RestDensity != DefaultRestDensity {
		t.Errorf("expected default rest density, got %g", cfg.Fluid.RestDensity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	want := DefaultConfig()
	want.Case = "dambreak"
	want.Spacing = 0.025
	want.Fluid.Gravity = [2]float64{0.5, -9.81}
	want.Output.Live = true

	if err := Save(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Case != want.Case || got.Spacing != want.Spacing {
		t.Errorf("round trip changed identity: %+v", got)
	}
	if got.Fluid.Gravity != want.Fluid.Gravity {
		t.Errorf("round trip changed gravity: %v", got.Fluid.Gravity)
	}
	if !got.Output.Live {
		t.Error("round trip dropped the live flag")
	}
}

func TestForCaseUnknownFallsBack(t *testing.T) {
	cfg, err := ForCase("mystery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Case != "mystery" {
		t.Errorf("expected case name kept, got %q", cfg.Case)
	}
	if cfg.Spacing != DefaultSpacing {
		t.Errorf("expected default spacing, got %g", cfg.Spacing)
	}
}
