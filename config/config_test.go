package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Field.Count != 180000 || cfg.Field.RowWidth != 100 {
		t.Errorf("expected field 180000/100, got %d/%d", cfg.Field.Count, cfg.Field.RowWidth)
	}
	if cfg.Derived.ParticleCount != 60000 {
		t.Errorf("expected 60000 particles, got %d", cfg.Derived.ParticleCount)
	}
	if cfg.Animation.PointerSmoothing != 0.1 || cfg.Animation.SpeedDecay != 0.999 {
		t.Errorf("unexpected animation defaults: %+v", cfg.Animation)
	}
	if cfg.Animation.RotationPeriod != 35 {
		t.Errorf("expected rotation period 35, got %f", cfg.Animation.RotationPeriod)
	}
	if cfg.Settings.BloomStrength != 0.9 || cfg.Settings.AberrationMaxDistort != 1.4 {
		t.Errorf("unexpected settings defaults: %+v", cfg.Settings)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("field:\n  count: 300\nsettings:\n  progress: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Field.Count != 300 {
		t.Errorf("expected count 300, got %d", cfg.Field.Count)
	}
	if cfg.Field.RowWidth != 100 {
		t.Errorf("expected row width kept at 100, got %d", cfg.Field.RowWidth)
	}
	if cfg.Settings.Progress != 0.5 {
		t.Errorf("expected progress 0.5, got %f", cfg.Settings.Progress)
	}
	if cfg.Derived.ParticleCount != 100 {
		t.Errorf("expected derived particle count 100, got %d", cfg.Derived.ParticleCount)
	}
}

func TestFieldParamsKeepsZeroOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.yaml")
	data := []byte("field:\n  count: 300\n  vertical_offset: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	p, err := cfg.Field.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.VerticalOffset != 0 {
		t.Errorf("expected vertical offset 0, got %f", p.VerticalOffset)
	}
	if p.HeightStep != 0.01 || p.RadiusStep != 0.06 {
		t.Errorf("expected remaining steps from defaults and preset, got %+v", p)
	}
}

func TestFieldParamsPresetSteps(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.Preset = "molecule"
	p, err := cfg.Field.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.ColumnAngleStep != 0.1 || p.RadiusStep != 0.3 {
		t.Errorf("expected molecule steps, got %+v", p)
	}

	step := 0.05
	cfg.Field.RadiusStep = &step
	if p, _ = cfg.Field.Params(); p.RadiusStep != 0.05 {
		t.Errorf("expected radius override 0.05, got %f", p.RadiusStep)
	}

	cfg.Field.Preset = "spiral"
	if _, err := cfg.Field.Params(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadBadPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("palette:\n  color2: \"#12\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed palette color")
	}
}

func TestParseHexColor(t *testing.T) {
	rgb, err := ParseHexColor("#612574")
	if err != nil {
		t.Fatal(err)
	}
	want := [3]float32{0x61 / 255.0, 0x25 / 255.0, 0x74 / 255.0}
	for i := range rgb {
		if math.Abs(float64(rgb[i]-want[i])) > 1e-6 {
			t.Errorf("channel %d: expected %f, got %f", i, want[i], rgb[i])
		}
	}

	if _, err := ParseHexColor("zzzzzz"); err == nil {
		t.Error("expected error for non-hex input")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	want, err := cfg.Field.Params()
	if err != nil {
		t.Fatal(err)
	}
	got, err := reloaded.Field.Params()
	if err != nil {
		t.Fatal(err)
	}
	if got != want || reloaded.Field.Count != cfg.Field.Count || reloaded.Animation != cfg.Animation {
		t.Error("snapshot did not reproduce field/animation sections")
	}
}
