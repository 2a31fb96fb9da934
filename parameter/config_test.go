package parameter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected default config, got %+v", cfg)
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg := Default()
	err := Decode(`
[engine]
tick_interval = "20ms"

[physics]
gravitational_constant = 1.5

[scene]
seed = 42
`, &cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Engine.TickInterval != 20*time.Millisecond {
		t.Errorf("Expected 20ms tick interval, got %v", cfg.Engine.TickInterval)
	}
	if cfg.Engine.FetchBackoff != FetchBackoff {
		t.Errorf("Expected untouched fetch backoff %v, got %v", FetchBackoff, cfg.Engine.FetchBackoff)
	}
	if cfg.Physics.G != 1.5 {
		t.Errorf("Expected G 1.5, got %v", cfg.Physics.G)
	}
	if cfg.Scene.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Scene.Seed)
	}
	if cfg.Scene.GridSize != 5 {
		t.Errorf("Expected default grid size 5, got %d", cfg.Scene.GridSize)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Decode("[engine]\ntick_rate = \"5ms\"\n", &cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestDecodeRejectsNonPositiveInterval(t *testing.T) {
	cfg := Default()
	err := Decode("[engine]\ntick_interval = \"0s\"\n", &cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kristall.toml")
	if err := os.WriteFile(path, []byte("[input]\ncontroller_force = 3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Input.ControllerForce != 3 {
		t.Errorf("Expected controller force 3, got %v", cfg.Input.ControllerForce)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
