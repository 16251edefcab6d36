package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/slate/internal/constraint"
	"github.com/1broseidon/slate/internal/geom"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.GetSnapToGrid() || !cfg.GetCollisionDetection() {
		t.Fatalf("snapping and collision detection should default on")
	}
	if cfg.GridSize != 10 {
		t.Fatalf("grid size = %v, want 10", cfg.GridSize)
	}
	if cfg.Bounds() != (geom.Rect{Width: 800, Height: 600}) {
		t.Fatalf("bounds = %v", cfg.Bounds())
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Surface.Width != 800 || cfg.Surface.Height != 600 {
		t.Fatalf("surface = %+v", cfg.Surface)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
surface:
  width: 1920
  height: 1080
grid_size: 25
snap_to_grid: false
probe_offset: 15
boundaries:
  left: 100
  top: 50
  right: 1820
  bottom: 1030
adopt:
  classes: ["Gimp", "Inkscape"]
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GridSize != 25 {
		t.Fatalf("grid size = %v", cfg.GridSize)
	}
	if cfg.GetSnapToGrid() {
		t.Fatalf("snap_to_grid should be disabled")
	}
	if !cfg.GetCollisionDetection() {
		t.Fatalf("collision_detection should default on when omitted")
	}
	if got := cfg.Bounds(); got != (geom.Rect{X: 100, Y: 50, Width: 1720, Height: 980}) {
		t.Fatalf("bounds = %v", got)
	}
	if len(cfg.Adopt.Classes) != 2 || cfg.Adopt.Classes[0] != "Gimp" {
		t.Fatalf("adopt classes = %v", cfg.Adopt.Classes)
	}

	cc := cfg.Constraint()
	if cc.ProbeOffset != 15 || cc.GridSize != 25 || cc.SnapToGrid {
		t.Fatalf("constraint config = %+v", cc)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero grid", "surface: {width: 800, height: 600}\ngrid_size: 0\n"},
		{"negative surface", "surface: {width: -1, height: 600}\ngrid_size: 10\n"},
		{"inverted boundaries", "surface: {width: 800, height: 600}\ngrid_size: 10\nboundaries: {left: 500, top: 0, right: 100, bottom: 600}\n"},
		{"negative probe", "surface: {width: 800, height: 600}\ngrid_size: 10\nprobe_offset: -5\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, err := LoadFromPath(path); !errors.Is(err, constraint.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "surface: [not a map\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.GridSize = 40
	off := false
	cfg.CollisionDetection = &off

	if err := Save(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.GridSize != 40 || loaded.GetCollisionDetection() {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
