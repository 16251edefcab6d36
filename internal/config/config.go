// Package config loads the slate daemon configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/slate/internal/constraint"
	"github.com/1broseidon/slate/internal/geom"
	"github.com/1broseidon/slate/internal/layoutops"
)

// Surface is the bounded area components are placed on.
type Surface struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Boundaries restricts placement to a sub-rectangle of the surface.
// A zero value means "use the full surface".
type Boundaries struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// IsZero reports whether no explicit boundaries were configured.
func (b Boundaries) IsZero() bool {
	return b == Boundaries{}
}

// Placement tunes the free-slot raster scan.
type Placement struct {
	Step   float64 `yaml:"step,omitempty"`
	Margin float64 `yaml:"margin,omitempty"`
}

// Adopt selects which X11 windows the daemon manages as components.
type Adopt struct {
	// Classes lists WM_CLASS values to adopt. Empty means adopt nothing
	// automatically; windows can still be added explicitly.
	Classes []string `yaml:"classes,omitempty"`
}

// LoggingConfig controls optional file logging for the daemon.
type LoggingConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// File is the log file path (default: ~/.local/share/slate/slate.log)
	File string `yaml:"file,omitempty"`
}

// Config is the root configuration document.
type Config struct {
	Surface            Surface       `yaml:"surface"`
	GridSize           float64       `yaml:"grid_size"`
	SnapToGrid         *bool         `yaml:"snap_to_grid,omitempty"`
	CollisionDetection *bool         `yaml:"collision_detection,omitempty"`
	ProbeOffset        float64       `yaml:"probe_offset,omitempty"`
	Boundaries         Boundaries    `yaml:"boundaries,omitempty"`
	Placement          Placement     `yaml:"placement,omitempty"`
	Adopt              Adopt         `yaml:"adopt,omitempty"`
	Logging            LoggingConfig `yaml:"logging,omitempty"`
}

// Default returns the configuration used when no file exists:
// an 800x600 surface with 10-unit snapping and collision detection.
func Default() *Config {
	return &Config{
		Surface:     Surface{Width: 800, Height: 600},
		GridSize:    constraint.DefaultGridSize,
		ProbeOffset: constraint.DefaultProbeOffset,
		Placement: Placement{
			Step:   layoutops.PlacementStep,
			Margin: layoutops.FallbackMargin,
		},
	}
}

// GetSnapToGrid returns the effective value, defaulting to true.
func (c *Config) GetSnapToGrid() bool {
	if c.SnapToGrid == nil {
		return true
	}
	return *c.SnapToGrid
}

// GetCollisionDetection returns the effective value, defaulting to true.
func (c *Config) GetCollisionDetection() bool {
	if c.CollisionDetection == nil {
		return true
	}
	return *c.CollisionDetection
}

// Bounds resolves the effective boundary rectangle.
func (c *Config) Bounds() geom.Rect {
	if c.Boundaries.IsZero() {
		return geom.Rect{Width: c.Surface.Width, Height: c.Surface.Height}
	}
	return geom.Rect{
		X:      c.Boundaries.Left,
		Y:      c.Boundaries.Top,
		Width:  c.Boundaries.Right - c.Boundaries.Left,
		Height: c.Boundaries.Bottom - c.Boundaries.Top,
	}
}

// Constraint converts the document into the engine's configuration.
func (c *Config) Constraint() constraint.Config {
	probe := c.ProbeOffset
	if probe == 0 {
		probe = constraint.DefaultProbeOffset
	}
	return constraint.Config{
		GridSize:           c.GridSize,
		SnapToGrid:         c.GetSnapToGrid(),
		CollisionDetection: c.GetCollisionDetection(),
		ProbeOffset:        probe,
		Bounds:             c.Bounds(),
	}
}

// Validate checks the document for values the engine would reject.
func (c *Config) Validate() error {
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("surface must have positive dimensions: %w", constraint.ErrInvalidConfig)
	}
	if c.Placement.Step < 0 || c.Placement.Margin < 0 {
		return fmt.Errorf("placement step and margin must not be negative: %w", constraint.ErrInvalidConfig)
	}
	return c.Constraint().Validate()
}

// DefaultConfigPath returns ~/.config/slate/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "slate", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing
// file yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path. Keys the
// file omits keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
