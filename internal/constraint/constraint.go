package constraint

import (
	"errors"
	"fmt"
	"math"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/geom"
)

// ErrInvalidConfig is returned for non-positive grid sizes and inverted
// boundary rectangles.
var ErrInvalidConfig = errors.New("invalid constraint configuration")

// DefaultGridSize is the snap lattice spacing when none is configured.
const DefaultGridSize = 10

// DefaultProbeOffset is the collision probe distance in surface units.
const DefaultProbeOffset = 10

// Config controls the spatial constraints applied to candidate
// positions during a drag.
type Config struct {
	GridSize           float64
	SnapToGrid         bool
	CollisionDetection bool
	ProbeOffset        float64
	Bounds             geom.Rect
}

// DefaultConfig returns the engine defaults for the given surface.
func DefaultConfig(surface geom.Rect) Config {
	return Config{
		GridSize:           DefaultGridSize,
		SnapToGrid:         true,
		CollisionDetection: true,
		ProbeOffset:        DefaultProbeOffset,
		Bounds:             surface,
	}
}

// Validate rejects configurations the engine cannot operate on.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("grid size %v: %w", c.GridSize, ErrInvalidConfig)
	}
	if c.Bounds.Width < 0 || c.Bounds.Height < 0 {
		return fmt.Errorf("inverted boundary %+v: %w", c.Bounds, ErrInvalidConfig)
	}
	if c.ProbeOffset <= 0 {
		return fmt.Errorf("probe offset %v: %w", c.ProbeOffset, ErrInvalidConfig)
	}
	return nil
}

// Engine applies grid snapping, boundary clamping and collision
// resolution to candidate positions.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and builds an engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's active configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetBounds replaces the boundary rectangle (e.g. after a surface
// resize).
func (e *Engine) SetBounds(bounds geom.Rect) error {
	next := e.cfg
	next.Bounds = bounds
	if err := next.Validate(); err != nil {
		return err
	}
	e.cfg = next
	return nil
}

// SnapToGrid rounds both axes to the nearest grid multiple. Identity
// when snapping is disabled.
func (e *Engine) SnapToGrid(pos geom.Point) geom.Point {
	if !e.cfg.SnapToGrid {
		return pos
	}
	g := e.cfg.GridSize
	return geom.Point{
		X: math.Round(pos.X/g) * g,
		Y: math.Round(pos.Y/g) * g,
	}
}

// ClampToBoundary keeps pos+size inside the boundary rectangle, each
// axis independently. A component larger than the boundary is pinned to
// the left/top edge and allowed to spill past the far edge.
func (e *Engine) ClampToBoundary(pos geom.Point, size geom.Size) geom.Point {
	b := e.cfg.Bounds
	return geom.Point{
		X: clampAxis(pos.X, size.Width, b.X, b.Right()),
		Y: clampAxis(pos.Y, size.Height, b.Y, b.Bottom()),
	}
}

func clampAxis(v, extent, lo, hi float64) float64 {
	max := hi - extent
	if max < lo {
		// Oversized: pin to the near edge.
		return lo
	}
	if v < lo {
		return lo
	}
	if v > max {
		return max
	}
	return v
}

// ResolveCollisions tests candidate against every other visible
// component. A collision-free candidate is accepted as-is. Otherwise a
// fixed ring of eight offset probes is tried in deterministic order,
// each re-clamped to the boundary; the first free probe wins. When the
// whole ring collides the component sticks at its pre-drag position.
// This is a bounded local search, traded for per-frame responsiveness.
func (e *Engine) ResolveCollisions(c *board.Component, candidate geom.Point, others []*board.Component) geom.Point {
	if !e.cfg.CollisionDetection {
		return candidate
	}
	if e.freeAt(c, candidate, others) {
		return candidate
	}

	d := e.cfg.ProbeOffset
	probes := [8]geom.Point{
		{X: candidate.X + d, Y: candidate.Y},
		{X: candidate.X - d, Y: candidate.Y},
		{X: candidate.X, Y: candidate.Y + d},
		{X: candidate.X, Y: candidate.Y - d},
		{X: candidate.X + d, Y: candidate.Y + d},
		{X: candidate.X + d, Y: candidate.Y - d},
		{X: candidate.X - d, Y: candidate.Y + d},
		{X: candidate.X - d, Y: candidate.Y - d},
	}
	for _, p := range probes {
		p = e.ClampToBoundary(p, c.Size)
		if e.freeAt(c, p, others) {
			return p
		}
	}

	// Stick: the component keeps its last settled position.
	return c.Pos
}

func (e *Engine) freeAt(c *board.Component, pos geom.Point, others []*board.Component) bool {
	rect := geom.RectAt(pos, c.Size)
	for _, other := range others {
		if other.ID == c.ID || !other.Visible {
			continue
		}
		if geom.Overlap(rect, other.Rect()) {
			return false
		}
	}
	return true
}
