// Package layoutops implements batch placement operations over sets of
// placed components: optimal-placement search, edge alignment and even
// distribution. These mutate positions directly and do not re-run
// collision resolution; callers re-resolve afterwards when
// overlap-freedom matters.
package layoutops

import (
	"fmt"
	"sort"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/geom"
)

// PlacementStep is the default raster scan stride for
// FindOptimalPlacement.
const PlacementStep = 20

// FallbackMargin is the default offset of the position returned when
// the surface is saturated.
const FallbackMargin = 10

// Edge selects the alignment target for Align.
type Edge string

const (
	EdgeLeft    Edge = "left"
	EdgeRight   Edge = "right"
	EdgeTop     Edge = "top"
	EdgeBottom  Edge = "bottom"
	EdgeCenterH Edge = "center-horizontal"
	EdgeCenterV Edge = "center-vertical"
)

// Axis selects the distribution direction for Distribute.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// FindOptimalPlacement scans the bounds row-major at the given stride
// and returns the first top-left where a component of the given size
// would not overlap any existing visible component. When the surface
// is saturated it falls back to a margin-offset position. A
// non-positive step or negative margin selects the defaults.
func FindOptimalPlacement(existing []*board.Component, size geom.Size, bounds geom.Rect, step, margin float64) geom.Point {
	if step <= 0 {
		step = PlacementStep
	}
	if margin < 0 {
		margin = FallbackMargin
	}

	maxX := bounds.Right() - size.Width
	maxY := bounds.Bottom() - size.Height

	for y := bounds.Y; y <= maxY; y += step {
		for x := bounds.X; x <= maxX; x += step {
			candidate := geom.Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
			if placementFree(candidate, existing) {
				return geom.Point{X: x, Y: y}
			}
		}
	}
	return geom.Point{X: bounds.X + margin, Y: bounds.Y + margin}
}

func placementFree(candidate geom.Rect, existing []*board.Component) bool {
	for _, c := range existing {
		if !c.Visible {
			continue
		}
		if geom.Overlap(candidate, c.Rect()) {
			return false
		}
	}
	return true
}

// Align lines a set of components up on the given edge: left/top align
// to the minimum coordinate, right/bottom to the maximum extent, and
// the center variants to the mean position.
func Align(set []*board.Component, edge Edge) error {
	if len(set) == 0 {
		return nil
	}

	switch edge {
	case EdgeLeft:
		target := set[0].Pos.X
		for _, c := range set[1:] {
			if c.Pos.X < target {
				target = c.Pos.X
			}
		}
		for _, c := range set {
			c.Pos.X = target
		}

	case EdgeRight:
		target := set[0].Rect().Right()
		for _, c := range set[1:] {
			if r := c.Rect().Right(); r > target {
				target = r
			}
		}
		for _, c := range set {
			c.Pos.X = target - c.Size.Width
		}

	case EdgeTop:
		target := set[0].Pos.Y
		for _, c := range set[1:] {
			if c.Pos.Y < target {
				target = c.Pos.Y
			}
		}
		for _, c := range set {
			c.Pos.Y = target
		}

	case EdgeBottom:
		target := set[0].Rect().Bottom()
		for _, c := range set[1:] {
			if b := c.Rect().Bottom(); b > target {
				target = b
			}
		}
		for _, c := range set {
			c.Pos.Y = target - c.Size.Height
		}

	case EdgeCenterH:
		mean := 0.0
		for _, c := range set {
			mean += c.Rect().Center().X
		}
		mean /= float64(len(set))
		for _, c := range set {
			c.Pos.X = mean - c.Size.Width/2
		}

	case EdgeCenterV:
		mean := 0.0
		for _, c := range set {
			mean += c.Rect().Center().Y
		}
		mean /= float64(len(set))
		for _, c := range set {
			c.Pos.Y = mean - c.Size.Height/2
		}

	default:
		return fmt.Errorf("unsupported alignment edge %q", edge)
	}
	return nil
}

// Distribute spaces components evenly along an axis between the
// first and last members, which do not move. Requires at least three
// components.
func Distribute(set []*board.Component, axis Axis) error {
	if len(set) < 3 {
		return fmt.Errorf("distribute requires at least 3 components, got %d", len(set))
	}
	if axis != AxisHorizontal && axis != AxisVertical {
		return fmt.Errorf("unsupported distribution axis %q", axis)
	}

	ordered := append([]*board.Component(nil), set...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if axis == AxisHorizontal {
			return ordered[i].Pos.X < ordered[j].Pos.X
		}
		return ordered[i].Pos.Y < ordered[j].Pos.Y
	})

	first, last := ordered[0], ordered[len(ordered)-1]
	var span float64
	if axis == AxisHorizontal {
		span = last.Pos.X - first.Pos.X
	} else {
		span = last.Pos.Y - first.Pos.Y
	}
	gap := span / float64(len(ordered)-1)

	for i, c := range ordered[1 : len(ordered)-1] {
		offset := gap * float64(i+1)
		if axis == AxisHorizontal {
			c.Pos.X = first.Pos.X + offset
		} else {
			c.Pos.Y = first.Pos.Y + offset
		}
	}
	return nil
}
