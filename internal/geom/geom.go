package geom

import "math"

// Point is a position on the surface, measured from the top-left corner.
type Point struct {
	X float64
	Y float64
}

// Size holds a component's width and height.
type Size struct {
	Width  float64
	Height float64
}

// Rect describes an axis-aligned rectangle by its top-left corner and size.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectAt builds a Rect from a top-left point and a size.
func RectAt(pos Point, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlap reports whether two rectangles overlap. Edges are half-open:
// rectangles that merely touch do not overlap.
func Overlap(a, b Rect) bool {
	return a.X < b.Right() && b.X < a.Right() &&
		a.Y < b.Bottom() && b.Y < a.Bottom()
}

// Distance returns the Euclidean distance between two points.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PointInRect reports whether p lies inside r. Bounds are inclusive on
// all four edges.
func PointInRect(p Point, r Rect) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}
