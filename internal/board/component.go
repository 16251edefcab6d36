package board

import "github.com/1broseidon/slate/internal/geom"

// Handle is the host-owned reference to a component's visual
// representation. The engine never inspects what a handle renders; it
// only probes the size once at registration and pushes position and
// stacking changes back out.
type Handle interface {
	// Size reports the component's current dimensions.
	Size() geom.Size
	// Apply pushes a new position and stacking order to the
	// presentation layer.
	Apply(pos geom.Point, z int) error
	// Detach releases any host resources tied to this handle. Called
	// once when the component is removed from the registry.
	Detach()
}

// Component is a placed component tracked by a Registry.
type Component struct {
	ID      string
	Kind    string
	Pos     geom.Point
	Size    geom.Size
	Z       int
	Locked  bool
	Visible bool
	// Payload is opaque host data carried through serialization. The
	// engine never interprets it.
	Payload any

	Handle Handle
}

// Rect returns the component's bounding rectangle.
func (c *Component) Rect() geom.Rect {
	return geom.RectAt(c.Pos, c.Size)
}
