package board

import (
	"fmt"
	"log"
	"sort"

	"github.com/1broseidon/slate/internal/geom"
)

// Registry is the canonical store of placed components, keyed by id.
// It is not safe for concurrent use; callers serialize access (the
// daemon does this behind its IPC server, hosts run it from a single
// event loop).
type Registry struct {
	components map[string]*Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]*Component)}
}

// Add registers a new component at the given position. The size is
// probed from the handle once; the component starts unlocked, visible,
// and on top of the current stack.
func (r *Registry) Add(id string, handle Handle, pos geom.Point) (*Component, error) {
	if _, exists := r.components[id]; exists {
		return nil, fmt.Errorf("add %q: %w", id, ErrDuplicateID)
	}

	c := &Component{
		ID:      id,
		Pos:     pos,
		Size:    handle.Size(),
		Z:       r.maxZ() + 1,
		Visible: true,
		Handle:  handle,
	}
	r.components[id] = c
	r.apply(c)
	return c, nil
}

// Remove detaches and deletes a component.
func (r *Registry) Remove(id string) error {
	c, exists := r.components[id]
	if !exists {
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	delete(r.components, id)
	c.Handle.Detach()
	return nil
}

// Clear removes every component, detaching all handles.
func (r *Registry) Clear() {
	for id, c := range r.components {
		delete(r.components, id)
		c.Handle.Detach()
	}
}

// Get returns the component with the given id, or nil if absent.
func (r *Registry) Get(id string) *Component {
	return r.components[id]
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.components)
}

// All returns every component ordered by ascending z, ties broken by id
// so the ordering is deterministic.
func (r *Registry) All() []*Component {
	out := make([]*Component, 0, len(r.components))
	for _, c := range r.components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SetPosition moves a component and pushes the new geometry to its
// handle. No constraints are applied here; that is the caller's job.
func (r *Registry) SetPosition(id string, pos geom.Point) error {
	c, exists := r.components[id]
	if !exists {
		return fmt.Errorf("move %q: %w", id, ErrNotFound)
	}
	c.Pos = pos
	r.apply(c)
	return nil
}

// Lock marks a component as not draggable.
func (r *Registry) Lock(id string) error { return r.setLocked(id, true) }

// Unlock makes a component draggable again.
func (r *Registry) Unlock(id string) error { return r.setLocked(id, false) }

func (r *Registry) setLocked(id string, locked bool) error {
	c, exists := r.components[id]
	if !exists {
		return fmt.Errorf("lock %q: %w", id, ErrNotFound)
	}
	c.Locked = locked
	return nil
}

// Hide makes a component invisible. Hidden components keep their
// geometry and are ignored by hit testing and collision checks.
func (r *Registry) Hide(id string) error { return r.setVisible(id, false) }

// Show makes a component visible again.
func (r *Registry) Show(id string) error { return r.setVisible(id, true) }

func (r *Registry) setVisible(id string, visible bool) error {
	c, exists := r.components[id]
	if !exists {
		return fmt.Errorf("show/hide %q: %w", id, ErrNotFound)
	}
	c.Visible = visible
	return nil
}

// BringToFront raises a component above everything else. Z values are
// relative only; no compaction is performed.
func (r *Registry) BringToFront(id string) error {
	c, exists := r.components[id]
	if !exists {
		return fmt.Errorf("bring to front %q: %w", id, ErrNotFound)
	}
	top := r.maxZ()
	if c.Z == top && r.countAtZ(top) == 1 {
		// Already alone on top; repeating is a no-op.
		return nil
	}
	c.Z = top + 1
	r.apply(c)
	return nil
}

// SendToBack lowers a component below everything else, shifting every
// other component up by one so relative order is preserved.
func (r *Registry) SendToBack(id string) error {
	c, exists := r.components[id]
	if !exists {
		return fmt.Errorf("send to back %q: %w", id, ErrNotFound)
	}
	for _, other := range r.components {
		if other.ID == id {
			continue
		}
		other.Z++
		r.apply(other)
	}
	c.Z = 0
	r.apply(c)
	return nil
}

func (r *Registry) maxZ() int {
	// Linear scan; component counts are small and this keeps z
	// bookkeeping trivial.
	top := 0
	for _, c := range r.components {
		if c.Z > top {
			top = c.Z
		}
	}
	return top
}

func (r *Registry) countAtZ(z int) int {
	n := 0
	for _, c := range r.components {
		if c.Z == z {
			n++
		}
	}
	return n
}

// apply pushes position and stacking to the handle. Presentation
// failures are logged, never propagated: the registry remains the
// source of truth.
func (r *Registry) apply(c *Component) {
	if err := c.Handle.Apply(c.Pos, c.Z); err != nil {
		log.Printf("board: apply transform for %q failed: %v", c.ID, err)
	}
}
