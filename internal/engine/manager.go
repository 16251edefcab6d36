// Package engine ties the component registry, the spatial constraint
// engine and the pointer state machine into one board manager. All
// operations are synchronous and must be driven from a single
// goroutine; callers that serve multiple clients (the IPC daemon)
// serialize access themselves.
package engine

import (
	"fmt"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/constraint"
	"github.com/1broseidon/slate/internal/geom"
	"github.com/1broseidon/slate/internal/layoutops"
	"github.com/1broseidon/slate/internal/pointer"
	"github.com/1broseidon/slate/internal/snapshot"
)

// Manager owns one surface worth of components.
type Manager struct {
	registry    *board.Registry
	constraints *constraint.Engine
	machine     *pointer.Machine

	placeStep   float64
	placeMargin float64
}

// New builds a manager for the given constraint configuration.
func New(cfg constraint.Config) (*Manager, error) {
	eng, err := constraint.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	reg := board.NewRegistry()
	return &Manager{
		registry:    reg,
		constraints: eng,
		machine:     pointer.NewMachine(reg, eng),
		placeStep:   layoutops.PlacementStep,
		placeMargin: layoutops.FallbackMargin,
	}, nil
}

// ConfigurePlacement overrides the auto-placement scan stride and the
// saturation fallback margin. Non-positive values keep the current
// settings.
func (m *Manager) ConfigurePlacement(step, margin float64) {
	if step > 0 {
		m.placeStep = step
	}
	if margin > 0 {
		m.placeMargin = margin
	}
}

// Registry exposes the underlying component store. Host adapters use
// it for read access; mutations should go through the manager.
func (m *Manager) Registry() *board.Registry { return m.registry }

// Config returns the active constraint configuration.
func (m *Manager) Config() constraint.Config { return m.constraints.Config() }

// Reconfigure replaces the constraint configuration, validating it
// first. The registry, subscribed listeners and any in-progress drag
// are untouched.
func (m *Manager) Reconfigure(cfg constraint.Config) error {
	eng, err := constraint.NewEngine(cfg)
	if err != nil {
		return err
	}
	m.constraints = eng
	m.machine.SetEngine(eng)
	return nil
}

// Subscribe registers a drag lifecycle listener.
func (m *Manager) Subscribe(l pointer.Listener) { m.machine.Subscribe(l) }

// Add registers a component at the given position, clamped into the
// surface so the boundary invariant holds from the first frame.
func (m *Manager) Add(id string, handle board.Handle, pos geom.Point) (*board.Component, error) {
	c, err := m.registry.Add(id, handle, pos)
	if err != nil {
		return nil, err
	}
	clamped := m.constraints.ClampToBoundary(pos, c.Size)
	if clamped != pos {
		if err := m.registry.SetPosition(id, clamped); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Remove deletes a component and detaches its handle.
func (m *Manager) Remove(id string) error { return m.registry.Remove(id) }

// Get returns the component with the given id, or nil.
func (m *Manager) Get(id string) *board.Component { return m.registry.Get(id) }

// All returns every component, ascending by z-order.
func (m *Manager) All() []*board.Component { return m.registry.All() }

// Clear cancels any active drag and removes every component.
func (m *Manager) Clear() {
	m.machine.Cancel()
	m.registry.Clear()
}

func (m *Manager) Lock(id string) error   { return m.registry.Lock(id) }
func (m *Manager) Unlock(id string) error { return m.registry.Unlock(id) }
func (m *Manager) Hide(id string) error   { return m.registry.Hide(id) }
func (m *Manager) Show(id string) error   { return m.registry.Show(id) }

func (m *Manager) BringToFront(id string) error { return m.registry.BringToFront(id) }
func (m *Manager) SendToBack(id string) error   { return m.registry.SendToBack(id) }

// Move relocates a component through the full constraint pipeline:
// snap, clamp, then collision resolution against the visible set.
func (m *Manager) Move(id string, pos geom.Point) (geom.Point, error) {
	c := m.registry.Get(id)
	if c == nil {
		return geom.Point{}, fmt.Errorf("move %q: %w", id, board.ErrNotFound)
	}
	settled := m.constraints.SnapToGrid(pos)
	settled = m.constraints.ClampToBoundary(settled, c.Size)
	settled = m.constraints.ResolveCollisions(c, settled, m.registry.All())
	if err := m.registry.SetPosition(id, settled); err != nil {
		return geom.Point{}, err
	}
	return settled, nil
}

// PointerDown feeds a pointer press into the drag state machine.
// It reports whether a drag session started.
func (m *Manager) PointerDown(in pointer.Input) bool { return m.machine.Down(in) }

// PointerMove advances an active drag session.
func (m *Manager) PointerMove(in pointer.Input) { m.machine.Move(in) }

// PointerUp ends the session owned by the input's modality.
func (m *Manager) PointerUp(in pointer.Input) { m.machine.Up(in) }

// PointerCancel unconditionally ends any active session.
func (m *Manager) PointerCancel() { m.machine.Cancel() }

// Dragging reports whether a drag session is active, and for which id.
func (m *Manager) Dragging() (string, bool) {
	id := m.machine.ActiveID()
	return id, id != ""
}

// Serialize exports the arrangement as plain records, ascending by
// z-order.
func (m *Manager) Serialize() []snapshot.Record {
	return snapshot.Serialize(m.registry)
}

// Restore replaces the arrangement with the given records. Any active
// drag is cancelled first. Records the factory cannot reconstruct are
// skipped.
func (m *Manager) Restore(records []snapshot.Record, factory snapshot.Factory) {
	m.machine.Cancel()
	snapshot.Restore(m.registry, records, factory)
}

// FindPlacement scans the surface for the first free slot for a
// component of the given size.
func (m *Manager) FindPlacement(size geom.Size) geom.Point {
	return layoutops.FindOptimalPlacement(m.registry.All(), size, m.constraints.Config().Bounds, m.placeStep, m.placeMargin)
}

// Align lines up the named components along an edge and pushes the
// resulting positions to their handles. Positions are written as-is;
// callers wanting overlap freedom re-run Move afterwards.
func (m *Manager) Align(ids []string, edge layoutops.Edge) error {
	set, err := m.resolve(ids)
	if err != nil {
		return err
	}
	if err := layoutops.Align(set, edge); err != nil {
		return err
	}
	return m.push(set)
}

// Distribute spaces the named components evenly along an axis.
func (m *Manager) Distribute(ids []string, axis layoutops.Axis) error {
	set, err := m.resolve(ids)
	if err != nil {
		return err
	}
	if err := layoutops.Distribute(set, axis); err != nil {
		return err
	}
	return m.push(set)
}

func (m *Manager) resolve(ids []string) ([]*board.Component, error) {
	set := make([]*board.Component, 0, len(ids))
	for _, id := range ids {
		c := m.registry.Get(id)
		if c == nil {
			return nil, fmt.Errorf("component %q: %w", id, board.ErrNotFound)
		}
		set = append(set, c)
	}
	return set, nil
}

// push re-writes each component's position through the registry so the
// presentation handle sees the layout result.
func (m *Manager) push(set []*board.Component) error {
	for _, c := range set {
		if err := m.registry.SetPosition(c.ID, c.Pos); err != nil {
			return err
		}
	}
	return nil
}
