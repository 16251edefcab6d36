package pointer

import (
	"log"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/constraint"
	"github.com/1broseidon/slate/internal/geom"
)

// Phase is the state machine's current state.
type Phase int

const (
	// PhaseIdle means no drag session is active.
	PhaseIdle Phase = iota
	// PhaseDragging means one component is being dragged.
	PhaseDragging
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// session is the transient drag state between pointer-down and
// pointer-up/cancel. It holds its own component reference so locking or
// hiding the component mid-drag does not interrupt the session.
type session struct {
	component *board.Component
	source    Source
	offset    geom.Point
	startPos  geom.Point
}

// Machine unifies mouse and touch input into one drag lifecycle:
// Idle -> (down on a draggable component) -> Dragging -> (up/cancel) ->
// Idle. At most one session exists; a second pointer-down while
// dragging is ignored, and only the modality that started the session
// may move or end it.
type Machine struct {
	registry  *board.Registry
	engine    *constraint.Engine
	listeners []Listener
	phase     Phase
	session   *session
}

// NewMachine creates an idle machine over the given registry and
// constraint engine.
func NewMachine(registry *board.Registry, engine *constraint.Engine) *Machine {
	return &Machine{registry: registry, engine: engine, phase: PhaseIdle}
}

// Subscribe registers a listener for drag events. Listeners are
// notified in subscription order.
func (m *Machine) Subscribe(l Listener) {
	m.listeners = append(m.listeners, l)
}

// SetEngine swaps the constraint engine used to settle drag positions.
// An active session keeps its grab offset; the new rules apply from
// the next move on.
func (m *Machine) SetEngine(engine *constraint.Engine) {
	m.engine = engine
}

// Phase returns the current state.
func (m *Machine) Phase() Phase { return m.phase }

// ActiveID returns the dragged component's id, or "" when idle.
func (m *Machine) ActiveID() string {
	if m.session == nil {
		return ""
	}
	return m.session.component.ID
}

// Down handles a pointer-down. It hit-tests the registry front-to-back
// and starts a drag session when the top-most visible component under
// the pointer is unlocked. Returns true when a session started.
func (m *Machine) Down(in Input) bool {
	if m.phase == PhaseDragging {
		// One session at a time.
		return false
	}

	c := m.hitTest(in.Pos)
	if c == nil || c.Locked {
		return false
	}

	m.session = &session{
		component: c,
		source:    in.Source,
		offset:    geom.Point{X: in.Pos.X - c.Pos.X, Y: in.Pos.Y - c.Pos.Y},
		startPos:  c.Pos,
	}
	m.phase = PhaseDragging

	if err := m.registry.BringToFront(c.ID); err != nil {
		log.Printf("pointer: bring to front %q: %v", c.ID, err)
	}
	for _, l := range m.listeners {
		l.DragStarted(c.ID)
	}
	return true
}

// Move handles a pointer-move while dragging. The candidate position
// runs through snap, clamp and collision resolution before being
// written back to the registry.
func (m *Machine) Move(in Input) {
	if m.phase != PhaseDragging || in.Source != m.session.source {
		return
	}

	c := m.session.component
	if m.registry.Get(c.ID) == nil {
		// Removed mid-drag: drop the session silently, no DragEnded.
		log.Printf("pointer: %q removed mid-drag, session dropped", c.ID)
		m.reset()
		return
	}

	candidate := geom.Point{
		X: in.Pos.X - m.session.offset.X,
		Y: in.Pos.Y - m.session.offset.Y,
	}
	candidate = m.engine.SnapToGrid(candidate)
	candidate = m.engine.ClampToBoundary(candidate, c.Size)
	candidate = m.engine.ResolveCollisions(c, candidate, m.registry.All())

	if err := m.registry.SetPosition(c.ID, candidate); err != nil {
		log.Printf("pointer: move %q: %v", c.ID, err)
		return
	}
	for _, l := range m.listeners {
		l.ComponentMoved(c.ID, candidate)
	}
}

// Up handles a pointer-up from the owning modality, settling the
// component and ending the session.
func (m *Machine) Up(in Input) {
	if m.phase != PhaseDragging || in.Source != m.session.source {
		return
	}
	m.finish()
}

// Cancel ends the active session regardless of modality. Hosts should
// wire this to the broadest cancel signal they have (window leave,
// touch cancel, focus loss) since no timeout exists.
func (m *Machine) Cancel() {
	if m.phase != PhaseDragging {
		return
	}
	m.finish()
}

func (m *Machine) finish() {
	c := m.session.component
	if m.registry.Get(c.ID) == nil {
		m.reset()
		return
	}
	pos := c.Pos
	m.reset()
	for _, l := range m.listeners {
		l.DragEnded(c.ID, pos)
	}
}

func (m *Machine) reset() {
	m.session = nil
	m.phase = PhaseIdle
}

// hitTest returns the top-most visible component containing p, or nil.
func (m *Machine) hitTest(p geom.Point) *board.Component {
	all := m.registry.All()
	for i := len(all) - 1; i >= 0; i-- {
		c := all[i]
		if !c.Visible {
			continue
		}
		if geom.PointInRect(p, c.Rect()) {
			return c
		}
	}
	return nil
}
