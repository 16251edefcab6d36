package pointer

import "github.com/1broseidon/slate/internal/geom"

// Listener receives drag lifecycle events. Events are delivered
// synchronously, in strict FIFO order per session: exactly one
// DragStarted, zero or more ComponentMoved, and at most one DragEnded
// (none when the dragged component is removed mid-drag).
type Listener interface {
	DragStarted(id string)
	ComponentMoved(id string, pos geom.Point)
	DragEnded(id string, pos geom.Point)
}

// ListenerFuncs adapts plain callbacks to the Listener interface. Nil
// fields are skipped.
type ListenerFuncs struct {
	OnDragStart func(id string)
	OnMove      func(id string, pos geom.Point)
	OnDragEnd   func(id string, pos geom.Point)
}

func (l ListenerFuncs) DragStarted(id string) {
	if l.OnDragStart != nil {
		l.OnDragStart(id)
	}
}

func (l ListenerFuncs) ComponentMoved(id string, pos geom.Point) {
	if l.OnMove != nil {
		l.OnMove(id, pos)
	}
}

func (l ListenerFuncs) DragEnded(id string, pos geom.Point) {
	if l.OnDragEnd != nil {
		l.OnDragEnd(id, pos)
	}
}
