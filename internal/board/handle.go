package board

import "github.com/1broseidon/slate/internal/geom"

// StaticHandle is a handle with a fixed size and nothing to render.
// Hosts use it for components that exist only inside the engine, such
// as ones created over IPC or restored from a snapshot without a live
// window behind them.
type StaticHandle struct {
	size geom.Size
}

// NewStaticHandle creates a handle that reports the given size.
func NewStaticHandle(size geom.Size) *StaticHandle {
	return &StaticHandle{size: size}
}

func (h *StaticHandle) Size() geom.Size { return h.size }

func (h *StaticHandle) Apply(geom.Point, int) error { return nil }

func (h *StaticHandle) Detach() {}
