package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/slate/internal/geom"
)

// WindowHandle binds a placed component to an X11 window. Position
// writes become EWMH move requests; z-order writes become stacking
// requests. X has no absolute stacking index, so a raised z raises the
// window and z zero lowers it.
type WindowHandle struct {
	conn   *Connection
	window xproto.Window
	size   geom.Size
	lastZ  int
}

// NewWindowHandle wraps an existing window, probing its current
// geometry for the component size.
func NewWindowHandle(conn *Connection, window xproto.Window) (*WindowHandle, error) {
	win := xwindow.New(conn.XUtil, window)
	rect, err := win.DecorGeometry()
	if err != nil {
		return nil, fmt.Errorf("failed to probe geometry of window %d: %w", window, err)
	}

	return &WindowHandle{
		conn:   conn,
		window: window,
		size:   geom.Size{Width: float64(rect.Width()), Height: float64(rect.Height())},
		lastZ:  -1,
	}, nil
}

// Window returns the underlying X window id.
func (h *WindowHandle) Window() xproto.Window { return h.window }

// Size returns the geometry probed at adoption.
func (h *WindowHandle) Size() geom.Size { return h.size }

// Apply pushes position and stacking onto the window.
func (h *WindowHandle) Apply(pos geom.Point, z int) error {
	if err := h.moveTo(pos); err != nil {
		return err
	}

	if z != h.lastZ {
		h.restack(z)
		h.lastZ = z
	}
	return nil
}

func (h *WindowHandle) moveTo(pos geom.Point) error {
	// Use EWMH MoveResize for better WM compatibility, keeping the
	// probed size.
	err := ewmh.MoveresizeWindow(
		h.conn.XUtil,
		h.window,
		int(pos.X), int(pos.Y),
		int(h.size.Width), int(h.size.Height),
	)
	if err != nil {
		// Fallback to direct window manipulation
		xwindow.New(h.conn.XUtil, h.window).MoveResize(int(pos.X), int(pos.Y), int(h.size.Width), int(h.size.Height))
	}
	return nil
}

func (h *WindowHandle) restack(z int) {
	mode := uint32(xproto.StackModeAbove)
	if z == 0 {
		mode = uint32(xproto.StackModeBelow)
	}
	xproto.ConfigureWindow(
		h.conn.XUtil.Conn(),
		h.window,
		xproto.ConfigWindowStackMode,
		[]uint32{mode},
	)
}

// Detach releases the drag grab on the window. The window itself is
// left where it is.
func (h *WindowHandle) Detach() {
	detachDrag(h.conn, h.window)
}
