package x11

import (
	"fmt"
	"log"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/slate/internal/engine"
	"github.com/1broseidon/slate/internal/geom"
	"github.com/1broseidon/slate/internal/hotkeys"
	"github.com/1broseidon/slate/internal/pointer"
)

// DefaultDragButton is the grab used to drag adopted windows. Plain
// button 1 would steal clicks from the application, so a modifier is
// required.
const DefaultDragButton = "Mod4-1"

// Hotkeys bound by BindHotkeys.
const (
	CancelDragKey = "Mod4-Escape"
	AdoptKey      = "Mod4-F5"
)

// Board is the slice of the daemon the host drives: locked manager
// access for adoption, pointer forwarding for drags.
type Board interface {
	WithManager(apply func(mgr *engine.Manager) error) error
	PointerDown(in pointer.Input) bool
	PointerMove(in pointer.Input)
	PointerUp(in pointer.Input)
	PointerCancel()
}

// Host adopts X11 windows as board components and feeds pointer drags
// into the engine.
type Host struct {
	conn    *Connection
	board   Board
	classes map[string]bool
	button  string
}

// NewHost creates a host that adopts windows whose WM_CLASS matches
// one of classes. An empty button selects DefaultDragButton.
func NewHost(conn *Connection, board Board, classes []string, button string) *Host {
	if button == "" {
		button = DefaultDragButton
	}
	classSet := make(map[string]bool, len(classes))
	for _, class := range classes {
		classSet[strings.ToLower(class)] = true
	}
	return &Host{
		conn:    conn,
		board:   board,
		classes: classSet,
		button:  button,
	}
}

// SurfaceSize returns the root window extent, the natural surface for
// adopted windows.
func (h *Host) SurfaceSize() (geom.Size, error) {
	rect, err := xwindow.New(h.conn.XUtil, h.conn.Root).Geometry()
	if err != nil {
		return geom.Size{}, fmt.Errorf("failed to probe root geometry: %w", err)
	}
	return geom.Size{Width: float64(rect.Width()), Height: float64(rect.Height())}, nil
}

// AdoptAll scans the client list and adopts every matching window not
// yet managed. It returns the number of newly adopted windows.
func (h *Host) AdoptAll() (int, error) {
	clients, err := ewmh.ClientListGet(h.conn.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to list client windows: %w", err)
	}

	adopted := 0
	for _, windowID := range clients {
		if !h.wantsWindow(windowID) {
			continue
		}
		if err := h.adoptWindow(windowID); err != nil {
			log.Printf("x11: skipping window %d: %v", windowID, err)
			continue
		}
		adopted++
	}
	return adopted, nil
}

func (h *Host) wantsWindow(windowID xproto.Window) bool {
	if !h.isNormalWindow(windowID) {
		return false
	}
	if len(h.classes) == 0 {
		return false
	}
	wmClass, err := icccm.WmClassGet(h.conn.XUtil, windowID)
	if err != nil {
		return false
	}
	return h.classes[strings.ToLower(strings.TrimSpace(wmClass.Class))]
}

// isNormalWindow checks if a window is a normal application window
func (h *Host) isNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(h.conn.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	return len(types) == 0
}

func (h *Host) adoptWindow(windowID xproto.Window) error {
	handle, err := NewWindowHandle(h.conn, windowID)
	if err != nil {
		return err
	}

	rect, err := xwindow.New(h.conn.XUtil, windowID).DecorGeometry()
	if err != nil {
		return fmt.Errorf("failed to probe geometry: %w", err)
	}

	id := windowComponentID(windowID)
	kind := h.windowClass(windowID)
	pos := geom.Point{X: float64(rect.X()), Y: float64(rect.Y())}

	err = h.board.WithManager(func(mgr *engine.Manager) error {
		c, err := mgr.Add(id, handle, pos)
		if err != nil {
			return err
		}
		c.Kind = kind
		return nil
	})
	if err != nil {
		return err
	}

	h.bindDrag(windowID)
	log.Printf("x11: adopted window %d as %q", windowID, id)
	return nil
}

func (h *Host) windowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(h.conn.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// bindDrag grabs the configured button on the window and routes the
// drag through the pointer state machine with root coordinates.
func (h *Host) bindDrag(windowID xproto.Window) {
	mousebind.Drag(h.conn.XUtil, windowID, windowID, h.button, true,
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			started := h.board.PointerDown(pointer.Mouse(float64(rootX), float64(rootY)))
			return started, 0
		},
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
			h.board.PointerMove(pointer.Mouse(float64(rootX), float64(rootY)))
		},
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
			h.board.PointerUp(pointer.Mouse(float64(rootX), float64(rootY)))
		})
}

// Reconcile corrects drift between the X client list and the board:
// components whose windows disappeared are pruned, new matching
// windows are adopted.
func (h *Host) Reconcile() (adopted, pruned int, err error) {
	clients, err := ewmh.ClientListGet(h.conn.XUtil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list client windows: %w", err)
	}

	live := make(map[string]bool, len(clients))
	for _, windowID := range clients {
		live[windowComponentID(windowID)] = true
	}

	managed := make(map[string]bool)
	var dead []string
	_ = h.board.WithManager(func(mgr *engine.Manager) error {
		for _, c := range mgr.All() {
			if _, ok := c.Handle.(*WindowHandle); !ok {
				continue
			}
			managed[c.ID] = true
			if !live[c.ID] {
				dead = append(dead, c.ID)
			}
		}
		for _, id := range dead {
			if err := mgr.Remove(id); err == nil {
				pruned++
			}
		}
		return nil
	})
	for _, id := range dead {
		log.Printf("x11: pruned component %q, window gone", id)
	}

	for _, windowID := range clients {
		if managed[windowComponentID(windowID)] || !h.wantsWindow(windowID) {
			continue
		}
		if err := h.adoptWindow(windowID); err != nil {
			log.Printf("x11: skipping window %d: %v", windowID, err)
			continue
		}
		adopted++
	}
	return adopted, pruned, nil
}

// BindHotkeys installs the daemon's global shortcuts: cancel the
// active drag and rescan for adoptable windows.
func (h *Host) BindHotkeys(handler *hotkeys.Handler) error {
	err := handler.RegisterFunc(CancelDragKey, func() {
		h.board.PointerCancel()
	})
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", CancelDragKey, err)
	}
	err = handler.RegisterFunc(AdoptKey, func() {
		if _, _, err := h.Reconcile(); err != nil {
			log.Printf("x11: adopt hotkey: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", AdoptKey, err)
	}
	return nil
}

// Run blocks in the X event loop until Quit.
func (h *Host) Run() {
	h.conn.EventLoop()
}

// windowComponentID derives a stable component id from a window id.
func windowComponentID(windowID xproto.Window) string {
	return fmt.Sprintf("win-%d", windowID)
}

// detachDrag removes the drag grab installed by bindDrag.
func detachDrag(conn *Connection, windowID xproto.Window) {
	mousebind.Detach(conn.XUtil, windowID)
}
