package engine

import (
	"errors"
	"testing"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/constraint"
	"github.com/1broseidon/slate/internal/geom"
	"github.com/1broseidon/slate/internal/layoutops"
	"github.com/1broseidon/slate/internal/pointer"
	"github.com/1broseidon/slate/internal/snapshot"
)

type boxHandle struct{ size geom.Size }

func (h boxHandle) Size() geom.Size             { return h.size }
func (h boxHandle) Apply(geom.Point, int) error { return nil }
func (h boxHandle) Detach()                     {}

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(constraint.DefaultConfig(geom.Rect{Width: 800, Height: 600}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := constraint.DefaultConfig(geom.Rect{Width: 800, Height: 600})
	cfg.GridSize = 0
	if _, err := New(cfg); !errors.Is(err, constraint.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestAddClampsIntoSurface(t *testing.T) {
	m := newManager(t)
	c, err := m.Add("a", boxHandle{geom.Size{Width: 100, Height: 50}}, geom.Point{X: 900, Y: -40})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Pos.X != 700 || c.Pos.Y != 0 {
		t.Fatalf("pos = %v, want (700,0)", c.Pos)
	}
}

func TestMoveRunsConstraintPipeline(t *testing.T) {
	m := newManager(t)
	if _, err := m.Add("a", boxHandle{geom.Size{Width: 100, Height: 50}}, geom.Point{X: 50, Y: 50}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// 473 snaps to 470 on the default 10-unit grid; 590 clamps to the
	// 550 maximum for a 50-tall component.
	settled, err := m.Move("a", geom.Point{X: 473, Y: 590})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if settled.X != 470 || settled.Y != 550 {
		t.Fatalf("settled = %v, want (470,550)", settled)
	}
	if got := m.Get("a").Pos; got != settled {
		t.Fatalf("registry pos = %v, want %v", got, settled)
	}
}

func TestMoveRevertsOnCollision(t *testing.T) {
	m := newManager(t)
	size := boxHandle{geom.Size{Width: 100, Height: 100}}
	if _, err := m.Add("a", size, geom.Point{}); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if _, err := m.Add("b", size, geom.Point{X: 150, Y: 0}); err != nil {
		t.Fatalf("add b: %v", err)
	}

	settled, err := m.Move("a", geom.Point{X: 140, Y: 0})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	a, b := m.Get("a"), m.Get("b")
	if geom.Overlap(a.Rect(), b.Rect()) {
		t.Fatalf("components overlap after move: a=%v b=%v", a.Rect(), b.Rect())
	}
	if got := a.Pos; got != settled {
		t.Fatalf("registry pos = %v, want %v", got, settled)
	}
}

func TestMoveUnknownComponent(t *testing.T) {
	m := newManager(t)
	if _, err := m.Move("ghost", geom.Point{}); !errors.Is(err, board.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPointerFlowThroughManager(t *testing.T) {
	m := newManager(t)
	if _, err := m.Add("a", boxHandle{geom.Size{Width: 100, Height: 50}}, geom.Point{X: 50, Y: 50}); err != nil {
		t.Fatalf("add: %v", err)
	}

	var moved []geom.Point
	m.Subscribe(pointer.ListenerFuncs{
		OnMove: func(id string, pos geom.Point) { moved = append(moved, pos) },
	})

	if !m.PointerDown(pointer.Mouse(75, 75)) {
		t.Fatalf("expected drag to start")
	}
	if id, ok := m.Dragging(); !ok || id != "a" {
		t.Fatalf("Dragging = (%q,%v)", id, ok)
	}
	m.PointerMove(pointer.Mouse(275, 175))
	m.PointerUp(pointer.Mouse(275, 175))

	if id, ok := m.Dragging(); ok {
		t.Fatalf("session still active for %q", id)
	}
	if len(moved) != 1 || moved[0] != (geom.Point{X: 250, Y: 150}) {
		t.Fatalf("moved = %v", moved)
	}
}

func TestReconfigureRejectsInvalid(t *testing.T) {
	m := newManager(t)
	cfg := m.Config()
	cfg.GridSize = -1
	if err := m.Reconfigure(cfg); !errors.Is(err, constraint.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if m.Config().GridSize != constraint.DefaultGridSize {
		t.Fatalf("config mutated after failed reconfigure")
	}
}

func TestReconfigureSwapsGrid(t *testing.T) {
	m := newManager(t)
	cfg := m.Config()
	cfg.GridSize = 25
	cfg.CollisionDetection = false
	if err := m.Reconfigure(cfg); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	if _, err := m.Add("a", boxHandle{geom.Size{Width: 100, Height: 50}}, geom.Point{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	settled, err := m.Move("a", geom.Point{X: 113, Y: 0})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if settled.X != 125 {
		t.Fatalf("settled.X = %v, want 125", settled.X)
	}
}

func TestSnapshotRoundTripThroughManager(t *testing.T) {
	m := newManager(t)
	if _, err := m.Add("a", boxHandle{geom.Size{Width: 100, Height: 50}}, geom.Point{X: 50, Y: 50}); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if _, err := m.Add("b", boxHandle{geom.Size{Width: 80, Height: 80}}, geom.Point{X: 300, Y: 200}); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if err := m.Lock("b"); err != nil {
		t.Fatalf("lock: %v", err)
	}

	records := m.Serialize()
	m.Clear()
	m.Restore(records, func(rec snapshot.Record) (board.Handle, error) {
		return boxHandle{rec.Size}, nil
	})

	if len(m.All()) != 2 {
		t.Fatalf("restored %d components, want 2", len(m.All()))
	}
	b := m.Get("b")
	if b == nil || !b.Locked || b.Pos != (geom.Point{X: 300, Y: 200}) {
		t.Fatalf("b not restored faithfully: %+v", b)
	}
}

func TestFindPlacementSkipsOccupied(t *testing.T) {
	m := newManager(t)
	if _, err := m.Add("a", boxHandle{geom.Size{Width: 100, Height: 100}}, geom.Point{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	pos := m.FindPlacement(geom.Size{Width: 100, Height: 100})
	if pos == (geom.Point{}) {
		t.Fatalf("placement landed on occupied origin")
	}
}

func TestConfigurePlacementChangesStride(t *testing.T) {
	m := newManager(t)
	if _, err := m.Add("a", boxHandle{geom.Size{Width: 100, Height: 100}}, geom.Point{}); err != nil {
		t.Fatalf("add: %v", err)
	}

	m.ConfigurePlacement(30, 0)
	pos := m.FindPlacement(geom.Size{Width: 50, Height: 50})
	want := geom.Point{X: 120, Y: 0}
	if pos != want {
		t.Fatalf("placement %v, want %v", pos, want)
	}
}

func TestAlignPushesPositions(t *testing.T) {
	m := newManager(t)
	size := boxHandle{geom.Size{Width: 50, Height: 50}}
	if _, err := m.Add("a", size, geom.Point{X: 10, Y: 10}); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if _, err := m.Add("b", size, geom.Point{X: 200, Y: 90}); err != nil {
		t.Fatalf("add b: %v", err)
	}

	if err := m.Align([]string{"a", "b"}, layoutops.EdgeLeft); err != nil {
		t.Fatalf("align: %v", err)
	}
	if m.Get("a").Pos.X != 10 || m.Get("b").Pos.X != 10 {
		t.Fatalf("left align failed: a=%v b=%v", m.Get("a").Pos, m.Get("b").Pos)
	}

	if err := m.Align([]string{"a", "ghost"}, layoutops.EdgeLeft); !errors.Is(err, board.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDistributeThroughManager(t *testing.T) {
	m := newManager(t)
	size := boxHandle{geom.Size{Width: 10, Height: 10}}
	for _, sp := range []struct {
		id string
		x  float64
	}{{"a", 0}, {"b", 50}, {"c", 200}} {
		if _, err := m.Add(sp.id, size, geom.Point{X: sp.x}); err != nil {
			t.Fatalf("add %s: %v", sp.id, err)
		}
	}
	if err := m.Distribute([]string{"a", "b", "c"}, layoutops.AxisHorizontal); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if m.Get("b").Pos.X != 100 {
		t.Fatalf("b.X = %v, want 100", m.Get("b").Pos.X)
	}
	if err := m.Distribute([]string{"a", "b"}, layoutops.AxisHorizontal); err == nil {
		t.Fatalf("expected error for fewer than three components")
	}
}

func TestClearCancelsDrag(t *testing.T) {
	m := newManager(t)
	if _, err := m.Add("a", boxHandle{geom.Size{Width: 100, Height: 50}}, geom.Point{X: 50, Y: 50}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !m.PointerDown(pointer.Touch(75, 75)) {
		t.Fatalf("expected drag to start")
	}
	m.Clear()
	if id, ok := m.Dragging(); ok {
		t.Fatalf("drag still active for %q after clear", id)
	}
	if len(m.All()) != 0 {
		t.Fatalf("components remain after clear")
	}
}
