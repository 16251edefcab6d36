package board

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/slate/internal/geom"
)

// stubHandle records transform pushes for assertions.
type stubHandle struct {
	size     geom.Size
	applied  []geom.Point
	appliedZ []int
	detached bool
}

func newStubHandle(w, h float64) *stubHandle {
	return &stubHandle{size: geom.Size{Width: w, Height: h}}
}

func (h *stubHandle) Size() geom.Size { return h.size }

func (h *stubHandle) Apply(pos geom.Point, z int) error {
	h.applied = append(h.applied, pos)
	h.appliedZ = append(h.appliedZ, z)
	return nil
}

func (h *stubHandle) Detach() { h.detached = true }

func TestRegistryAddRemoveCount(t *testing.T) {
	r := NewRegistry()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("c%d", i)
		if _, err := r.Add(id, newStubHandle(10, 10), geom.Point{X: float64(i) * 20}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if r.Len() != 5 {
		t.Fatalf("expected 5 components, got %d", r.Len())
	}

	if err := r.Remove("c1"); err != nil {
		t.Fatalf("remove c1: %v", err)
	}
	if err := r.Remove("c3"); err != nil {
		t.Fatalf("remove c3: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 components after removals, got %d", r.Len())
	}
}

func TestRegistryDuplicateID(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Add("a", newStubHandle(10, 10), geom.Point{}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := r.Add("a", newStubHandle(20, 20), geom.Point{X: 50})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	// Failed add must leave state unchanged.
	if r.Len() != 1 {
		t.Fatalf("expected 1 component, got %d", r.Len())
	}
	if got := r.Get("a").Size.Width; got != 10 {
		t.Fatalf("original component was replaced: width %v", got)
	}
}

func TestRegistryNotFound(t *testing.T) {
	r := NewRegistry()

	ops := map[string]func() error{
		"remove":       func() error { return r.Remove("missing") },
		"move":         func() error { return r.SetPosition("missing", geom.Point{}) },
		"lock":         func() error { return r.Lock("missing") },
		"unlock":       func() error { return r.Unlock("missing") },
		"hide":         func() error { return r.Hide("missing") },
		"show":         func() error { return r.Show("missing") },
		"bringToFront": func() error { return r.BringToFront("missing") },
		"sendToBack":   func() error { return r.SendToBack("missing") },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}

	if r.Get("missing") != nil {
		t.Fatalf("Get on unknown id should return nil")
	}
}

func TestRegistrySizeProbedOnce(t *testing.T) {
	r := NewRegistry()
	h := newStubHandle(120, 60)
	c, err := r.Add("a", h, geom.Point{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Later handle size changes must not leak into the record.
	h.size = geom.Size{Width: 999, Height: 999}
	if c.Size.Width != 120 || c.Size.Height != 60 {
		t.Fatalf("size changed after registration: %+v", c.Size)
	}
}

func TestRegistryAppliesTransforms(t *testing.T) {
	r := NewRegistry()
	h := newStubHandle(10, 10)
	if _, err := r.Add("a", h, geom.Point{X: 1, Y: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(h.applied) != 1 || h.applied[0] != (geom.Point{X: 1, Y: 2}) {
		t.Fatalf("add did not push initial transform: %+v", h.applied)
	}

	if err := r.SetPosition("a", geom.Point{X: 30, Y: 40}); err != nil {
		t.Fatalf("move: %v", err)
	}
	last := h.applied[len(h.applied)-1]
	if last != (geom.Point{X: 30, Y: 40}) {
		t.Fatalf("move did not push transform: %+v", last)
	}

	if err := r.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !h.detached {
		t.Fatalf("remove did not detach handle")
	}
}

func TestBringToFront(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := r.Add(id, newStubHandle(10, 10), geom.Point{}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	if err := r.BringToFront("a"); err != nil {
		t.Fatalf("bringToFront: %v", err)
	}

	a := r.Get("a")
	for _, other := range []string{"b", "c"} {
		if a.Z <= r.Get(other).Z {
			t.Fatalf("a.Z=%d not above %s.Z=%d", a.Z, other, r.Get(other).Z)
		}
	}

	// Repeating without intervening changes keeps a on top.
	z := a.Z
	if err := r.BringToFront("a"); err != nil {
		t.Fatalf("second bringToFront: %v", err)
	}
	if a.Z != z {
		t.Fatalf("repeated bringToFront changed z from %d to %d", z, a.Z)
	}
}

func TestSendToBackPreservesRelativeOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := r.Add(id, newStubHandle(10, 10), geom.Point{}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	if err := r.SendToBack("c"); err != nil {
		t.Fatalf("sendToBack: %v", err)
	}

	order := r.All()
	got := []string{order[0].ID, order[1].ID, order[2].ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after sendToBack = %v, want %v", got, want)
		}
	}
	if r.Get("c").Z != 0 {
		t.Fatalf("c.Z = %d, want 0", r.Get("c").Z)
	}
}

func TestAllOrderedByZ(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"x", "y", "z"} {
		if _, err := r.Add(id, newStubHandle(10, 10), geom.Point{}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if err := r.BringToFront("x"); err != nil {
		t.Fatalf("bringToFront: %v", err)
	}

	all := r.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Z > all[i].Z {
			t.Fatalf("All() not ascending by z: %d before %d", all[i-1].Z, all[i].Z)
		}
	}
	if all[len(all)-1].ID != "x" {
		t.Fatalf("expected x on top, got %s", all[len(all)-1].ID)
	}
}

func TestClearDetachesAll(t *testing.T) {
	r := NewRegistry()
	handles := make([]*stubHandle, 3)
	for i := range handles {
		handles[i] = newStubHandle(10, 10)
		if _, err := r.Add(fmt.Sprintf("c%d", i), handles[i], geom.Point{}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
	for i, h := range handles {
		if !h.detached {
			t.Fatalf("handle %d not detached", i)
		}
	}
}
