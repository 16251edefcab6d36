package layoutops

import (
	"testing"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/geom"
)

func component(id string, x, y, w, h float64) *board.Component {
	return &board.Component{
		ID:      id,
		Pos:     geom.Point{X: x, Y: y},
		Size:    geom.Size{Width: w, Height: h},
		Visible: true,
	}
}

func TestFindOptimalPlacementEmptySurface(t *testing.T) {
	bounds := geom.Rect{Width: 800, Height: 600}
	got := FindOptimalPlacement(nil, geom.Size{Width: 100, Height: 100}, bounds, 0, -1)
	if got != (geom.Point{X: 0, Y: 0}) {
		t.Fatalf("empty surface should place at origin, got %v", got)
	}
}

func TestFindOptimalPlacementSkipsOccupied(t *testing.T) {
	bounds := geom.Rect{Width: 800, Height: 600}
	existing := []*board.Component{component("a", 0, 0, 100, 100)}

	got := FindOptimalPlacement(existing, geom.Size{Width: 50, Height: 50}, bounds, 0, -1)
	// Raster scan: first free x on the first row is 100 (20-unit steps).
	want := geom.Point{X: 100, Y: 0}
	if got != want {
		t.Fatalf("placement %v, want %v", got, want)
	}

	rect := geom.RectAt(got, geom.Size{Width: 50, Height: 50})
	if geom.Overlap(rect, existing[0].Rect()) {
		t.Fatalf("placement overlaps existing component")
	}
}

func TestFindOptimalPlacementIgnoresHidden(t *testing.T) {
	bounds := geom.Rect{Width: 800, Height: 600}
	hidden := component("a", 0, 0, 100, 100)
	hidden.Visible = false

	got := FindOptimalPlacement([]*board.Component{hidden}, geom.Size{Width: 50, Height: 50}, bounds, 0, -1)
	if got != (geom.Point{X: 0, Y: 0}) {
		t.Fatalf("hidden components must not block placement, got %v", got)
	}
}

func TestFindOptimalPlacementSaturatedFallsBack(t *testing.T) {
	bounds := geom.Rect{Width: 200, Height: 200}
	existing := []*board.Component{component("wall", 0, 0, 200, 200)}

	got := FindOptimalPlacement(existing, geom.Size{Width: 50, Height: 50}, bounds, 0, -1)
	want := geom.Point{X: FallbackMargin, Y: FallbackMargin}
	if got != want {
		t.Fatalf("saturated surface should fall back to %v, got %v", want, got)
	}
}

func TestAlignLeft(t *testing.T) {
	set := []*board.Component{
		component("a", 30, 0, 50, 50),
		component("b", 10, 100, 50, 50),
		component("c", 70, 200, 50, 50),
	}
	if err := Align(set, EdgeLeft); err != nil {
		t.Fatalf("align: %v", err)
	}
	for _, c := range set {
		if c.Pos.X != 10 {
			t.Fatalf("%s.X = %v, want 10", c.ID, c.Pos.X)
		}
	}
}

func TestAlignRight(t *testing.T) {
	set := []*board.Component{
		component("a", 30, 0, 50, 50), // right edge 80
		component("b", 10, 100, 90, 50), // right edge 100
	}
	if err := Align(set, EdgeRight); err != nil {
		t.Fatalf("align: %v", err)
	}
	for _, c := range set {
		if got := c.Rect().Right(); got != 100 {
			t.Fatalf("%s right edge = %v, want 100", c.ID, got)
		}
	}
}

func TestAlignTopBottom(t *testing.T) {
	set := []*board.Component{
		component("a", 0, 40, 50, 20), // bottom 60
		component("b", 100, 10, 50, 80), // bottom 90
	}
	if err := Align(set, EdgeTop); err != nil {
		t.Fatalf("align top: %v", err)
	}
	if set[0].Pos.Y != 10 || set[1].Pos.Y != 10 {
		t.Fatalf("top align: y = %v, %v, want 10", set[0].Pos.Y, set[1].Pos.Y)
	}

	if err := Align(set, EdgeBottom); err != nil {
		t.Fatalf("align bottom: %v", err)
	}
	if set[0].Rect().Bottom() != set[1].Rect().Bottom() {
		t.Fatalf("bottom edges differ: %v vs %v", set[0].Rect().Bottom(), set[1].Rect().Bottom())
	}
}

func TestAlignCenterHorizontal(t *testing.T) {
	set := []*board.Component{
		component("a", 0, 0, 100, 50), // center x 50
		component("b", 100, 100, 100, 50), // center x 150
	}
	if err := Align(set, EdgeCenterH); err != nil {
		t.Fatalf("align: %v", err)
	}
	// Mean center is 100; both centers move there.
	for _, c := range set {
		if got := c.Rect().Center().X; got != 100 {
			t.Fatalf("%s center.X = %v, want 100", c.ID, got)
		}
	}
}

func TestAlignUnknownEdge(t *testing.T) {
	set := []*board.Component{component("a", 0, 0, 10, 10)}
	if err := Align(set, Edge("diagonal")); err == nil {
		t.Fatalf("expected error for unknown edge")
	}
}

func TestDistributeRequiresThree(t *testing.T) {
	set := []*board.Component{
		component("a", 0, 0, 10, 10),
		component("b", 100, 0, 10, 10),
	}
	if err := Distribute(set, AxisHorizontal); err == nil {
		t.Fatalf("distribute on 2 components must fail")
	}
}

func TestDistributeHorizontal(t *testing.T) {
	a := component("a", 0, 0, 10, 10)
	b := component("b", 50, 0, 10, 10)
	c := component("c", 200, 0, 10, 10)

	if err := Distribute([]*board.Component{a, b, c}, AxisHorizontal); err != nil {
		t.Fatalf("distribute: %v", err)
	}

	if a.Pos.X != 0 || c.Pos.X != 200 {
		t.Fatalf("first and last must not move: a=%v c=%v", a.Pos.X, c.Pos.X)
	}
	if b.Pos.X != 100 {
		t.Fatalf("b.X = %v, want 100", b.Pos.X)
	}
}

func TestDistributeVertical(t *testing.T) {
	a := component("a", 0, 10, 10, 10)
	b := component("b", 0, 20, 10, 10)
	c := component("c", 0, 400, 10, 10)
	d := component("d", 0, 130, 10, 10)

	if err := Distribute([]*board.Component{a, b, c, d}, AxisVertical); err != nil {
		t.Fatalf("distribute: %v", err)
	}

	// Sorted order a(10) b(20) d(130) c(400); span 390, gap 130.
	if a.Pos.Y != 10 || c.Pos.Y != 400 {
		t.Fatalf("endpoints moved: a=%v c=%v", a.Pos.Y, c.Pos.Y)
	}
	if b.Pos.Y != 140 {
		t.Fatalf("b.Y = %v, want 140", b.Pos.Y)
	}
	if d.Pos.Y != 270 {
		t.Fatalf("d.Y = %v, want 270", d.Pos.Y)
	}
}

func TestDistributeUnknownAxis(t *testing.T) {
	set := []*board.Component{
		component("a", 0, 0, 10, 10),
		component("b", 50, 0, 10, 10),
		component("c", 100, 0, 10, 10),
	}
	if err := Distribute(set, Axis("depth")); err == nil {
		t.Fatalf("expected error for unknown axis")
	}
}

func TestFindOptimalPlacementCustomStride(t *testing.T) {
	bounds := geom.Rect{Width: 800, Height: 600}
	existing := []*board.Component{component("a", 0, 0, 100, 100)}

	got := FindOptimalPlacement(existing, geom.Size{Width: 50, Height: 50}, bounds, 50, -1)
	// With a 50-unit stride the first free x on the first row is 100.
	want := geom.Point{X: 100, Y: 0}
	if got != want {
		t.Fatalf("placement %v, want %v", got, want)
	}

	got = FindOptimalPlacement(existing, geom.Size{Width: 50, Height: 50}, bounds, 30, -1)
	// A 30-unit stride lands on 120 before clearing the occupied block.
	want = geom.Point{X: 120, Y: 0}
	if got != want {
		t.Fatalf("placement %v, want %v", got, want)
	}
}
