package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/1broseidon/slate/internal/ipc"
)

// fakeBoard records calls and serves canned data so handlers can be
// tested without a running daemon.
type fakeBoard struct {
	components []ipc.ComponentInfo
	snapshots  []string
	calls      []string
	failWith   error
}

func (f *fakeBoard) call(name string) error {
	f.calls = append(f.calls, name)
	return f.failWith
}

func (f *fakeBoard) GetStatus() (*ipc.StatusData, error) {
	if err := f.call("status"); err != nil {
		return nil, err
	}
	return &ipc.StatusData{
		ComponentCount: len(f.components),
		SurfaceWidth:   800,
		SurfaceHeight:  600,
		GridSize:       10,
		SnapToGrid:     true,
		Collisions:     true,
		DaemonRunning:  true,
	}, nil
}

func (f *fakeBoard) ListComponents() (*ipc.ComponentsData, error) {
	if err := f.call("list"); err != nil {
		return nil, err
	}
	return &ipc.ComponentsData{Components: f.components}, nil
}

func (f *fakeBoard) AddComponent(payload ipc.AddPayload) (*ipc.ComponentInfo, error) {
	if err := f.call("add:" + payload.ID); err != nil {
		return nil, err
	}
	info := ipc.ComponentInfo{
		ID: payload.ID, Kind: payload.Kind,
		X: payload.X, Y: payload.Y,
		Width: payload.Width, Height: payload.Height,
		Z: len(f.components) + 1, Visible: true,
	}
	f.components = append(f.components, info)
	return &info, nil
}

func (f *fakeBoard) RemoveComponent(id string) error { return f.call("remove:" + id) }

func (f *fakeBoard) MoveComponent(id string, x, y float64) (*ipc.PlacementData, error) {
	if err := f.call(fmt.Sprintf("move:%s", id)); err != nil {
		return nil, err
	}
	// Mimic 10-unit snapping so the handler's passthrough is observable.
	snap := func(v float64) float64 { return float64(int((v+5)/10)) * 10 }
	return &ipc.PlacementData{X: snap(x), Y: snap(y)}, nil
}

func (f *fakeBoard) LockComponent(id string) error   { return f.call("lock:" + id) }
func (f *fakeBoard) UnlockComponent(id string) error { return f.call("unlock:" + id) }
func (f *fakeBoard) HideComponent(id string) error   { return f.call("hide:" + id) }
func (f *fakeBoard) ShowComponent(id string) error   { return f.call("show:" + id) }
func (f *fakeBoard) BringToFront(id string) error    { return f.call("front:" + id) }
func (f *fakeBoard) SendToBack(id string) error      { return f.call("back:" + id) }

func (f *fakeBoard) AlignComponents(ids []string, edge string) error {
	return f.call(fmt.Sprintf("align:%s:%d", edge, len(ids)))
}

func (f *fakeBoard) DistributeComponents(ids []string, axis string) error {
	return f.call(fmt.Sprintf("distribute:%s:%d", axis, len(ids)))
}

func (f *fakeBoard) FindPlacement(width, height float64) (*ipc.PlacementData, error) {
	if err := f.call("place"); err != nil {
		return nil, err
	}
	return &ipc.PlacementData{X: 20, Y: 0}, nil
}

func (f *fakeBoard) SaveSnapshot(name string) error {
	if err := f.call("snapshot-save:" + name); err != nil {
		return err
	}
	f.snapshots = append(f.snapshots, name)
	return nil
}

func (f *fakeBoard) LoadSnapshot(name string) error { return f.call("snapshot-load:" + name) }

func (f *fakeBoard) ListSnapshots() ([]string, error) {
	if err := f.call("snapshot-list"); err != nil {
		return nil, err
	}
	return f.snapshots, nil
}

func newTestServer() (*Server, *fakeBoard) {
	board := &fakeBoard{}
	return NewServer(board), board
}

func TestBoardStatusTool(t *testing.T) {
	s, _ := newTestServer()

	_, out, err := s.handleBoardStatus(context.Background(), nil, BoardStatusInput{})
	if err != nil {
		t.Fatalf("board_status: %v", err)
	}
	if out.SurfaceWidth != 800 || !out.SnapToGrid {
		t.Fatalf("out = %+v", out)
	}
}

func TestAddComponentGeneratesID(t *testing.T) {
	s, board := newTestServer()

	_, out, err := s.handleAddComponent(context.Background(), nil, AddComponentInput{Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("add_component: %v", err)
	}
	if out.Component.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(board.components) != 1 {
		t.Fatalf("component not forwarded to daemon")
	}

	_, out2, err := s.handleAddComponent(context.Background(), nil, AddComponentInput{ID: "note", Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("add_component with id: %v", err)
	}
	if out2.Component.ID != "note" {
		t.Fatalf("explicit id not preserved: %q", out2.Component.ID)
	}

	if _, _, err := s.handleAddComponent(context.Background(), nil, AddComponentInput{Width: 0, Height: 10}); err == nil {
		t.Fatalf("expected error for non-positive size")
	}
}

func TestMoveComponentReturnsSettledPosition(t *testing.T) {
	s, _ := newTestServer()

	_, out, err := s.handleMoveComponent(context.Background(), nil, MoveComponentInput{ID: "a", X: 473, Y: 128})
	if err != nil {
		t.Fatalf("move_component: %v", err)
	}
	if out.X != 470 || out.Y != 130 {
		t.Fatalf("settled = %+v", out)
	}

	if _, _, err := s.handleMoveComponent(context.Background(), nil, MoveComponentInput{X: 1, Y: 2}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestSetComponentStateRouting(t *testing.T) {
	s, board := newTestServer()

	for _, action := range []string{"lock", "unlock", "hide", "show", "front", "back"} {
		if _, _, err := s.handleSetComponentState(context.Background(), nil, SetComponentStateInput{ID: "a", Action: action}); err != nil {
			t.Fatalf("action %s: %v", action, err)
		}
	}
	want := []string{"lock:a", "unlock:a", "hide:a", "show:a", "front:a", "back:a"}
	if len(board.calls) != len(want) {
		t.Fatalf("calls = %v", board.calls)
	}
	for i, call := range want {
		if board.calls[i] != call {
			t.Fatalf("call %d = %q, want %q", i, board.calls[i], call)
		}
	}

	if _, _, err := s.handleSetComponentState(context.Background(), nil, SetComponentStateInput{ID: "a", Action: "rotate"}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestAlignRequiresTwoIDs(t *testing.T) {
	s, _ := newTestServer()

	if _, _, err := s.handleAlignComponents(context.Background(), nil, AlignComponentsInput{IDs: []string{"a"}, Edge: "left"}); err == nil {
		t.Fatalf("expected error for single id")
	}
	_, out, err := s.handleAlignComponents(context.Background(), nil, AlignComponentsInput{IDs: []string{"a", "b"}, Edge: "left"})
	if err != nil {
		t.Fatalf("align_components: %v", err)
	}
	if out.Aligned != 2 {
		t.Fatalf("aligned = %d", out.Aligned)
	}
}

func TestSnapshotTools(t *testing.T) {
	s, board := newTestServer()

	if _, _, err := s.handleSaveSnapshot(context.Background(), nil, SaveSnapshotInput{Name: "desk"}); err != nil {
		t.Fatalf("save_snapshot: %v", err)
	}
	_, names, err := s.handleListSnapshots(context.Background(), nil, ListSnapshotsInput{})
	if err != nil {
		t.Fatalf("list_snapshots: %v", err)
	}
	if len(names.Names) != 1 || names.Names[0] != "desk" {
		t.Fatalf("names = %v", names.Names)
	}

	board.components = append(board.components, ipc.ComponentInfo{ID: "a"})
	_, out, err := s.handleLoadSnapshot(context.Background(), nil, LoadSnapshotInput{Name: "desk"})
	if err != nil {
		t.Fatalf("load_snapshot: %v", err)
	}
	if out.Components != 1 {
		t.Fatalf("components = %d", out.Components)
	}
}

func TestToolErrorsPropagate(t *testing.T) {
	s, board := newTestServer()
	board.failWith = fmt.Errorf("daemon gone")

	if _, _, err := s.handleListComponents(context.Background(), nil, ListComponentsInput{}); err == nil {
		t.Fatalf("expected daemon error to propagate")
	}
}
