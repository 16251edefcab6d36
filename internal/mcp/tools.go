package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/slate/internal/ipc"
)

func componentInfo(info ipc.ComponentInfo) ComponentInfo {
	return ComponentInfo{
		ID:      info.ID,
		Kind:    info.Kind,
		X:       info.X,
		Y:       info.Y,
		Width:   info.Width,
		Height:  info.Height,
		Z:       info.Z,
		Locked:  info.Locked,
		Visible: info.Visible,
	}
}

func (s *Server) handleBoardStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ BoardStatusInput) (*mcpsdk.CallToolResult, BoardStatusOutput, error) {
	status, err := s.board.GetStatus()
	if err != nil {
		return nil, BoardStatusOutput{}, err
	}
	return nil, BoardStatusOutput{
		ComponentCount: status.ComponentCount,
		DraggingID:     status.DraggingID,
		SurfaceWidth:   status.SurfaceWidth,
		SurfaceHeight:  status.SurfaceHeight,
		GridSize:       status.GridSize,
		SnapToGrid:     status.SnapToGrid,
		Collisions:     status.Collisions,
	}, nil
}

func (s *Server) handleListComponents(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListComponentsInput) (*mcpsdk.CallToolResult, ListComponentsOutput, error) {
	data, err := s.board.ListComponents()
	if err != nil {
		return nil, ListComponentsOutput{}, err
	}
	out := ListComponentsOutput{Components: make([]ComponentInfo, len(data.Components))}
	for i, info := range data.Components {
		out.Components[i] = componentInfo(info)
	}
	return nil, out, nil
}

func (s *Server) handleAddComponent(_ context.Context, _ *mcpsdk.CallToolRequest, args AddComponentInput) (*mcpsdk.CallToolResult, AddComponentOutput, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, AddComponentOutput{}, fmt.Errorf("width and height must be positive")
	}

	id := args.ID
	if id == "" {
		id = uuid.NewString()
	}

	info, err := s.board.AddComponent(ipc.AddPayload{
		ID:        id,
		Kind:      args.Kind,
		X:         args.X,
		Y:         args.Y,
		Width:     args.Width,
		Height:    args.Height,
		AutoPlace: args.AutoPlace,
	})
	if err != nil {
		return nil, AddComponentOutput{}, err
	}
	return nil, AddComponentOutput{Component: componentInfo(*info)}, nil
}

func (s *Server) handleMoveComponent(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveComponentInput) (*mcpsdk.CallToolResult, MoveComponentOutput, error) {
	if args.ID == "" {
		return nil, MoveComponentOutput{}, fmt.Errorf("id is required")
	}
	settled, err := s.board.MoveComponent(args.ID, args.X, args.Y)
	if err != nil {
		return nil, MoveComponentOutput{}, err
	}
	return nil, MoveComponentOutput{X: settled.X, Y: settled.Y}, nil
}

func (s *Server) handleRemoveComponent(_ context.Context, _ *mcpsdk.CallToolRequest, args RemoveComponentInput) (*mcpsdk.CallToolResult, RemoveComponentOutput, error) {
	if args.ID == "" {
		return nil, RemoveComponentOutput{}, fmt.Errorf("id is required")
	}
	if err := s.board.RemoveComponent(args.ID); err != nil {
		return nil, RemoveComponentOutput{}, err
	}
	return nil, RemoveComponentOutput{Removed: true}, nil
}

func (s *Server) handleSetComponentState(_ context.Context, _ *mcpsdk.CallToolRequest, args SetComponentStateInput) (*mcpsdk.CallToolResult, SetComponentStateOutput, error) {
	if args.ID == "" {
		return nil, SetComponentStateOutput{}, fmt.Errorf("id is required")
	}

	var err error
	switch args.Action {
	case "lock":
		err = s.board.LockComponent(args.ID)
	case "unlock":
		err = s.board.UnlockComponent(args.ID)
	case "hide":
		err = s.board.HideComponent(args.ID)
	case "show":
		err = s.board.ShowComponent(args.ID)
	case "front":
		err = s.board.BringToFront(args.ID)
	case "back":
		err = s.board.SendToBack(args.ID)
	default:
		return nil, SetComponentStateOutput{}, fmt.Errorf("unknown action %q; expected lock, unlock, hide, show, front or back", args.Action)
	}
	if err != nil {
		return nil, SetComponentStateOutput{}, err
	}
	return nil, SetComponentStateOutput{ID: args.ID, Action: args.Action}, nil
}

func (s *Server) handleAlignComponents(_ context.Context, _ *mcpsdk.CallToolRequest, args AlignComponentsInput) (*mcpsdk.CallToolResult, AlignComponentsOutput, error) {
	if len(args.IDs) < 2 {
		return nil, AlignComponentsOutput{}, fmt.Errorf("align needs at least two component ids")
	}
	if err := s.board.AlignComponents(args.IDs, args.Edge); err != nil {
		return nil, AlignComponentsOutput{}, err
	}
	return nil, AlignComponentsOutput{Aligned: len(args.IDs)}, nil
}

func (s *Server) handleDistributeComponents(_ context.Context, _ *mcpsdk.CallToolRequest, args DistributeComponentsInput) (*mcpsdk.CallToolResult, DistributeComponentsOutput, error) {
	if err := s.board.DistributeComponents(args.IDs, args.Axis); err != nil {
		return nil, DistributeComponentsOutput{}, err
	}
	return nil, DistributeComponentsOutput{Distributed: len(args.IDs)}, nil
}

func (s *Server) handlePlaceComponent(_ context.Context, _ *mcpsdk.CallToolRequest, args PlaceComponentInput) (*mcpsdk.CallToolResult, PlaceComponentOutput, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, PlaceComponentOutput{}, fmt.Errorf("width and height must be positive")
	}
	pos, err := s.board.FindPlacement(args.Width, args.Height)
	if err != nil {
		return nil, PlaceComponentOutput{}, err
	}
	return nil, PlaceComponentOutput{X: pos.X, Y: pos.Y}, nil
}

func (s *Server) handleSaveSnapshot(_ context.Context, _ *mcpsdk.CallToolRequest, args SaveSnapshotInput) (*mcpsdk.CallToolResult, SaveSnapshotOutput, error) {
	if err := s.board.SaveSnapshot(args.Name); err != nil {
		return nil, SaveSnapshotOutput{}, err
	}
	return nil, SaveSnapshotOutput{Name: args.Name}, nil
}

func (s *Server) handleLoadSnapshot(_ context.Context, _ *mcpsdk.CallToolRequest, args LoadSnapshotInput) (*mcpsdk.CallToolResult, LoadSnapshotOutput, error) {
	if err := s.board.LoadSnapshot(args.Name); err != nil {
		return nil, LoadSnapshotOutput{}, err
	}
	data, err := s.board.ListComponents()
	if err != nil {
		return nil, LoadSnapshotOutput{}, err
	}
	return nil, LoadSnapshotOutput{Name: args.Name, Components: len(data.Components)}, nil
}

func (s *Server) handleListSnapshots(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListSnapshotsInput) (*mcpsdk.CallToolResult, ListSnapshotsOutput, error) {
	names, err := s.board.ListSnapshots()
	if err != nil {
		return nil, ListSnapshotsOutput{}, err
	}
	return nil, ListSnapshotsOutput{Names: names}, nil
}
