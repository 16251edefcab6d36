// Package mcp exposes the slate board to AI agents over the Model
// Context Protocol. The server is a thin stdio front end: every tool
// call is forwarded to the daemon over IPC.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/slate/internal/ipc"
)

const (
	ServerName    = "slate"
	ServerVersion = "0.1.0"
)

// BoardClient is the slice of the IPC client the tools use. Tests
// substitute an in-process fake.
type BoardClient interface {
	GetStatus() (*ipc.StatusData, error)
	ListComponents() (*ipc.ComponentsData, error)
	AddComponent(payload ipc.AddPayload) (*ipc.ComponentInfo, error)
	RemoveComponent(id string) error
	MoveComponent(id string, x, y float64) (*ipc.PlacementData, error)
	LockComponent(id string) error
	UnlockComponent(id string) error
	HideComponent(id string) error
	ShowComponent(id string) error
	BringToFront(id string) error
	SendToBack(id string) error
	AlignComponents(ids []string, edge string) error
	DistributeComponents(ids []string, axis string) error
	FindPlacement(width, height float64) (*ipc.PlacementData, error)
	SaveSnapshot(name string) error
	LoadSnapshot(name string) error
	ListSnapshots() ([]string, error)
}

// Server is the MCP server for slate board manipulation.
type Server struct {
	mcpServer *mcpsdk.Server
	board     BoardClient
}

// NewServer creates a new MCP server talking to the daemon through
// the given client.
func NewServer(board BoardClient) *Server {
	s := &Server{board: board}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "board_status",
		Description: "Get board status: component count, surface size, grid and collision settings, and whether a drag is active.",
	}, s.handleBoardStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_components",
		Description: "List all placed components in back-to-front order with position, size, z-order, locked and visible flags.",
	}, s.handleListComponents)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "add_component",
		Description: "Add a component to the board. Position is clamped into the surface. Set auto_place to let the daemon find the first free slot. An id is generated when omitted.",
	}, s.handleAddComponent)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_component",
		Description: "Move a component to a new position. The requested position goes through grid snapping, boundary clamping and collision resolution; the settled position is returned.",
	}, s.handleMoveComponent)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_component",
		Description: "Remove a component from the board by id.",
	}, s.handleRemoveComponent)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_component_state",
		Description: "Change a component's state: lock/unlock (dragging), hide/show (visibility), front/back (stacking).",
	}, s.handleSetComponentState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "align_components",
		Description: "Align two or more components along an edge: left, right, top, bottom, center-horizontal or center-vertical.",
	}, s.handleAlignComponents)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "distribute_components",
		Description: "Distribute three or more components evenly along an axis. The outermost components stay fixed.",
	}, s.handleDistributeComponents)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "place_component",
		Description: "Find the first free position for a component of the given size without adding it.",
	}, s.handlePlaceComponent)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "save_snapshot",
		Description: "Save the current arrangement under a name for later restore.",
	}, s.handleSaveSnapshot)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "load_snapshot",
		Description: "Replace the current arrangement with a previously saved snapshot.",
	}, s.handleLoadSnapshot)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_snapshots",
		Description: "List saved snapshot names.",
	}, s.handleListSnapshots)
}
