package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/engine"
	"github.com/1broseidon/slate/internal/geom"
	"github.com/1broseidon/slate/internal/layoutops"
	"github.com/1broseidon/slate/internal/pointer"
	"github.com/1broseidon/slate/internal/runtimepath"
	"github.com/1broseidon/slate/internal/snapshot"
)

// HandleFactory creates a presentation handle for a component added
// over IPC. The X11 host spawns or adopts a window; headless hosts
// return an in-memory handle.
type HandleFactory func(req AddPayload) (board.Handle, error)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	mgr          *engine.Manager
	mgrMu        sync.Mutex
	handles      HandleFactory
	restore      snapshot.Factory
	store        *snapshot.Store
	reloadChan   chan struct{}
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server around a board manager. handles
// builds presentation handles for ADD; restore rebuilds them for
// SNAPSHOT_LOAD.
func NewServer(mgr *engine.Manager, store *snapshot.Store, handles HandleFactory, restore snapshot.Factory, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		mgr:        mgr,
		handles:    handles,
		restore:    restore,
		store:      store,
		reloadChan: reloadChan,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response. The
// manager expects single-goroutine access; every command runs under
// one mutex.
func (s *Server) handleCommand(req *Request) *Response {
	s.mgrMu.Lock()
	defer s.mgrMu.Unlock()

	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandList:
		return s.handleList()
	case CommandAdd:
		return s.handleAdd(req.Payload)
	case CommandRemove:
		return s.handleIDCommand(req.Payload, s.mgr.Remove)
	case CommandMove:
		return s.handleMove(req.Payload)
	case CommandLock:
		return s.handleIDCommand(req.Payload, s.mgr.Lock)
	case CommandUnlock:
		return s.handleIDCommand(req.Payload, s.mgr.Unlock)
	case CommandHide:
		return s.handleIDCommand(req.Payload, s.mgr.Hide)
	case CommandShow:
		return s.handleIDCommand(req.Payload, s.mgr.Show)
	case CommandBringToFront:
		return s.handleIDCommand(req.Payload, s.mgr.BringToFront)
	case CommandSendToBack:
		return s.handleIDCommand(req.Payload, s.mgr.SendToBack)
	case CommandAlign:
		return s.handleAlign(req.Payload)
	case CommandDistribute:
		return s.handleDistribute(req.Payload)
	case CommandPlace:
		return s.handlePlace(req.Payload)
	case CommandSnapshotSave:
		return s.handleSnapshotSave(req.Payload)
	case CommandSnapshotLoad:
		return s.handleSnapshotLoad(req.Payload)
	case CommandSnapshotList:
		return s.handleSnapshotList()
	case CommandSnapshotDelete:
		return s.handleSnapshotDelete(req.Payload)
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func componentInfo(c *board.Component) ComponentInfo {
	return ComponentInfo{
		ID:      c.ID,
		Kind:    c.Kind,
		X:       c.Pos.X,
		Y:       c.Pos.Y,
		Width:   c.Size.Width,
		Height:  c.Size.Height,
		Z:       c.Z,
		Locked:  c.Locked,
		Visible: c.Visible,
	}
}

func (s *Server) handleGetStatus() *Response {
	cfg := s.mgr.Config()
	status := StatusData{
		ComponentCount: len(s.mgr.All()),
		SurfaceWidth:   cfg.Bounds.Width,
		SurfaceHeight:  cfg.Bounds.Height,
		GridSize:       cfg.GridSize,
		SnapToGrid:     cfg.SnapToGrid,
		Collisions:     cfg.CollisionDetection,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:  true,
	}
	if id, ok := s.mgr.Dragging(); ok {
		status.DraggingID = id
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleList() *Response {
	all := s.mgr.All()
	infos := make([]ComponentInfo, len(all))
	for i, c := range all {
		infos[i] = componentInfo(c)
	}

	resp, _ := NewOKResponse(ComponentsData{Components: infos})
	return resp
}

func (s *Server) handleAdd(payload json.RawMessage) *Response {
	var req AddPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid add payload: %v", err))
	}
	if req.ID == "" {
		return NewErrorResponse("id is required")
	}
	if req.Width <= 0 || req.Height <= 0 {
		return NewErrorResponse("width and height must be positive")
	}

	pos := geom.Point{X: req.X, Y: req.Y}
	if req.AutoPlace {
		pos = s.mgr.FindPlacement(geom.Size{Width: req.Width, Height: req.Height})
	}

	handle, err := s.handles(req)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to create handle: %v", err))
	}

	c, err := s.mgr.Add(req.ID, handle, pos)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to add component: %v", err))
	}
	c.Kind = req.Kind
	c.Payload = req.Payload

	resp, _ := NewOKResponse(componentInfo(c))
	return resp
}

func (s *Server) handleIDCommand(payload json.RawMessage, op func(string) error) *Response {
	var req IDPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	if req.ID == "" {
		return NewErrorResponse("id is required")
	}
	if err := op(req.ID); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleMove(payload json.RawMessage) *Response {
	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if req.ID == "" {
		return NewErrorResponse("id is required")
	}

	settled, err := s.mgr.Move(req.ID, geom.Point{X: req.X, Y: req.Y})
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(PlacementData{X: settled.X, Y: settled.Y})
	return resp
}

func (s *Server) handleAlign(payload json.RawMessage) *Response {
	var req AlignPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid align payload: %v", err))
	}
	if err := s.mgr.Align(req.IDs, layoutops.Edge(req.Edge)); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleDistribute(payload json.RawMessage) *Response {
	var req DistributePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid distribute payload: %v", err))
	}
	if err := s.mgr.Distribute(req.IDs, layoutops.Axis(req.Axis)); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handlePlace(payload json.RawMessage) *Response {
	var req PlacePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid place payload: %v", err))
	}
	if req.Width <= 0 || req.Height <= 0 {
		return NewErrorResponse("width and height must be positive")
	}

	pos := s.mgr.FindPlacement(geom.Size{Width: req.Width, Height: req.Height})
	resp, _ := NewOKResponse(PlacementData{X: pos.X, Y: pos.Y})
	return resp
}

func (s *Server) handleSnapshotSave(payload json.RawMessage) *Response {
	var req SnapshotPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid snapshot payload: %v", err))
	}
	if err := s.store.Save(req.Name, s.mgr.Serialize()); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to save snapshot: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSnapshotLoad(payload json.RawMessage) *Response {
	var req SnapshotPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid snapshot payload: %v", err))
	}
	records, err := s.store.Load(req.Name)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to load snapshot: %v", err))
	}
	s.mgr.Restore(records, s.restore)

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSnapshotList() *Response {
	names, err := s.store.List()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list snapshots: %v", err))
	}

	resp, _ := NewOKResponse(SnapshotsData{Names: names})
	return resp
}

func (s *Server) handleSnapshotDelete(payload json.RawMessage) *Response {
	var req SnapshotPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid snapshot payload: %v", err))
	}
	if err := s.store.Delete(req.Name); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to delete snapshot: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleReload asks the daemon to re-read its configuration.
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// WithManager runs apply against the manager under the server's lock.
// The daemon uses it for config reloads and window adoption.
func (s *Server) WithManager(apply func(mgr *engine.Manager) error) error {
	s.mgrMu.Lock()
	defer s.mgrMu.Unlock()
	return apply(s.mgr)
}

// PointerDown forwards a host pointer press into the drag machine.
func (s *Server) PointerDown(in pointer.Input) bool {
	s.mgrMu.Lock()
	defer s.mgrMu.Unlock()
	return s.mgr.PointerDown(in)
}

// PointerMove forwards a host pointer motion.
func (s *Server) PointerMove(in pointer.Input) {
	s.mgrMu.Lock()
	defer s.mgrMu.Unlock()
	s.mgr.PointerMove(in)
}

// PointerUp forwards a host pointer release.
func (s *Server) PointerUp(in pointer.Input) {
	s.mgrMu.Lock()
	defer s.mgrMu.Unlock()
	s.mgr.PointerUp(in)
}

// PointerCancel forwards a host pointer cancel.
func (s *Server) PointerCancel() {
	s.mgrMu.Lock()
	defer s.mgrMu.Unlock()
	s.mgr.PointerCancel()
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
