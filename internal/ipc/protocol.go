package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandList           CommandType = "LIST"
	CommandAdd            CommandType = "ADD"
	CommandRemove         CommandType = "REMOVE"
	CommandMove           CommandType = "MOVE"
	CommandLock           CommandType = "LOCK"
	CommandUnlock         CommandType = "UNLOCK"
	CommandHide           CommandType = "HIDE"
	CommandShow           CommandType = "SHOW"
	CommandBringToFront   CommandType = "FRONT"
	CommandSendToBack     CommandType = "BACK"
	CommandAlign          CommandType = "ALIGN"
	CommandDistribute     CommandType = "DISTRIBUTE"
	CommandPlace          CommandType = "PLACE"
	CommandSnapshotSave   CommandType = "SNAPSHOT_SAVE"
	CommandSnapshotLoad   CommandType = "SNAPSHOT_LOAD"
	CommandSnapshotList   CommandType = "SNAPSHOT_LIST"
	CommandSnapshotDelete CommandType = "SNAPSHOT_DELETE"
	CommandReload         CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// ComponentInfo is the wire form of one placed component.
type ComponentInfo struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Z       int     `json:"z"`
	Locked  bool    `json:"locked"`
	Visible bool    `json:"visible"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ComponentCount int     `json:"component_count"`
	DraggingID     string  `json:"dragging_id,omitempty"`
	SurfaceWidth   float64 `json:"surface_width"`
	SurfaceHeight  float64 `json:"surface_height"`
	GridSize       float64 `json:"grid_size"`
	SnapToGrid     bool    `json:"snap_to_grid"`
	Collisions     bool    `json:"collision_detection"`
	UptimeSeconds  int64   `json:"uptime_seconds"`
	DaemonRunning  bool    `json:"daemon_running"`
}

// ComponentsData represents the data returned by LIST
type ComponentsData struct {
	Components []ComponentInfo `json:"components"`
}

// AddPayload represents the payload for the ADD command. When
// AutoPlace is set the daemon picks a free position and X/Y are
// ignored.
type AddPayload struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	AutoPlace bool    `json:"auto_place,omitempty"`
	Payload   any     `json:"payload,omitempty"`
}

// IDPayload carries the single component id most commands take.
type IDPayload struct {
	ID string `json:"id"`
}

// MovePayload represents the payload for the MOVE command.
type MovePayload struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// AlignPayload represents the payload for the ALIGN command.
type AlignPayload struct {
	IDs  []string `json:"ids"`
	Edge string   `json:"edge"`
}

// DistributePayload represents the payload for the DISTRIBUTE command.
type DistributePayload struct {
	IDs  []string `json:"ids"`
	Axis string   `json:"axis"`
}

// PlacePayload represents the payload for the PLACE command.
type PlacePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacementData represents the data returned by PLACE.
type PlacementData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SnapshotPayload names a stored snapshot.
type SnapshotPayload struct {
	Name string `json:"name"`
}

// SnapshotsData represents the data returned by SNAPSHOT_LIST.
type SnapshotsData struct {
	Names []string `json:"names"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
