package mcp

// BoardStatusInput is the input for the board_status tool.
type BoardStatusInput struct{}

// BoardStatusOutput is the output for the board_status tool.
type BoardStatusOutput struct {
	ComponentCount int     `json:"component_count"`
	DraggingID     string  `json:"dragging_id,omitempty"`
	SurfaceWidth   float64 `json:"surface_width"`
	SurfaceHeight  float64 `json:"surface_height"`
	GridSize       float64 `json:"grid_size"`
	SnapToGrid     bool    `json:"snap_to_grid"`
	Collisions     bool    `json:"collision_detection"`
}

// ListComponentsInput is the input for the list_components tool.
type ListComponentsInput struct{}

// ComponentInfo describes one placed component.
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

// ListComponentsOutput is the output for the list_components tool.
type ListComponentsOutput struct {
	Components []ComponentInfo `json:"components"`
}

// AddComponentInput is the input for the add_component tool.
type AddComponentInput struct {
	ID        string  `json:"id,omitempty" jsonschema:"Component id. Generated when omitted."`
	Kind      string  `json:"kind,omitempty" jsonschema:"Opaque component kind tag (e.g. note, image)"`
	X         float64 `json:"x,omitempty" jsonschema:"Initial x position (surface-local, top-left)"`
	Y         float64 `json:"y,omitempty" jsonschema:"Initial y position (surface-local, top-left)"`
	Width     float64 `json:"width" jsonschema:"required,Component width in surface units"`
	Height    float64 `json:"height" jsonschema:"required,Component height in surface units"`
	AutoPlace bool    `json:"auto_place,omitempty" jsonschema:"When true, the daemon picks the first free position and x/y are ignored"`
}

// AddComponentOutput is the output for the add_component tool.
type AddComponentOutput struct {
	Component ComponentInfo `json:"component"`
}

// MoveComponentInput is the input for the move_component tool.
type MoveComponentInput struct {
	ID string  `json:"id" jsonschema:"required,Component id to move"`
	X  float64 `json:"x" jsonschema:"required,Requested x position"`
	Y  float64 `json:"y" jsonschema:"required,Requested y position"`
}

// MoveComponentOutput is the output for the move_component tool. The
// settled position may differ from the request after grid snapping,
// boundary clamping and collision resolution.
type MoveComponentOutput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RemoveComponentInput is the input for the remove_component tool.
type RemoveComponentInput struct {
	ID string `json:"id" jsonschema:"required,Component id to remove"`
}

// RemoveComponentOutput is the output for the remove_component tool.
type RemoveComponentOutput struct {
	Removed bool `json:"removed"`
}

// SetComponentStateInput is the input for the set_component_state tool.
type SetComponentStateInput struct {
	ID     string `json:"id" jsonschema:"required,Component id"`
	Action string `json:"action" jsonschema:"required,One of: lock, unlock, hide, show, front, back"`
}

// SetComponentStateOutput is the output for the set_component_state tool.
type SetComponentStateOutput struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// AlignComponentsInput is the input for the align_components tool.
type AlignComponentsInput struct {
	IDs  []string `json:"ids" jsonschema:"required,Component ids to align (two or more)"`
	Edge string   `json:"edge" jsonschema:"required,One of: left, right, top, bottom, center-horizontal, center-vertical"`
}

// AlignComponentsOutput is the output for the align_components tool.
type AlignComponentsOutput struct {
	Aligned int `json:"aligned"`
}

// DistributeComponentsInput is the input for the distribute_components tool.
type DistributeComponentsInput struct {
	IDs  []string `json:"ids" jsonschema:"required,Component ids to distribute (three or more)"`
	Axis string   `json:"axis" jsonschema:"required,One of: horizontal, vertical"`
}

// DistributeComponentsOutput is the output for the distribute_components tool.
type DistributeComponentsOutput struct {
	Distributed int `json:"distributed"`
}

// PlaceComponentInput is the input for the place_component tool.
type PlaceComponentInput struct {
	Width  float64 `json:"width" jsonschema:"required,Proposed component width"`
	Height float64 `json:"height" jsonschema:"required,Proposed component height"`
}

// PlaceComponentOutput is the output for the place_component tool.
type PlaceComponentOutput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SaveSnapshotInput is the input for the save_snapshot tool.
type SaveSnapshotInput struct {
	Name string `json:"name" jsonschema:"required,Snapshot name"`
}

// SaveSnapshotOutput is the output for the save_snapshot tool.
type SaveSnapshotOutput struct {
	Name string `json:"name"`
}

// LoadSnapshotInput is the input for the load_snapshot tool.
type LoadSnapshotInput struct {
	Name string `json:"name" jsonschema:"required,Snapshot name to restore"`
}

// LoadSnapshotOutput is the output for the load_snapshot tool.
type LoadSnapshotOutput struct {
	Name       string `json:"name"`
	Components int    `json:"components"`
}

// ListSnapshotsInput is the input for the list_snapshots tool.
type ListSnapshotsInput struct{}

// ListSnapshotsOutput is the output for the list_snapshots tool.
type ListSnapshotsOutput struct {
	Names []string `json:"names"`
}
