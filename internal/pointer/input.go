package pointer

import "github.com/1broseidon/slate/internal/geom"

// Source identifies the input modality that produced an event. Mouse
// and touch are unified into one canonical position before the state
// machine sees them; the source only matters for session ownership.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// String returns the source name for logs.
func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Input is a canonical pointer sample: one surface-local position
// tagged with the modality that produced it.
type Input struct {
	Source Source
	Pos    geom.Point
}

// Mouse builds an Input from a mouse event position.
func Mouse(x, y float64) Input {
	return Input{Source: SourceMouse, Pos: geom.Point{X: x, Y: y}}
}

// Touch builds an Input from a touch event position.
func Touch(x, y float64) Input {
	return Input{Source: SourceTouch, Pos: geom.Point{X: x, Y: y}}
}
