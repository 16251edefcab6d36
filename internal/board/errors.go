package board

import "errors"

var (
	// ErrDuplicateID is returned when adding a component whose id is
	// already registered.
	ErrDuplicateID = errors.New("component id already registered")

	// ErrNotFound is returned when operating on an unknown component id.
	ErrNotFound = errors.New("component not found")
)
