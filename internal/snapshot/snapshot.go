// Package snapshot exports and restores full board arrangements. A
// snapshot is an ordered list of plain records; handles are never
// persisted and are recreated through a host-supplied factory on
// restore.
package snapshot

import (
	"log"
	"sort"

	"github.com/1broseidon/slate/internal/board"
	"github.com/1broseidon/slate/internal/geom"
)

// Record is the serialized form of one placed component.
type Record struct {
	ID      string     `json:"id"`
	Kind    string     `json:"kind,omitempty"`
	Pos     geom.Point `json:"pos"`
	Size    geom.Size  `json:"size"`
	Z       int        `json:"z"`
	Locked  bool       `json:"locked,omitempty"`
	Visible bool       `json:"visible"`
	Payload any        `json:"payload,omitempty"`
}

// Factory recreates a handle for a serialized record. Returning a nil
// handle (or an error) skips the record; the import continues.
type Factory func(Record) (board.Handle, error)

// Serialize captures every component in the registry as plain records,
// ordered ascending by z.
func Serialize(reg *board.Registry) []Record {
	all := reg.All()
	records := make([]Record, 0, len(all))
	for _, c := range all {
		records = append(records, Record{
			ID:      c.ID,
			Kind:    c.Kind,
			Pos:     c.Pos,
			Size:    c.Size,
			Z:       c.Z,
			Locked:  c.Locked,
			Visible: c.Visible,
			Payload: c.Payload,
		})
	}
	return records
}

// Restore clears the registry and rebuilds it from records, recreating
// each handle through the factory. Records are processed ascending by
// stored z so relative stacking survives; unreconstructable entries are
// skipped with a log line, never a hard failure. Stored flags, z values
// and payloads are re-applied verbatim.
func Restore(reg *board.Registry, records []Record, factory Factory) {
	reg.Clear()

	ordered := append([]Record(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Z < ordered[j].Z })

	for _, rec := range ordered {
		handle, err := factory(rec)
		if err != nil {
			log.Printf("snapshot: skipping %q: factory: %v", rec.ID, err)
			continue
		}
		if handle == nil {
			log.Printf("snapshot: skipping %q: factory returned no handle", rec.ID)
			continue
		}

		c, err := reg.Add(rec.ID, handle, rec.Pos)
		if err != nil {
			log.Printf("snapshot: skipping %q: %v", rec.ID, err)
			continue
		}
		// Stored geometry and flags win over probed/default values.
		c.Kind = rec.Kind
		c.Size = rec.Size
		c.Z = rec.Z
		c.Locked = rec.Locked
		c.Visible = rec.Visible
		c.Payload = rec.Payload
		if err := reg.SetPosition(rec.ID, rec.Pos); err != nil {
			log.Printf("snapshot: re-apply %q: %v", rec.ID, err)
		}
	}
}
