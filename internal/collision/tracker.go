// Package collision tracks parameter names and their 64-bit IDs while an
// archive is being encoded.
//
// Parameter names are authoritative in the archive format; the hash IDs exist
// for fast lookup and integrity checking. A duplicate name or a hash collision
// between two distinct names therefore makes the archive ambiguous and is
// rejected up front.
package collision

import "github.com/statforge/drawset/errs"

// Tracker records name → ID mappings during archive encoding and rejects
// duplicates and hash collisions.
type Tracker struct {
	byID  map[uint64]string
	names []string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{byID: make(map[uint64]string)}
}

// Track records a parameter name with its hash ID.
//
// Returns errs.ErrInvalidName for an empty name, errs.ErrDuplicateName when
// the same name is tracked twice, and errs.ErrHashCollision when a different
// name already claimed the same ID.
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidName
	}

	if existing, ok := t.byID[id]; ok {
		if existing == name {
			return errs.ErrDuplicateName
		}

		return errs.ErrHashCollision
	}

	t.byID[id] = name
	t.names = append(t.names, name)

	return nil
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears the tracker for reuse, keeping allocated capacity.
func (t *Tracker) Reset() {
	for k := range t.byID {
		delete(t.byID, k)
	}
	t.names = t.names[:0]
}
