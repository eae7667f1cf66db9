package scene

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// ComponentData is a self-contained copy of one entity's components, enough to
// re-create it byte for byte under the same UUID.
type ComponentData struct {
	ID         UUID
	Components []any
}

// Get returns the captured component of type T, or nil.
func (d ComponentData) Get(t reflect.Type) any {
	for _, c := range d.Components {
		if reflect.TypeOf(c) == t {
			return c
		}
	}
	return nil
}

// Snapshot deep-copies every component of e.
func (s *Scene) Snapshot(e Entity) (ComponentData, error) {
	if !e.Valid() {
		return ComponentData{}, eris.Wrapf(ErrEntityNotFound, "snapshot %s", e.id)
	}
	live := s.Components(e)
	data := ComponentData{ID: e.id, Components: make([]any, len(live))}
	for i, c := range live {
		data.Components[i] = cloneValue(c)
	}
	return data, nil
}

// SnapshotTree snapshots e and its descendants in pre-order, so restoring the
// result front to back always creates a parent before its children.
func (s *Scene) SnapshotTree(e Entity) ([]ComponentData, error) {
	subtree := s.Subtree(e)
	if len(subtree) == 0 {
		return nil, eris.Wrapf(ErrEntityNotFound, "snapshot %s", e.id)
	}
	out := make([]ComponentData, 0, len(subtree))
	for _, member := range subtree {
		data, err := s.Snapshot(member)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

// Restore re-creates an entity from a snapshot. The snapshot is copied, so it
// can be restored again after the entity is destroyed.
func (s *Scene) Restore(data ComponentData) (Entity, error) {
	components := make([]any, len(data.Components))
	for i, c := range data.Components {
		components[i] = cloneValue(c)
	}
	return s.spawn(data.ID, components...)
}
