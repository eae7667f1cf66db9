package scene

import "slices"

// Parent returns e's parent entity, if it has one that is alive.
func (s *Scene) Parent(e Entity) (Entity, bool) {
	t := Get[Transform](s, e)
	if t == nil || t.Parent == 0 {
		return Entity{}, false
	}
	return s.Lookup(t.Parent)
}

// Children returns e's live children in list order.
func (s *Scene) Children(e Entity) []Entity {
	c := Get[Children](s, e)
	if c == nil {
		return nil
	}
	out := make([]Entity, 0, len(c.IDs))
	for _, id := range c.IDs {
		if child, ok := s.Lookup(id); ok {
			out = append(out, child)
		}
	}
	return out
}

// Subtree returns e followed by all of its descendants in pre-order.
func (s *Scene) Subtree(e Entity) []Entity {
	if !e.Valid() {
		return nil
	}
	out := []Entity{e}
	for _, child := range s.Children(e) {
		out = append(out, s.Subtree(child)...)
	}
	return out
}

// AppendChild adds child to the end of parent's child list, attaching a
// Children component first when parent has none. added reports whether the
// component was attached by this call.
func (s *Scene) AppendChild(parent Entity, child UUID) (added bool, err error) {
	if c := Get[Children](s, parent); c != nil {
		c.IDs = append(c.IDs, child)
		return false, nil
	}
	if _, err := Add(s, parent, Children{IDs: []UUID{child}}); err != nil {
		return false, err
	}
	return true, nil
}

// InsertChild places child at index in parent's child list. Out of range
// indices are clamped.
func (s *Scene) InsertChild(parent Entity, child UUID, index int) error {
	c := Get[Children](s, parent)
	if c == nil {
		_, err := s.AppendChild(parent, child)
		return err
	}
	index = max(0, min(index, len(c.IDs)))
	c.IDs = slices.Insert(c.IDs, index, child)
	return nil
}

// RemoveChild drops child from parent's child list and returns the index it
// occupied, or -1 when it was not listed.
func (s *Scene) RemoveChild(parent Entity, child UUID) int {
	c := Get[Children](s, parent)
	if c == nil {
		return -1
	}
	index := slices.Index(c.IDs, child)
	if index >= 0 {
		c.IDs = slices.Delete(c.IDs, index, index+1)
	}
	return index
}
