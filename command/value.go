package command

import (
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
)

// ChangeValue writes a new value into a field and restores the previous one on Undo.
// Consecutive changes to the same field merge into one entry.
type ChangeValue[T any] struct {
	history.Mergeable
	scene    *scene.Scene
	field    Field[T]
	value    T
	old      T
	captured bool
}

func NewChangeValue[T any](s *scene.Scene, field Field[T], value T) *ChangeValue[T] {
	return &ChangeValue[T]{scene: s, field: field, value: value}
}

func (c *ChangeValue[T]) Execute() error {
	_, err := c.apply(true)
	return err
}

func (c *ChangeValue[T]) Undo() error {
	_, err := c.apply(false)
	return err
}

// apply writes the new or old value and returns the entity it landed on.
// The prior value is captured on the first forward write only.
func (c *ChangeValue[T]) apply(forward bool) (scene.Entity, error) {
	e, p, err := c.field.Resolve(c.scene)
	if err != nil {
		return scene.Entity{}, err
	}
	if forward {
		if !c.captured {
			c.old = *p
			c.captured = true
		}
		*p = c.value
	} else {
		*p = c.old
	}
	c.scene.MarkDirty()
	return e, nil
}

func (c *ChangeValue[T]) Merge(older history.Command) bool {
	prev, ok := older.(*ChangeValue[T])
	if !ok || !history.CanMerge(c, older) {
		return false
	}
	if prev.scene != c.scene || !prev.field.SameTarget(c.field) {
		return false
	}
	c.old = prev.old
	c.captured = true
	return true
}

func (c *ChangeValue[T]) Description() string {
	return "Change " + c.field.Key
}

// Value returns the value written by Execute.
func (c *ChangeValue[T]) Value() T {
	return c.value
}

// Old returns the value restored by Undo. It is only meaningful after Execute.
func (c *ChangeValue[T]) Old() T {
	return c.old
}

// Setter runs after a ChangeFunctionValue writes its field.
type Setter[T any] func(s *scene.Scene, e scene.Entity, value T)

// ChangeFunctionValue is a ChangeValue whose field has dependents that must be
// refreshed after each write, forward or backward.
type ChangeFunctionValue[T any] struct {
	ChangeValue[T]
	setter Setter[T]
}

func NewChangeFunctionValue[T any](s *scene.Scene, field Field[T], value T, setter Setter[T]) *ChangeFunctionValue[T] {
	return &ChangeFunctionValue[T]{
		ChangeValue: ChangeValue[T]{scene: s, field: field, value: value},
		setter:      setter,
	}
}

func (c *ChangeFunctionValue[T]) Execute() error {
	e, err := c.apply(true)
	if err != nil {
		return err
	}
	c.setter(c.scene, e, c.value)
	return nil
}

func (c *ChangeFunctionValue[T]) Undo() error {
	e, err := c.apply(false)
	if err != nil {
		return err
	}
	c.setter(c.scene, e, c.old)
	return nil
}

func (c *ChangeFunctionValue[T]) Merge(older history.Command) bool {
	prev, ok := older.(*ChangeFunctionValue[T])
	if !ok {
		return false
	}
	return c.ChangeValue.Merge(&prev.ChangeValue)
}

// RecalculateCamera rebuilds the projection of the entity's camera.
func RecalculateCamera[T any](s *scene.Scene, e scene.Entity, _ T) {
	if c := scene.Get[scene.Camera](s, e); c != nil {
		c.RecalculateProjection()
	}
}
