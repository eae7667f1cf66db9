package command

import (
	"reflect"

	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
	"github.com/rotisserie/eris"
)

// AddComponent attaches a component of type T to an entity.
type AddComponent[T any] struct {
	history.Discrete
	scene *scene.Scene
	id    scene.UUID
	value T
}

func NewAddComponent[T any](s *scene.Scene, id scene.UUID, value T) *AddComponent[T] {
	return &AddComponent[T]{scene: s, id: id, value: scene.CloneComponent(value)}
}

func (c *AddComponent[T]) Execute() error {
	e, err := lookup(c.scene, c.id)
	if err != nil {
		return err
	}
	if _, err := scene.Add(c.scene, e, scene.CloneComponent(c.value)); err != nil {
		return err
	}
	c.scene.MarkDirty()
	return nil
}

func (c *AddComponent[T]) Undo() error {
	e, err := lookup(c.scene, c.id)
	if err != nil {
		return err
	}
	if err := scene.Remove[T](c.scene, e); err != nil {
		return err
	}
	c.scene.MarkDirty()
	return nil
}

func (c *AddComponent[T]) Description() string {
	return "Add " + reflect.TypeFor[T]().Name()
}

// RemoveComponent detaches the T component of an entity, keeping a copy of
// its value so Undo can put it back unchanged.
type RemoveComponent[T any] struct {
	history.Discrete
	scene *scene.Scene
	id    scene.UUID
	value T
}

func NewRemoveComponent[T any](s *scene.Scene, id scene.UUID) *RemoveComponent[T] {
	return &RemoveComponent[T]{scene: s, id: id}
}

func (c *RemoveComponent[T]) Execute() error {
	e, err := lookup(c.scene, c.id)
	if err != nil {
		return err
	}
	current := scene.Get[T](c.scene, e)
	if current == nil {
		return eris.Wrapf(ErrStaleTarget, "%s on %s", reflect.TypeFor[T]().Name(), c.id)
	}
	value := scene.CloneComponent(*current)
	if err := scene.Remove[T](c.scene, e); err != nil {
		return err
	}
	c.value = value
	c.scene.MarkDirty()
	return nil
}

func (c *RemoveComponent[T]) Undo() error {
	e, err := lookup(c.scene, c.id)
	if err != nil {
		return err
	}
	if _, err := scene.Add(c.scene, e, scene.CloneComponent(c.value)); err != nil {
		return err
	}
	c.scene.MarkDirty()
	return nil
}

func (c *RemoveComponent[T]) Description() string {
	return "Remove " + reflect.TypeFor[T]().Name()
}
