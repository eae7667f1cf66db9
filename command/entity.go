package command

import (
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
	"github.com/rotisserie/eris"
)

// CreateEntity creates a root entity. The UUID is fixed when the command is
// built, so every Redo re-creates the same entity.
type CreateEntity struct {
	history.Discrete
	scene *scene.Scene
	id    scene.UUID
	name  string
}

func NewCreateEntity(s *scene.Scene, name string) *CreateEntity {
	return &CreateEntity{scene: s, id: scene.NewUUID(), name: name}
}

// ID returns the UUID of the entity this command creates.
func (c *CreateEntity) ID() scene.UUID {
	return c.id
}

func (c *CreateEntity) Execute() error {
	if _, err := c.scene.CreateEntityWithUUID(c.id, c.name); err != nil {
		return err
	}
	c.scene.MarkDirty()
	return nil
}

func (c *CreateEntity) Undo() error {
	e, err := lookup(c.scene, c.id)
	if err != nil {
		return err
	}
	if err := c.scene.DestroyEntity(e); err != nil {
		return err
	}
	c.scene.MarkDirty()
	return nil
}

func (c *CreateEntity) Description() string {
	return "Create Entity"
}

// CreateChildEntity creates an entity under parent, appending it to the
// parent's child list. Undo removes it from the list again, and removes the
// Children component if this command attached it.
type CreateChildEntity struct {
	history.Discrete
	scene         *scene.Scene
	id            scene.UUID
	parent        scene.UUID
	name          string
	addedChildren bool
}

func NewCreateChildEntity(s *scene.Scene, parent scene.UUID, name string) *CreateChildEntity {
	return &CreateChildEntity{scene: s, id: scene.NewUUID(), parent: parent, name: name}
}

func (c *CreateChildEntity) ID() scene.UUID {
	return c.id
}

func (c *CreateChildEntity) Execute() error {
	parent, err := lookup(c.scene, c.parent)
	if err != nil {
		return err
	}
	child, err := c.scene.CreateEntityWithUUID(c.id, c.name)
	if err != nil {
		return err
	}
	scene.Get[scene.Transform](c.scene, child).Parent = c.parent

	added, err := c.scene.AppendChild(parent, c.id)
	if err != nil {
		_ = c.scene.DestroyEntity(child)
		return eris.Wrap(err, "attach child")
	}
	c.addedChildren = added
	c.scene.MarkDirty()
	return nil
}

func (c *CreateChildEntity) Undo() error {
	child, err := lookup(c.scene, c.id)
	if err != nil {
		return err
	}
	if parent, ok := c.scene.Lookup(c.parent); ok {
		if err := detach(c.scene, parent, c.id, c.addedChildren); err != nil {
			return err
		}
	}
	if err := c.scene.DestroyEntity(child); err != nil {
		return err
	}
	c.scene.MarkDirty()
	return nil
}

func (c *CreateChildEntity) Description() string {
	return "Create Child Entity"
}

// DestroyEntity destroys an entity together with its whole subtree. Execute
// snapshots the subtree parent first and Undo restores it in the same order,
// putting the root back at its old position in the parent's child list.
type DestroyEntity struct {
	history.Discrete
	scene     *scene.Scene
	id        scene.UUID
	parent    scene.UUID
	index     int
	snapshots []scene.ComponentData
}

func NewDestroyEntity(s *scene.Scene, id scene.UUID) *DestroyEntity {
	return &DestroyEntity{scene: s, id: id, index: -1}
}

func (c *DestroyEntity) Execute() error {
	e, err := lookup(c.scene, c.id)
	if err != nil {
		return err
	}
	snapshots, err := c.scene.SnapshotTree(e)
	if err != nil {
		return err
	}

	c.parent, c.index = 0, -1
	if t := scene.Get[scene.Transform](c.scene, e); t != nil && t.Parent != 0 {
		c.parent = t.Parent
		if parent, ok := c.scene.Lookup(t.Parent); ok {
			c.index = c.scene.RemoveChild(parent, c.id)
		}
	}

	if err := destroyTree(c.scene, c.scene.Subtree(e)); err != nil {
		return err
	}
	c.snapshots = snapshots
	c.scene.MarkDirty()
	return nil
}

func (c *DestroyEntity) Undo() error {
	var parent scene.Entity
	if c.index >= 0 {
		var err error
		if parent, err = lookup(c.scene, c.parent); err != nil {
			return err
		}
	}
	if err := restoreTree(c.scene, c.snapshots); err != nil {
		return err
	}
	if c.index >= 0 {
		if err := c.scene.InsertChild(parent, c.id, c.index); err != nil {
			return err
		}
	}
	c.scene.MarkDirty()
	return nil
}

func (c *DestroyEntity) Description() string {
	return "Destroy Entity"
}

func lookup(s *scene.Scene, id scene.UUID) (scene.Entity, error) {
	e, ok := s.Lookup(id)
	if !ok {
		return scene.Entity{}, eris.Wrapf(ErrStaleTarget, "entity %s", id)
	}
	return e, nil
}

// detach removes child from parent's list, dropping the Children component
// when dropComponent is set and the list ends up empty.
func detach(s *scene.Scene, parent scene.Entity, child scene.UUID, dropComponent bool) error {
	s.RemoveChild(parent, child)
	if c := scene.Get[scene.Children](s, parent); dropComponent && c != nil && c.Count() == 0 {
		return scene.Remove[scene.Children](s, parent)
	}
	return nil
}

// restoreTree re-creates snapshots front to back. Nothing is created when any
// UUID is already taken.
func restoreTree(s *scene.Scene, snapshots []scene.ComponentData) error {
	for _, data := range snapshots {
		if _, ok := s.Lookup(data.ID); ok {
			return eris.Wrapf(scene.ErrDuplicateUUID, "restore %s", data.ID)
		}
	}
	for _, data := range snapshots {
		if _, err := s.Restore(data); err != nil {
			return err
		}
	}
	return nil
}

// destroyTree destroys entities back to front, so children go before parents.
func destroyTree(s *scene.Scene, entities []scene.Entity) error {
	for i := len(entities) - 1; i >= 0; i-- {
		if err := s.DestroyEntity(entities[i]); err != nil {
			return err
		}
	}
	return nil
}
