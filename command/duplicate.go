package command

import (
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
)

// DuplicateEntity copies an entity and its subtree under fresh UUIDs, next to
// the source. The copy is fully built when the command is constructed:
// scratch entities are created, snapshotted and destroyed again, leaving only
// the recipe. Execute restores it; Undo removes it.
type DuplicateEntity struct {
	history.Discrete
	scene         *scene.Scene
	id            scene.UUID
	parent        scene.UUID
	name          string
	snapshots     []scene.ComponentData
	addedChildren bool
}

func NewDuplicateEntity(s *scene.Scene, source scene.UUID) (*DuplicateEntity, error) {
	src, err := lookup(s, source)
	if err != nil {
		return nil, err
	}

	d := &DuplicateEntity{scene: s}
	if t := scene.Get[scene.Transform](s, src); t != nil {
		d.parent = t.Parent
	}
	d.name = DuplicateName(s.TagName(src), siblingNames(s, d.parent))

	var scratch []scene.Entity
	defer func() {
		// Scratch entities never outlive construction.
		_ = destroyTree(s, scratch)
	}()

	root, err := copyTree(s, src, d.parent, &scratch)
	if err != nil {
		return nil, err
	}
	scene.Get[scene.Tag](s, root).Name = d.name

	if d.snapshots, err = s.SnapshotTree(root); err != nil {
		return nil, err
	}
	d.id = root.UUID()
	return d, nil
}

// ID returns the UUID of the copy's root.
func (d *DuplicateEntity) ID() scene.UUID {
	return d.id
}

// Name returns the display name given to the copy.
func (d *DuplicateEntity) Name() string {
	return d.name
}

func (d *DuplicateEntity) Execute() error {
	var parent scene.Entity
	if d.parent != 0 {
		var err error
		if parent, err = lookup(d.scene, d.parent); err != nil {
			return err
		}
	}
	if err := restoreTree(d.scene, d.snapshots); err != nil {
		return err
	}
	if d.parent != 0 {
		added, err := d.scene.AppendChild(parent, d.id)
		if err != nil {
			return err
		}
		d.addedChildren = added
	}
	d.scene.MarkDirty()
	return nil
}

func (d *DuplicateEntity) Undo() error {
	root, err := lookup(d.scene, d.id)
	if err != nil {
		return err
	}
	if parent, ok := d.scene.Lookup(d.parent); ok {
		if err := detach(d.scene, parent, d.id, d.addedChildren); err != nil {
			return err
		}
	}
	if err := destroyTree(d.scene, d.scene.Subtree(root)); err != nil {
		return err
	}
	d.scene.MarkDirty()
	return nil
}

func (d *DuplicateEntity) Description() string {
	return "Duplicate Entity"
}

// copyTree creates a copy of src under parent and recurses into its children,
// rewriting each copied Children list to the new UUIDs.
func copyTree(s *scene.Scene, src scene.Entity, parent scene.UUID, scratch *[]scene.Entity) (scene.Entity, error) {
	dst, err := s.CreateEntity("")
	if err != nil {
		return scene.Entity{}, err
	}
	*scratch = append(*scratch, dst)

	if err := s.CopyComponents(src, dst); err != nil {
		return scene.Entity{}, err
	}
	scene.Get[scene.Transform](s, dst).Parent = parent

	var ids []scene.UUID
	for _, child := range s.Children(src) {
		copied, err := copyTree(s, child, dst.UUID(), scratch)
		if err != nil {
			return scene.Entity{}, err
		}
		ids = append(ids, copied.UUID())
	}
	if c := scene.Get[scene.Children](s, dst); c != nil {
		c.IDs = ids
	}
	return dst, nil
}

func siblingNames(s *scene.Scene, parent scene.UUID) []string {
	var siblings []scene.Entity
	if p, ok := s.Lookup(parent); ok {
		siblings = s.Children(p)
	} else {
		siblings = s.Roots()
	}
	names := make([]string, len(siblings))
	for i, e := range siblings {
		names[i] = s.TagName(e)
	}
	return names
}
