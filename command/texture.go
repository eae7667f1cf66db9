package command

import (
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
	"github.com/rotisserie/eris"
)

// TextureSlot addresses a texture handle and the path it was loaded from.
// Both are always written together.
type TextureSlot struct {
	Entity  scene.UUID
	Key     string
	resolve func(*scene.Scene, scene.Entity) (*scene.TextureID, *string)
}

// SpriteTexture addresses the texture of an entity's SpriteRenderer.
func SpriteTexture(id scene.UUID) TextureSlot {
	return TextureSlot{
		Entity: id,
		Key:    "SpriteRenderer.Texture",
		resolve: func(s *scene.Scene, e scene.Entity) (*scene.TextureID, *string) {
			r := scene.Get[scene.SpriteRenderer](s, e)
			if r == nil {
				return nil, nil
			}
			return &r.Texture, &r.TexturePath
		},
	}
}

func (t TextureSlot) Resolve(s *scene.Scene) (*scene.TextureID, *string, error) {
	e, ok := s.Lookup(t.Entity)
	if !ok {
		return nil, nil, eris.Wrapf(ErrStaleTarget, "entity %s", t.Entity)
	}
	texture, path := t.resolve(s, e)
	if texture == nil || path == nil {
		return nil, nil, eris.Wrapf(ErrStaleTarget, "%s on %s", t.Key, t.Entity)
	}
	return texture, path, nil
}

// ChangeTexture swaps a texture handle and its path as one value.
type ChangeTexture struct {
	history.Mergeable
	scene    *scene.Scene
	slot     TextureSlot
	texture  scene.TextureID
	path     string
	oldTex   scene.TextureID
	oldPath  string
	captured bool
}

func NewChangeTexture(s *scene.Scene, slot TextureSlot, texture scene.TextureID, path string) *ChangeTexture {
	return &ChangeTexture{scene: s, slot: slot, texture: texture, path: path}
}

func (c *ChangeTexture) Execute() error {
	texture, path, err := c.slot.Resolve(c.scene)
	if err != nil {
		return err
	}
	if !c.captured {
		c.oldTex, c.oldPath = *texture, *path
		c.captured = true
	}
	*texture, *path = c.texture, c.path
	c.scene.MarkDirty()
	return nil
}

func (c *ChangeTexture) Undo() error {
	texture, path, err := c.slot.Resolve(c.scene)
	if err != nil {
		return err
	}
	*texture, *path = c.oldTex, c.oldPath
	c.scene.MarkDirty()
	return nil
}

func (c *ChangeTexture) Merge(older history.Command) bool {
	prev, ok := older.(*ChangeTexture)
	if !ok || !history.CanMerge(c, older) {
		return false
	}
	if prev.scene != c.scene || prev.slot.Entity != c.slot.Entity || prev.slot.Key != c.slot.Key {
		return false
	}
	c.oldTex, c.oldPath = prev.oldTex, prev.oldPath
	c.captured = true
	return true
}

func (c *ChangeTexture) Description() string {
	return "Change Texture"
}
