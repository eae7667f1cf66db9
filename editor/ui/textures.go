package ui

import "github.com/plus3/scenedit/scene"

// TextureCache hands out stable texture handles per path. Loading pixels is
// the renderer's job; the editor only needs handle and path to agree.
type TextureCache struct {
	byPath map[string]scene.TextureID
	next   scene.TextureID
}

func NewTextureCache() *TextureCache {
	return &TextureCache{byPath: make(map[string]scene.TextureID), next: 1}
}

// Load returns the handle for path. An empty path is the untextured handle 0.
func (c *TextureCache) Load(path string) scene.TextureID {
	if path == "" {
		return 0
	}
	if id, ok := c.byPath[path]; ok {
		return id
	}
	id := c.next
	c.next++
	c.byPath[path] = id
	return id
}

func (c *TextureCache) Len() int {
	return len(c.byPath)
}
