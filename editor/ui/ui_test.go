package ui_test

import (
	"reflect"
	"testing"

	"github.com/plus3/scenedit/editor/ui"
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyRows(t *testing.T) {
	s := scene.New("test")
	root, err := s.CreateEntityWithUUID(1, "Root")
	require.NoError(t, err)
	child, err := s.CreateEntityWithUUID(2, "Arm")
	require.NoError(t, err)
	scene.Get[scene.Transform](s, child).Parent = root.UUID()
	_, err = s.AppendChild(root, child.UUID())
	require.NoError(t, err)
	_, err = s.CreateEntityWithUUID(3, "Camera")
	require.NoError(t, err)

	assert.Equal(t, []ui.HierarchyRow{
		{ID: 3, Name: "Camera", Depth: 0},
		{ID: 1, Name: "Root", Depth: 0},
		{ID: 2, Name: "Arm", Depth: 1},
	}, ui.HierarchyRows(s, ""))

	assert.Equal(t, []ui.HierarchyRow{{ID: 2, Name: "Arm"}}, ui.HierarchyRows(s, "aR"))
}

func TestOptionalComponentsRoundTrip(t *testing.T) {
	s := scene.New("test")
	h := history.New()
	e, err := s.CreateEntity("Thing")
	require.NoError(t, err)

	require.Len(t, ui.MissingComponents(s, e), len(ui.OptionalComponents))
	for _, kind := range ui.OptionalComponents {
		require.NoError(t, h.AddCommand(kind.Add(s, e.UUID())), kind.Name)
		assert.NotNil(t, s.Component(e, kind.Type), kind.Name)
	}
	assert.Empty(t, ui.MissingComponents(s, e))

	for _, kind := range ui.OptionalComponents {
		require.NoError(t, h.AddCommand(kind.Remove(s, e.UUID())), kind.Name)
	}
	assert.Len(t, ui.MissingComponents(s, e), len(ui.OptionalComponents))

	for h.CanUndo() {
		require.NoError(t, h.Undo())
	}
	assert.Len(t, ui.MissingComponents(s, e), len(ui.OptionalComponents))
	assert.Len(t, s.Components(e), 3)
}

func TestTextureCache(t *testing.T) {
	c := ui.NewTextureCache()

	a := c.Load("a.png")
	b := c.Load("b.png")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c.Load("a.png"))
	assert.Equal(t, scene.TextureID(0), c.Load(""))
	assert.Equal(t, 2, c.Len())
}

func TestReflectionCache(t *testing.T) {
	rc := ui.NewReflectionCache()

	fields := rc.GetFields(reflect.TypeFor[scene.Transform]())
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Translation", "Rotation", "Scale", "Parent"}, names)
	assert.Equal(t, fields, rc.GetFields(reflect.TypeFor[scene.Transform]()))
	assert.Empty(t, rc.GetFields(reflect.TypeFor[int]()))
}
