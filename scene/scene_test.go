package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenedit/ecs"
	"github.com/plus3/scenedit/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	return scene.New("test")
}

func TestCreateEntityDefaults(t *testing.T) {
	s := newTestScene(t)

	e, err := s.CreateEntity("")
	require.NoError(t, err)
	assert.True(t, e.Valid())
	assert.NotZero(t, e.UUID())

	assert.Equal(t, scene.DefaultEntityName, scene.Get[scene.Tag](s, e).Name)
	assert.Equal(t, e.UUID(), scene.Get[scene.IDComponent](s, e).ID)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, scene.Get[scene.Transform](s, e).Scale)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Dirty())
}

func TestCreateEntityWithUUID(t *testing.T) {
	s := newTestScene(t)

	e, err := s.CreateEntityWithUUID(42, "Cube")
	require.NoError(t, err)
	assert.Equal(t, scene.UUID(42), e.UUID())

	found, ok := s.Lookup(42)
	require.True(t, ok)
	assert.Equal(t, "Cube", s.TagName(found))

	_, err = s.CreateEntityWithUUID(42, "Other")
	assert.ErrorIs(t, err, scene.ErrDuplicateUUID)
	assert.Equal(t, 1, s.Len())
}

func TestDestroyEntity(t *testing.T) {
	s := newTestScene(t)

	e, err := s.CreateEntity("Cube")
	require.NoError(t, err)
	require.NoError(t, s.DestroyEntity(e))

	assert.False(t, e.Valid())
	_, ok := s.Lookup(e.UUID())
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.ErrorIs(t, s.DestroyEntity(e), scene.ErrEntityNotFound)

	// The UUID can be reused once the entity is gone.
	_, err = s.CreateEntityWithUUID(e.UUID(), "Cube")
	assert.NoError(t, err)
}

func TestAddRemoveComponent(t *testing.T) {
	s := newTestScene(t)

	e, err := s.CreateEntity("Sprite")
	require.NoError(t, err)
	scene.Get[scene.Transform](s, e).Translation = mgl32.Vec3{1, 2, 3}

	sprite, err := scene.Add(s, e, scene.SpriteRenderer{Color: mgl32.Vec4{1, 0, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, float32(1), sprite.Color.X())

	// The handle follows the entity into its new archetype.
	assert.True(t, e.Valid())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, scene.Get[scene.Transform](s, e).Translation)

	_, err = scene.Add(s, e, scene.SpriteRenderer{})
	assert.ErrorIs(t, err, scene.ErrComponentExists)

	require.NoError(t, scene.Remove[scene.SpriteRenderer](s, e))
	assert.False(t, scene.Has[scene.SpriteRenderer](s, e))
	assert.ErrorIs(t, scene.Remove[scene.SpriteRenderer](s, e), scene.ErrComponentMissing)
	assert.ErrorIs(t, scene.Remove[scene.Transform](s, e), scene.ErrRequiredComponent)
	assert.ErrorIs(t, scene.Remove[scene.Tag](s, e), scene.ErrRequiredComponent)
}

func TestEntitiesOrdering(t *testing.T) {
	s := newTestScene(t)

	for _, name := range []string{"Light", "Camera", "Cube"} {
		_, err := s.CreateEntity(name)
		require.NoError(t, err)
	}

	var names []string
	for _, e := range s.Entities() {
		names = append(names, s.TagName(e))
	}
	assert.Equal(t, []string{"Camera", "Cube", "Light"}, names)
}

func TestCopyComponents(t *testing.T) {
	s := newTestScene(t)

	src, err := s.CreateEntity("Source")
	require.NoError(t, err)
	_, err = scene.Add(s, src, scene.Children{IDs: []scene.UUID{7, 8}})
	require.NoError(t, err)
	scene.Get[scene.Transform](s, src).Translation = mgl32.Vec3{4, 5, 6}

	dst, err := s.CreateEntity("Target")
	require.NoError(t, err)
	require.NoError(t, s.CopyComponents(src, dst))

	assert.Equal(t, dst.UUID(), scene.Get[scene.IDComponent](s, dst).ID)
	assert.Equal(t, "Source", s.TagName(dst))
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, scene.Get[scene.Transform](s, dst).Translation)

	copied := scene.Get[scene.Children](s, dst)
	require.NotNil(t, copied)
	copied.IDs[0] = 99
	assert.Equal(t, scene.UUID(7), scene.Get[scene.Children](s, src).IDs[0])
}

func TestCustomComponents(t *testing.T) {
	type Health struct{ Value int }

	s := scene.New("custom", scene.WithComponents(func(r *ecs.ComponentRegistry) {
		ecs.RegisterComponent[Health](r)
	}))
	e, err := s.CreateEntity("Player")
	require.NoError(t, err)

	h, err := scene.Add(s, e, Health{Value: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, h.Value)
}

func TestPrimaryCamera(t *testing.T) {
	s := newTestScene(t)

	_, _, ok := s.PrimaryCamera()
	assert.False(t, ok)

	e, err := s.CreateEntity("Main Camera")
	require.NoError(t, err)
	_, err = scene.Add(s, e, scene.NewCamera())
	require.NoError(t, err)

	found, camera, ok := s.PrimaryCamera()
	require.True(t, ok)
	assert.Equal(t, e.UUID(), found.UUID())

	before := camera.ProjectionMatrix
	s.OnViewportResize(800, 800)
	assert.Equal(t, float32(1), camera.AspectRatio)
	assert.NotEqual(t, before, camera.ProjectionMatrix)
}

func TestCameraRecalculateProjection(t *testing.T) {
	c := scene.NewCamera()
	ortho := c.ProjectionMatrix

	c.Projection = scene.Perspective
	c.RecalculateProjection()
	assert.NotEqual(t, ortho, c.ProjectionMatrix)

	c.FixedAspectRatio = true
	c.SetViewportSize(100, 10)
	assert.InDelta(t, 16.0/9.0, c.AspectRatio, 1e-6)
}

func TestNewUUID(t *testing.T) {
	seen := map[scene.UUID]bool{}
	for range 100 {
		id := scene.NewUUID()
		assert.NotZero(t, id)
		assert.False(t, seen[id])
		assert.Len(t, id.String(), 16)
		seen[id] = true
	}
}
