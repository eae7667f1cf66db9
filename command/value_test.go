package command_test

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenedit/command"
	"github.com/plus3/scenedit/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeTranslationUndoRedo(t *testing.T) {
	s, h := newTestScene(t)
	e := mustCreate(t, s, 1, "Cube")

	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.Translation(1), mgl32.Vec3{1, 0, 0})))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, scene.Get[scene.Transform](s, e).Translation)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.True(t, s.Dirty())

	require.NoError(t, h.Undo())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, scene.Get[scene.Transform](s, e).Translation)
	assert.Equal(t, -1, h.Cursor())

	require.NoError(t, h.Redo())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, scene.Get[scene.Transform](s, e).Translation)
	assert.Equal(t, 0, h.Cursor())
}

func TestChangeValueMergesSameField(t *testing.T) {
	s, h := newTestScene(t)
	e := mustCreate(t, s, 1, "Sprite")
	_, err := scene.Add(s, e, scene.SpriteRenderer{TilingFactor: 1})
	require.NoError(t, err)

	for _, v := range []float32{1.5, 2, 2.5} {
		require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.SpriteTiling(1), v)))
	}
	assert.Equal(t, 1, h.Len())

	require.NoError(t, h.Undo())
	assert.Equal(t, float32(1), scene.Get[scene.SpriteRenderer](s, e).TilingFactor)
	require.NoError(t, h.Redo())
	assert.Equal(t, float32(2.5), scene.Get[scene.SpriteRenderer](s, e).TilingFactor)
}

func TestChangeValueRejectsOtherTargets(t *testing.T) {
	s, h := newTestScene(t)
	mustCreate(t, s, 1, "A")
	mustCreate(t, s, 2, "B")

	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.Translation(1), mgl32.Vec3{1, 0, 0})))
	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.Translation(2), mgl32.Vec3{1, 0, 0})))
	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.Scale(2), mgl32.Vec3{2, 2, 2})))
	assert.Equal(t, 3, h.Len())

	other := scene.New("other")
	mustCreate(t, other, 2, "B")
	require.NoError(t, h.AddCommand(command.NewChangeValue(other, command.Scale(2), mgl32.Vec3{3, 3, 3})))
	assert.Equal(t, 4, h.Len())
}

func TestChangeValueNoMergeAfterRelease(t *testing.T) {
	s, h := newTestScene(t)
	e := mustCreate(t, s, 1, "Cube")

	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.Translation(1), mgl32.Vec3{1, 0, 0})))
	h.SetNoMerge()
	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.Translation(1), mgl32.Vec3{2, 0, 0})))
	assert.Equal(t, 2, h.Len())

	require.NoError(t, h.Undo())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, scene.Get[scene.Transform](s, e).Translation)
}

func TestChangeValueSurvivesRecreation(t *testing.T) {
	s, h := newTestScene(t)
	mustCreate(t, s, 1, "Cube")

	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.TagName(1), "Box")))
	require.NoError(t, h.AddCommand(command.NewDestroyEntity(s, 1)))
	require.NoError(t, h.Undo())

	assert.Equal(t, "Box", s.TagName(lookup(t, s, 1)))
	require.NoError(t, h.Undo())
	assert.Equal(t, "Cube", s.TagName(lookup(t, s, 1)))
}

func TestChangeValueStaleTarget(t *testing.T) {
	s, h := newTestScene(t)
	e := mustCreate(t, s, 1, "Cube")

	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.Translation(1), mgl32.Vec3{1, 0, 0})))
	require.NoError(t, s.DestroyEntity(e))

	assert.ErrorIs(t, h.Undo(), command.ErrStaleTarget)
	assert.Equal(t, 0, h.Cursor())

	err := h.AddCommand(command.NewChangeValue(s, command.SpriteColor(2), mgl32.Vec4{}))
	assert.ErrorIs(t, err, command.ErrStaleTarget)
	assert.Equal(t, 1, h.Len())
}

func TestChangeValueMissingComponent(t *testing.T) {
	s, h := newTestScene(t)
	mustCreate(t, s, 1, "Cube")

	err := h.AddCommand(command.NewChangeValue(s, command.SpriteColor(1), mgl32.Vec4{1, 1, 1, 1}))
	assert.ErrorIs(t, err, command.ErrStaleTarget)
	assert.Equal(t, 0, h.Len())
}

func TestChangeFunctionValueCallsSetterBothWays(t *testing.T) {
	s, h := newTestScene(t)
	e := mustCreate(t, s, 1, "Camera")
	_, err := scene.Add(s, e, scene.NewCamera())
	require.NoError(t, err)

	var calls []float32
	setter := func(s *scene.Scene, e scene.Entity, v float32) {
		calls = append(calls, v)
		command.RecalculateCamera(s, e, v)
	}

	before := scene.Get[scene.Camera](s, e).ProjectionMatrix
	require.NoError(t, h.AddCommand(command.NewChangeFunctionValue(s, command.CameraOrthographicSize(1), 20, setter)))
	assert.NotEqual(t, before, scene.Get[scene.Camera](s, e).ProjectionMatrix)

	require.NoError(t, h.Undo())
	assert.Equal(t, before, scene.Get[scene.Camera](s, e).ProjectionMatrix)
	assert.Equal(t, []float32{20, 10}, calls)
}

func TestChangeFunctionValueMerge(t *testing.T) {
	s, h := newTestScene(t)
	e := mustCreate(t, s, 1, "Camera")
	_, err := scene.Add(s, e, scene.NewCamera())
	require.NoError(t, err)

	recalc := command.RecalculateCamera[float32]
	require.NoError(t, h.AddCommand(command.NewChangeFunctionValue(s, command.CameraOrthographicSize(1), 12, recalc)))
	require.NoError(t, h.AddCommand(command.NewChangeFunctionValue(s, command.CameraOrthographicSize(1), 14, recalc)))
	// A plain change of the same field is a different kind of command.
	require.NoError(t, h.AddCommand(command.NewChangeValue(s, command.CameraOrthographicSize(1), float32(16))))
	assert.Equal(t, 2, h.Len())

	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.Equal(t, float32(10), scene.Get[scene.Camera](s, e).OrthographicSize)
}

func TestChangeTexture(t *testing.T) {
	s, h := newTestScene(t)
	e := mustCreate(t, s, 1, "Sprite")
	_, err := scene.Add(s, e, scene.SpriteRenderer{Texture: 1, TexturePath: "a.png"})
	require.NoError(t, err)

	require.NoError(t, h.AddCommand(command.NewChangeTexture(s, command.SpriteTexture(1), 2, "b.png")))
	require.NoError(t, h.AddCommand(command.NewChangeTexture(s, command.SpriteTexture(1), 3, "c.png")))
	assert.Equal(t, 1, h.Len())

	sprite := scene.Get[scene.SpriteRenderer](s, e)
	assert.Equal(t, scene.TextureID(3), sprite.Texture)
	assert.Equal(t, "c.png", sprite.TexturePath)

	require.NoError(t, h.Undo())
	sprite = scene.Get[scene.SpriteRenderer](s, e)
	assert.Equal(t, scene.TextureID(1), sprite.Texture)
	assert.Equal(t, "a.png", sprite.TexturePath)

	require.NoError(t, scene.Remove[scene.SpriteRenderer](s, e))
	assert.ErrorIs(t, h.Redo(), command.ErrStaleTarget)
}

func TestStructField(t *testing.T) {
	s, h := newTestScene(t)
	e := mustCreate(t, s, 1, "Body")
	_, err := scene.Add(s, e, scene.BoxCollider2D{Density: 1})
	require.NoError(t, err)

	colliderType := reflect.TypeFor[scene.BoxCollider2D]()
	sf, ok := colliderType.FieldByName("Density")
	require.True(t, ok)

	field := command.StructField[float32](1, colliderType, sf.Name, sf.Index)
	assert.Equal(t, "BoxCollider2D.Density", field.Key)
	require.NoError(t, h.AddCommand(command.NewChangeValue(s, field, float32(3))))
	assert.Equal(t, float32(3), scene.Get[scene.BoxCollider2D](s, e).Density)

	wrongType := command.StructField[int](1, colliderType, sf.Name, sf.Index)
	assert.ErrorIs(t, h.AddCommand(command.NewChangeValue(s, wrongType, 2)), command.ErrStaleTarget)
}
