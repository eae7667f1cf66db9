package ecs_test

import (
	"testing"

	"github.com/plus3/scenedit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefBasicLifecycle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id, err := storage.Spawn(&Position{X: 1.0, Y: 2.0})
	require.NoError(t, err)
	ref := storage.CreateEntityRef(id)

	require.NotNil(t, ref)
	assert.Equal(t, id, ref.Id)
	assert.NotNil(t, ref.Archetype)

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	assert.True(t, storage.InvalidateEntityRef(ref))
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.False(t, storage.InvalidateEntityRef(ref))

	// The entity itself survives invalidation.
	assert.True(t, storage.Alive(id))
}

func TestEntityRefIdempotency(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id, err := storage.Spawn(&Position{X: 5.0, Y: 10.0})
	require.NoError(t, err)

	assert.Same(t, storage.CreateEntityRef(id), storage.CreateEntityRef(id))
}

func TestEntityRefDeletedEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id, err := storage.Spawn(Position{})
	require.NoError(t, err)
	ref := storage.CreateEntityRef(id)

	storage.Delete(id)
	assert.False(t, ref.Alive())
	assert.Nil(t, storage.CreateEntityRef(id))
}

func TestEntityRefFollowsMoves(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id, err := storage.Spawn(Position{X: 7})
	require.NoError(t, err)
	ref := storage.CreateEntityRef(id)

	for _, comp := range []any{Velocity{}, Health{Max: 3}, Score(1)} {
		_, err := storage.AddComponent(ref.Id, comp)
		require.NoError(t, err)
	}

	assert.True(t, ref.Alive())
	assert.Equal(t, 3, ecs.ReadComponent[Health](storage, ref.Id).Max)
	assert.Equal(t, float32(7), ecs.ReadComponent[Position](storage, ref.Id).X)
}

func TestEntityRefNil(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	_, ok := storage.ResolveEntityRef(nil)
	assert.False(t, ok)
	assert.False(t, storage.InvalidateEntityRef(nil))
}
