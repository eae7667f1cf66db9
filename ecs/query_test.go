package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/scenedit/ecs"
)

func TestQueryIteratesEveryArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	_, err := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	require.NoError(t, err)
	_, err = storage.Spawn(Position{X: 2})
	require.NoError(t, err)
	_, err = storage.Spawn(Velocity{DX: 3})
	require.NoError(t, err)

	query := ecs.NewQuery[Position](storage)
	assert.Equal(t, 2, query.Count())

	var sum float32
	for id, pos := range query.Iter() {
		assert.True(t, storage.Alive(id))
		sum += pos.X
	}
	assert.Equal(t, float32(3), sum)
}

func TestQueryWritesThroughAndSeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id, err := storage.Spawn(Position{X: 1})
	require.NoError(t, err)

	query := ecs.NewQuery[Position](storage)
	for _, pos := range query.Iter() {
		pos.X = 10
	}
	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, id).X)

	_, err = storage.Spawn(Position{X: 5}, Health{Current: 1, Max: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, query.Count())

	storage.Delete(id)
	assert.Equal(t, 1, query.Count())
}

func TestQueryStopsEarly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 5; i++ {
		_, err := storage.Spawn(Position{X: float32(i)})
		require.NoError(t, err)
	}

	seen := 0
	for range ecs.NewQuery[Position](storage).Iter() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
