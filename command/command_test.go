package command_test

import (
	"testing"

	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) (*scene.Scene, *history.History) {
	t.Helper()
	return scene.New("test"), history.New()
}

func mustCreate(t *testing.T, s *scene.Scene, id scene.UUID, name string) scene.Entity {
	t.Helper()
	e, err := s.CreateEntityWithUUID(id, name)
	require.NoError(t, err)
	return e
}

func mustAttach(t *testing.T, s *scene.Scene, parent, child scene.Entity) {
	t.Helper()
	scene.Get[scene.Transform](s, child).Parent = parent.UUID()
	_, err := s.AppendChild(parent, child.UUID())
	require.NoError(t, err)
}

func lookup(t *testing.T, s *scene.Scene, id scene.UUID) scene.Entity {
	t.Helper()
	e, ok := s.Lookup(id)
	require.True(t, ok, "entity %s missing", id)
	return e
}
