package editor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/scenedit/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := editor.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, editor.DefaultConfig(), cfg)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SCENEDIT_HISTORY_CAPACITY", "50")
	t.Setenv("SCENEDIT_LOG_LEVEL", "debug")
	t.Setenv("SCENEDIT_SCENE_NAME", "Level1")

	cfg, err := editor.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.HistoryCapacity)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Level1", cfg.SceneName)
	assert.Equal(t, 1280, cfg.WindowWidth)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenedit.env")
	require.NoError(t, os.WriteFile(path, []byte("SCENEDIT_WINDOW_WIDTH=800\nSCENEDIT_SCENE_NAME=FromFile\n"), 0o600))
	t.Setenv("SCENEDIT_SCENE_NAME", "FromEnv")

	cfg, err := editor.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.WindowWidth)
	assert.Equal(t, "FromEnv", cfg.SceneName)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("SCENEDIT_LOG_LEVEL", "loud")

	_, err := editor.LoadConfig("")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := editor.DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.HistoryCapacity = -1
	assert.Error(t, cfg.Validate())

	cfg = editor.DefaultConfig()
	cfg.WindowHeight = 0
	assert.Error(t, cfg.Validate())
}
