package editor

import (
	"strings"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/scenedit/history"
)

// Config holds editor settings. Every field can be overridden through the
// environment variable named in its tag.
type Config struct {
	// HistoryCapacity bounds the undo history. Zero selects history.DefaultCapacity.
	HistoryCapacity int `config:"SCENEDIT_HISTORY_CAPACITY"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `config:"SCENEDIT_LOG_LEVEL"`

	// LogPretty switches from JSON to human-readable console output.
	LogPretty bool `config:"SCENEDIT_LOG_PRETTY"`

	WindowWidth  int `config:"SCENEDIT_WINDOW_WIDTH"`
	WindowHeight int `config:"SCENEDIT_WINDOW_HEIGHT"`

	// SceneName names the scene opened at startup.
	SceneName string `config:"SCENEDIT_SCENE_NAME"`
}

func DefaultConfig() Config {
	return Config{
		HistoryCapacity: history.DefaultCapacity,
		LogLevel:        "info",
		WindowWidth:     1280,
		WindowHeight:    720,
		SceneName:       "Untitled",
	}
}

// LoadConfig starts from DefaultConfig, applies the KEY=VALUE file at path
// when path is not empty, then the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	builder := config.FromEnv()
	if path != "" {
		builder = config.From(path).FromEnv()
	}
	if err := builder.To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load editor config")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate editor config")
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return eris.Errorf("invalid log level: %s (must be 'debug', 'info', 'warn', or 'error')", cfg.LogLevel)
	}
	if cfg.HistoryCapacity < 0 {
		return eris.Errorf("history capacity must not be negative, got %d", cfg.HistoryCapacity)
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return eris.Errorf("invalid window size %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	return nil
}
