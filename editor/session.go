package editor

import (
	"github.com/rs/zerolog"

	"github.com/plus3/scenedit/command"
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
)

// Session is the editor state for one window: the open scene, its undo
// history and the current selection. A new scene always starts with an empty
// history, since recorded commands address entities of the old one.
type Session struct {
	cfg      Config
	logger   zerolog.Logger
	scene    *scene.Scene
	history  *history.History
	selected scene.UUID
}

func NewSession(cfg Config, logger zerolog.Logger) *Session {
	s := &Session{
		cfg:    cfg,
		logger: logger,
		history: history.New(
			history.WithCapacity(cfg.HistoryCapacity),
			history.WithLogger(logger.With().Str("component", "history").Logger()),
		),
	}
	s.scene = s.newScene(cfg.SceneName)
	return s
}

func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) Logger() zerolog.Logger {
	return s.logger
}

func (s *Session) Scene() *scene.Scene {
	return s.scene
}

func (s *Session) History() *history.History {
	return s.history
}

// NewScene replaces the open scene with an empty one and clears the history.
func (s *Session) NewScene(name string) *scene.Scene {
	s.history.Reset()
	s.selected = 0
	s.scene = s.newScene(name)
	s.logger.Info().Str("scene", name).Msg("new scene")
	return s.scene
}

func (s *Session) newScene(name string) *scene.Scene {
	return scene.New(name, scene.WithLogger(s.logger.With().Str("component", "scene").Logger()))
}

// Title is the window title, with a trailing "*" while there are unsaved edits.
func (s *Session) Title() string {
	if s.scene.Dirty() {
		return s.scene.Name() + "*"
	}
	return s.scene.Name()
}

// Do executes cmd and records it in the history.
func (s *Session) Do(cmd history.Command) error {
	return s.history.AddCommand(cmd)
}

func (s *Session) Undo() error {
	err := s.history.Undo()
	s.dropStaleSelection()
	return err
}

func (s *Session) Redo() error {
	err := s.history.Redo()
	s.dropStaleSelection()
	return err
}

// EndEdit closes the merge window of the latest command, e.g. when a drag ends.
func (s *Session) EndEdit() {
	s.history.SetNoMerge()
}

func (s *Session) Select(id scene.UUID) {
	s.selected = id
}

// Selected returns the selected entity, if any is selected and still alive.
func (s *Session) Selected() (scene.Entity, bool) {
	if s.selected == 0 {
		return scene.Entity{}, false
	}
	return s.scene.Lookup(s.selected)
}

func (s *Session) dropStaleSelection() {
	if _, ok := s.Selected(); !ok {
		s.selected = 0
	}
}

// CreateEntity creates a root entity and selects it.
func (s *Session) CreateEntity(name string) (scene.UUID, error) {
	cmd := command.NewCreateEntity(s.scene, name)
	if err := s.Do(cmd); err != nil {
		return 0, err
	}
	s.selected = cmd.ID()
	return cmd.ID(), nil
}

// CreateChild creates an entity under parent and selects it.
func (s *Session) CreateChild(parent scene.UUID, name string) (scene.UUID, error) {
	cmd := command.NewCreateChildEntity(s.scene, parent, name)
	if err := s.Do(cmd); err != nil {
		return 0, err
	}
	s.selected = cmd.ID()
	return cmd.ID(), nil
}

// Destroy destroys the given entities and their subtrees as one undo step.
// Entities whose ancestor is also listed go down with the ancestor.
func (s *Session) Destroy(ids ...scene.UUID) error {
	ids = s.topLevel(ids)
	if len(ids) == 0 {
		return nil
	}
	var cmd history.Command
	if len(ids) == 1 {
		cmd = command.NewDestroyEntity(s.scene, ids[0])
	} else {
		cmds := make([]history.Command, len(ids))
		for i, id := range ids {
			cmds[i] = command.NewDestroyEntity(s.scene, id)
		}
		cmd = history.Group("Destroy Entities", cmds...)
	}
	if err := s.Do(cmd); err != nil {
		return err
	}
	s.dropStaleSelection()
	return nil
}

func (s *Session) topLevel(ids []scene.UUID) []scene.UUID {
	listed := make(map[scene.UUID]bool, len(ids))
	for _, id := range ids {
		listed[id] = true
	}
	out := make([]scene.UUID, 0, len(ids))
	for _, id := range ids {
		e, ok := s.scene.Lookup(id)
		if !ok {
			out = append(out, id)
			continue
		}
		covered := false
		for p, ok := s.scene.Parent(e); ok; p, ok = s.scene.Parent(p) {
			if listed[p.UUID()] {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, id)
		}
	}
	return out
}

// Duplicate copies id and its subtree and selects the copy.
func (s *Session) Duplicate(id scene.UUID) (scene.UUID, error) {
	cmd, err := command.NewDuplicateEntity(s.scene, id)
	if err != nil {
		return 0, err
	}
	if err := s.Do(cmd); err != nil {
		return 0, err
	}
	s.selected = cmd.ID()
	return cmd.ID(), nil
}

// Set records a change of field to value.
func Set[T any](s *Session, field command.Field[T], value T) error {
	return s.Do(command.NewChangeValue(s.scene, field, value))
}

// Shutdown releases the history. The session must not be used afterwards.
func (s *Session) Shutdown() {
	s.history.Shutdown()
	s.logger.Info().Msg("editor session closed")
}
