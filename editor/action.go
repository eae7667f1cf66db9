package editor

import "github.com/rotisserie/eris"

// Action is an editor operation bound to a keyboard shortcut.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionDuplicate
	ActionDelete
	ActionNewEntity
	ActionNewScene
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionUndo:      "Undo",
	ActionRedo:      "Redo",
	ActionDuplicate: "Duplicate",
	ActionDelete:    "Delete",
	ActionNewEntity: "New Entity",
	ActionNewScene:  "New Scene",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Perform runs a. Actions that need a selection do nothing without one.
func (s *Session) Perform(a Action) error {
	if _, ok := actionNames[a]; !ok {
		return eris.Errorf("unknown action %d", a)
	}

	switch a {
	case ActionNone:
		return nil
	case ActionUndo:
		return s.Undo()
	case ActionRedo:
		return s.Redo()
	case ActionNewEntity:
		_, err := s.CreateEntity("")
		return err
	case ActionNewScene:
		s.NewScene(s.cfg.SceneName)
		return nil
	}

	selected, ok := s.Selected()
	if !ok {
		return nil
	}
	switch a {
	case ActionDuplicate:
		_, err := s.Duplicate(selected.UUID())
		return err
	case ActionDelete:
		return s.Destroy(selected.UUID())
	}
	return nil
}
