package history

import (
	"errors"

	"github.com/rotisserie/eris"
)

type group struct {
	Discrete
	description string
	commands    []Command
}

// Group combines commands into a single history entry. Execute runs them in
// order and Undo in reverse; if one fails, the ones already applied are rolled
// back before the error is returned. Groups never merge.
func Group(description string, commands ...Command) Command {
	return &group{description: description, commands: commands}
}

func (g *group) Execute() error {
	for i, cmd := range g.commands {
		if err := cmd.Execute(); err != nil {
			return g.rollback(eris.Wrapf(err, "%s: step %d", g.description, i), func(j int) error {
				return g.commands[j].Undo()
			}, i-1, -1)
		}
	}
	return nil
}

func (g *group) Undo() error {
	for i := len(g.commands) - 1; i >= 0; i-- {
		if err := g.commands[i].Undo(); err != nil {
			return g.rollback(eris.Wrapf(err, "%s: undo step %d", g.description, i), func(j int) error {
				return g.commands[j].Execute()
			}, i+1, 1)
		}
	}
	return nil
}

// rollback re-applies or reverts the already processed commands starting at
// from, stepping by step, and joins any failure onto cause.
func (g *group) rollback(cause error, revert func(int) error, from, step int) error {
	errs := []error{cause}
	for j := from; j >= 0 && j < len(g.commands); j += step {
		if err := revert(j); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *group) Description() string {
	return g.description
}

func (g *group) Discard() {
	for _, cmd := range g.commands {
		discard(cmd)
	}
}
