package history

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// DefaultCapacity bounds the history when no capacity is configured.
const DefaultCapacity = 1000

// History is a bounded linear undo/redo history. It is not safe for
// concurrent use; the editor drives it from the UI thread only.
type History struct {
	commands []Command
	cursor   int
	capacity int
	logger   zerolog.Logger
	closed   bool
}

type Option func(*History)

// WithCapacity bounds the number of retained commands. n <= 0 selects DefaultCapacity.
func WithCapacity(n int) Option {
	return func(h *History) {
		if n <= 0 {
			n = DefaultCapacity
		}
		h.capacity = n
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(h *History) {
		h.logger = logger
	}
}

func New(opts ...Option) *History {
	h := &History{
		cursor:   -1,
		capacity: DefaultCapacity,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddCommand executes cmd and records it after the cursor. The redo tail is
// discarded first, then cmd is offered the previous entry to merge with. A
// command whose Execute fails is not recorded.
func (h *History) AddCommand(cmd Command) error {
	if h.closed {
		return ErrClosed
	}
	if err := cmd.Execute(); err != nil {
		h.logFailure(err, cmd, "execute failed")
		return eris.Wrapf(err, "execute %q", cmd.Description())
	}

	h.truncate(h.cursor + 1)

	if h.cursor >= 0 {
		prev := h.commands[h.cursor]
		if CanMerge(cmd, prev) && cmd.Merge(prev) {
			h.commands[h.cursor] = cmd
			h.logger.Debug().
				Str("command", cmd.Description()).
				Int("cursor", h.cursor).
				Int("size", len(h.commands)).
				Msg("command merged")
			return nil
		}
	}

	if len(h.commands) >= h.capacity {
		evicted := h.commands[0]
		discard(evicted)
		h.commands[0] = nil
		h.commands = h.commands[1:]
		h.logger.Debug().Str("command", evicted.Description()).Msg("command evicted")
	}

	h.commands = append(h.commands, cmd)
	h.cursor = len(h.commands) - 1
	h.logger.Debug().
		Str("command", cmd.Description()).
		Int("cursor", h.cursor).
		Int("size", len(h.commands)).
		Msg("command added")
	return nil
}

// Undo reverts the command at the cursor. With nothing applied it does nothing.
// If the command fails the cursor stays put.
func (h *History) Undo() error {
	if h.cursor < 0 {
		return nil
	}
	cmd := h.commands[h.cursor]
	if err := cmd.Undo(); err != nil {
		h.logFailure(err, cmd, "undo failed")
		return eris.Wrapf(err, "undo %q", cmd.Description())
	}
	h.cursor--
	h.logger.Debug().Str("command", cmd.Description()).Int("cursor", h.cursor).Int("size", len(h.commands)).Msg("undo")
	return nil
}

// Redo re-applies the command after the cursor. At the newest entry it does nothing.
func (h *History) Redo() error {
	if h.cursor+1 >= len(h.commands) {
		return nil
	}
	cmd := h.commands[h.cursor+1]
	if err := cmd.Execute(); err != nil {
		h.logFailure(err, cmd, "redo failed")
		return eris.Wrapf(err, "redo %q", cmd.Description())
	}
	h.cursor++
	h.logger.Debug().Str("command", cmd.Description()).Int("cursor", h.cursor).Int("size", len(h.commands)).Msg("redo")
	return nil
}

// SetNoMerge closes the merge window of the newest applied command.
func (h *History) SetNoMerge() {
	if h.cursor >= 0 {
		h.commands[h.cursor].SetNoMerge()
	}
}

// Reset drops every command, typically when a new scene is loaded.
func (h *History) Reset() {
	h.truncate(0)
	h.cursor = -1
}

// Shutdown resets the history and rejects further commands.
func (h *History) Shutdown() {
	h.Reset()
	h.closed = true
}

func (h *History) CanUndo() bool {
	return h.cursor >= 0
}

func (h *History) CanRedo() bool {
	return h.cursor+1 < len(h.commands)
}

// Len returns the number of retained commands, including the redo tail.
func (h *History) Len() int {
	return len(h.commands)
}

// Cursor returns the index of the newest applied command, or -1.
func (h *History) Cursor() int {
	return h.cursor
}

func (h *History) Capacity() int {
	return h.capacity
}

// Entry describes one retained command.
type Entry struct {
	Description string
	Applied     bool
}

// Entries lists retained commands oldest first. Entries after the cursor are
// the redo tail and report Applied false.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.commands))
	for i, cmd := range h.commands {
		out[i] = Entry{Description: cmd.Description(), Applied: i <= h.cursor}
	}
	return out
}

// truncate discards every command at index n and beyond.
func (h *History) truncate(n int) {
	if n >= len(h.commands) {
		return
	}
	for i := n; i < len(h.commands); i++ {
		discard(h.commands[i])
		h.commands[i] = nil
	}
	h.commands = h.commands[:n]
}

func (h *History) logFailure(err error, cmd Command, msg string) {
	h.logger.Warn().Err(err).Str("command", cmd.Description()).Int("cursor", h.cursor).Msg(msg)
}

func discard(cmd Command) {
	if d, ok := cmd.(Discarder); ok {
		d.Discard()
	}
}
