package history

// Command is a reversible unit of work.
type Command interface {
	// Execute applies the forward effect. It runs once when the command is
	// added and again on every Redo.
	Execute() error
	// Undo applies the exact inverse of the latest Execute.
	Undo() error
	// Merge folds older, the command immediately before this one, into this
	// command. On success the receiver must restore older's original state on
	// Undo and History drops older.
	Merge(older Command) bool
	CanMerge() bool
	// SetNoMerge permanently disables merging for this instance.
	SetNoMerge()
	Description() string
}

// Discarder is implemented by commands that hold resources to release when
// History drops them through truncation, eviction, Reset or Shutdown.
type Discarder interface {
	Discard()
}

// Mergeable carries the one-way merge latch. The zero value can merge.
// Embed it in commands to get CanMerge and SetNoMerge.
type Mergeable struct {
	noMerge bool
}

func (m *Mergeable) CanMerge() bool {
	return !m.noMerge
}

func (m *Mergeable) SetNoMerge() {
	m.noMerge = true
}

// Discrete is embedded by commands that never merge, such as entity creation.
type Discrete struct {
	Mergeable
}

func (Discrete) Merge(Command) bool {
	return false
}

// CanMerge reports whether both commands still accept merging.
func CanMerge(newer, older Command) bool {
	return newer.CanMerge() && older.CanMerge()
}
