// Package history provides the undo/redo engine of the scene editor.
//
// Every user-visible edit is a Command: a reversible unit of work that knows
// how to apply itself, how to put things back, and whether it can absorb the
// command added just before it.
//
// # History
//
// History is a bounded, linear sequence of executed commands with a single
// cursor pointing at the last applied entry:
//
//	h := history.New(history.WithCapacity(1000))
//
//	h.AddCommand(cmd) // executes cmd, then records it
//	h.Undo()
//	h.Redo()
//
// Adding a command after an undo discards the redo tail; branches are not
// kept. Once the capacity is reached the oldest command is dropped. Undo
// with nothing applied and Redo at the newest entry do nothing.
//
// # Merging
//
// When a command is added, History offers the previous entry to it through
// Merge. A successful merge replaces the previous entry with the new one,
// which adopts the older command's original state, so a slider drag that
// produces hundreds of edits undoes in a single step. SetNoMerge closes the
// merge window, typically when the mouse button is released.
//
// # Groups
//
// Group bundles several commands into one entry that executes in order and
// undoes in reverse.
package history
