package command

import "github.com/rotisserie/eris"

// ErrStaleTarget is returned when a command's entity or component no longer
// exists at the time it executes or undoes.
var ErrStaleTarget = eris.New("command: target no longer exists")
