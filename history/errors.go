package history

import "github.com/rotisserie/eris"

// ErrClosed is returned by AddCommand after Shutdown.
var ErrClosed = eris.New("history: closed")
