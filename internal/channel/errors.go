// internal/channel/errors.go
package channel

import (
	"errors"
	"fmt"
)

// ErrShortResponse marks a response that arrived but did not carry the
// requested number of registers. Callers treat it the same as a
// transport failure: the operation did not complete.
var ErrShortResponse = errors.New("short response")

// Error wraps a failed register operation with its geometry.
type Error struct {
	Op   string
	Addr uint16
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("channel: %s addr=%d: %v", e.Op, e.Addr, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
