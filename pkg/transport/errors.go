package transport

import "fmt"

// Error wraps a network-level failure with the operation and URL it
// occurred on. HTTP error statuses are not transport errors.
type Error struct {
	Op  string
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
