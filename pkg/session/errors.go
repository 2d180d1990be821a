package session

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthExpired means a call failed with 403 even after a fresh
	// authentication, so the credentials are no longer accepted.
	ErrAuthExpired = errors.New("session: authentication expired and renewal was refused")

	// ErrInvalidURL means the project URL does not have the
	// .../api/{project}/ shape.
	ErrInvalidURL = errors.New("session: invalid project url")
)

// OpError is an error grid returned by the server. The call itself
// succeeded at the HTTP level; the op failed inside the server.
type OpError struct {
	// Op is the operation that failed.
	Op string

	// Dis is the display message from the error grid meta.
	Dis string

	// Trace is the server-side stack trace, when provided.
	Trace string
}

func (e *OpError) Error() string {
	if e.Dis == "" {
		return fmt.Sprintf("session: op %s failed", e.Op)
	}
	return fmt.Sprintf("session: op %s failed: %s", e.Op, e.Dis)
}

// CallError is a non-2xx HTTP response that is not an auth expiry.
type CallError struct {
	// Op is the operation that failed.
	Op string

	// Status is the HTTP status code.
	Status int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("session: op %s answered with status %d", e.Op, e.Status)
}
