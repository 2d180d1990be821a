package hayson

import (
	"errors"
	"fmt"
)

// ErrUnknownKind reports a "_kind" discriminator this package does not
// recognize.
var ErrUnknownKind = errors.New("hayson: unknown _kind")

// ParseError reports malformed Hayson input.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "hayson: " + e.Msg
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
