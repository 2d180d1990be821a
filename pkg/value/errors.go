package value

import "fmt"

// ValueError reports an invariant violation while constructing a value.
// The message names the violated constraint.
type ValueError struct {
	msg string
}

// Error returns the constraint violation message.
func (e *ValueError) Error() string {
	return e.msg
}

func newValueError(format string, args ...any) *ValueError {
	return &ValueError{msg: fmt.Sprintf(format, args...)}
}
