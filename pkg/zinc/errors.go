package zinc

import "fmt"

// ParseError reports malformed Zinc input with the position where
// parsing stopped. Line and Col are 1-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

// Error formats the message with its position.
func (e *ParseError) Error() string {
	return fmt.Sprintf("zinc: %s (line %d, col %d)", e.Msg, e.Line, e.Col)
}
