package kdl

import (
	"errors"
	"fmt"
)

// ErrSyntax matches every [*ParseError] via [errors.Is].
var ErrSyntax = errors.New("kdl syntax error")

// ParseError describes why a document could not be parsed.
type ParseError struct {
	Reason  string
	Pos     Position
	Dialect Dialect
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d, column %d: %s", e.Dialect, e.Pos.Line, e.Pos.Column, e.Reason)
}

// Is reports whether target is [ErrSyntax].
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}
