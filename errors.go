package prism

import "fmt"

// Sentinel errors surfaced by the shape arena and script-host API,
// grounded on original_source/lib/src/runtime/builtin.rs's Error enum.
var (
	ErrInvalidShapeHandle = fmt.Errorf("prism: invalid shape handle")
	ErrInvalidAxis        = fmt.Errorf("prism: invalid axis")
	ErrEmptyShapeMin      = fmt.Errorf("prism: cannot take the minimum of an empty shape")
	ErrEmptyShapeMax      = fmt.Errorf("prism: cannot take the maximum of an empty shape")
)

// ErrInvalidColor wraps a ParseColor failure for callers that need to
// distinguish "bad color syntax" from other script-host errors.
type ErrInvalidColor struct {
	Input string
	Err   error
}

func (e *ErrInvalidColor) Error() string {
	return fmt.Sprintf("prism: invalid color %q: %v", e.Input, e.Err)
}

func (e *ErrInvalidColor) Unwrap() error { return e.Err }

// ParseError reports a failure while compiling a declarative YAML tree,
// carrying the source position so a caller can point a user at the
// offending line. Line and Column are zero when the position is unknown;
// ParsePrismTree fills in Line only, so Column is always zero there.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("prism: parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}
