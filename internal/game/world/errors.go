package world

import "fmt"

// LoadError reports a malformed layout source. Line is 1-based and zero when
// the source format has no line information for the failure.
type LoadError struct {
	Line  int
	Field string
	Msg   string
}

// Error implements error.
func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d (%s): %s", e.Line, e.Field, e.Msg)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Field, e.Msg)
}

// ValidationError reports a description that parsed but violates a layout
// invariant: out-of-bounds or overlapping rooms, bad item placement, negative
// damage or health, or an invalid starting room.
type ValidationError struct {
	Field string
	Msg   string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid layout: %s: %s", e.Field, e.Msg)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
