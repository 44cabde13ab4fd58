package header

import (
	"errors"
	"fmt"
)

// Standard header errors. Callers should match these with errors.Is; the
// wrapping FieldError carries the offending field name.
var (
	// ErrParse indicates a malformed header construct where a field was
	// expected: invalid JSON on a line that should hold a field, a field
	// value of the wrong JSON type, or an unparsable extension path.
	ErrParse = errors.New("malformed header field")

	// ErrMissingField indicates a required core field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrDimensionMismatch indicates an array-valued field whose length does
	// not equal the declared dimension.
	ErrDimensionMismatch = errors.New("array length does not match dimension")
)

// FieldError wraps a sentinel header error with the field it concerns.
type FieldError struct {
	// Field is the header field name, including the namespace prefix for
	// extension fields.
	Field string

	// Detail optionally refines the message (e.g. "expected 3 elements,
	// got 2").
	Detail string

	// Err is the wrapped sentinel error.
	Err error
}

// Error returns a human-readable description including the field name.
func (e *FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("field %q: %s: %s", e.Field, e.Err, e.Detail)
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Err)
}

// Unwrap returns the underlying sentinel error, enabling errors.Is matching
// through FieldError wrapping.
func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(field string, err error, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Detail: fmt.Sprintf(format, args...), Err: err}
}
