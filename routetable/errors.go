package routetable

import "fmt"

// OddLengthError reports a hex field whose character count is not even.
type OddLengthError struct {
	Field string
}

// Error returns a string representation of the error
func (e *OddLengthError) Error() string {
	return fmt.Sprintf("hex field %q has odd length %d", e.Field, len(e.Field))
}

// OutOfHexRangeError reports a byte that is not an ASCII hex digit.
type OutOfHexRangeError struct {
	Byte byte
}

// Error returns a string representation of the error
func (e *OutOfHexRangeError) Error() string {
	return fmt.Sprintf("byte %#02x is not a hex digit", e.Byte)
}

// FieldWidthError reports a hex field that decoded to an unexpected number of bytes.
type FieldWidthError struct {
	Want int
	Got  int
}

// Error returns a string representation of the error
func (e *FieldWidthError) Error() string {
	return fmt.Sprintf("expected %d decoded bytes, got %d", e.Want, e.Got)
}

// InvalidFieldCountError reports a route line with fewer fields than the
// table format requires.
type InvalidFieldCountError struct {
	Expected int
	Found    int
}

// Error returns a string representation of the error
func (e *InvalidFieldCountError) Error() string {
	return fmt.Sprintf("invalid route entry format: expected %d fields, found %d", e.Expected, e.Found)
}

// MissingFieldError reports an absent field at a specific index after the
// field-count check has already passed.
type MissingFieldError struct {
	Index int
}

// Error returns a string representation of the error
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field at index %d", e.Index)
}

// LineError wraps a parse failure with the 1-based number of the line it
// occurred on, counted from the first line of the source including any
// skipped header.
type LineError struct {
	Line int
	Err  error
}

// Error returns a string representation of the error
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *LineError) Unwrap() error {
	return e.Err
}
