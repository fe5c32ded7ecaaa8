package bigint

import (
	"errors"
	"fmt"
)

// User-facing messages carried by the package errors. Drivers print them
// verbatim.
const (
	MsgEmptyInput     = "Input can't be null. Please try again."
	MsgInvalidFormat  = "Invalid number format. Please try again."
	MsgDivisionByZero = "Division by 0 is not allowed."
)

var (
	// ErrEmptyInput is wrapped by a FormatError when the input text is empty.
	ErrEmptyInput = errors.New(MsgEmptyInput)
	// ErrInvalidFormat is wrapped by a FormatError when the input text is not
	// an optional '-' followed by at least one ASCII digit.
	ErrInvalidFormat = errors.New(MsgInvalidFormat)
	// ErrDivisionByZero is returned by the division methods for a zero divisor.
	ErrDivisionByZero = errors.New(MsgDivisionByZero)
	// ErrDigitRange is returned by FromDigits for a digit value above 9.
	ErrDigitRange = errors.New("digit value out of range [0, 9]")
)

// FormatError reports text that could not be parsed as a BigInt.
type FormatError struct {
	Input  string // the rejected text
	Offset int    // byte index of the first offending character, -1 for empty input
	Err    error  // ErrEmptyInput or ErrInvalidFormat
}

// Error returns the user-facing message of the wrapped sentinel.
func (e *FormatError) Error() string {
	if e.Err == nil {
		return MsgInvalidFormat
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped sentinel so errors.Is works on FormatError.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Detail describes where parsing failed. It is meant for logs and verbose
// output, Error stays the short message shown to users.
func (e *FormatError) Detail() string {
	if e.Offset < 0 {
		return "empty input"
	}
	if e.Offset >= len(e.Input) {
		return fmt.Sprintf("no digits in %q", e.Input)
	}
	return fmt.Sprintf("unexpected %q at offset %d in %q", e.Input[e.Offset], e.Offset, e.Input)
}
