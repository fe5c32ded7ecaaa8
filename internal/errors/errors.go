// Package apperrors holds the error types shared by the bigcalc drivers and
// the exit codes they map to. Every wrapping type implements Unwrap, so
// callers inspect causes with errors.Is and errors.As.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // division strategies disagree on the quotient
	ExitErrorConfig   = 4 // bad flags, environment or operand text
	ExitErrorCanceled = 130
)

// ConfigError is an invalid flag, environment value or .env entry.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// OperandError reports an operand that could not be parsed as an integer.
// Its message is the parser's user-facing message so drivers can print it
// verbatim; Operand names the offending input ("a", "b", "first", ...).
type OperandError struct {
	Operand string
	// Cause is usually a *bigint.FormatError.
	Cause error
}

func (e OperandError) Error() string { return e.Cause.Error() }

func (e OperandError) Unwrap() error { return e.Cause }

// NewOperandError wraps a parse failure for the named operand.
func NewOperandError(operand string, cause error) error {
	return OperandError{Operand: operand, Cause: cause}
}

// CalculationError marks a failure raised while a division strategy ran,
// as opposed to a request that was rejected before any work started. The
// message is the cause's.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError is a failure to start or stop the HTTP server.
type ServerError struct {
	Message string
	Cause   error // may be nil
}

func (e ServerError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError builds a ServerError; cause may be nil.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError prefixes err with a formatted context message, keeping it
// reachable through errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError is a rejected request parameter. Value holds the offending
// input when it is useful in logs.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
