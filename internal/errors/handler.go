package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
)

// ColorProvider supplies the highlight codes used in failure messages. The
// cli package implements it over the active theme.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider highlights nothing.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError writes a one-line status for err to out and returns
// the matching exit code: 2 on timeout, 130 on cancellation, 4 for a
// malformed operand and 1 otherwise. A positive duration is appended to
// timeout and cancellation messages. colors may be nil.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	var after string
	if duration > 0 {
		after = " after " + colors.Yellow() + duration.String() + colors.Reset()
	}

	var formatErr *bigint.FormatError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", after)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), after, colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &formatErr):
		fmt.Fprintln(out, "Status: Failure.", formatErr.Error())
		return ExitErrorConfig
	case errors.Is(err, bigint.ErrDivisionByZero):
		fmt.Fprintln(out, "Status: Failure.", bigint.MsgDivisionByZero)
		return ExitErrorGeneric
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
		return ExitErrorGeneric
	}
}
