package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/division"
	"github.com/agbru/bigcalc/pkg/models"
)

// Menu text. The wording is part of the program's observable behaviour and
// is reproduced exactly, including the trailing spaces of the prompts.
const (
	menuTitle        = "***BigInt Menu***"
	menuIntro        = "Please enter two unlimited numbers: "
	menuPromptFirst  = "Please enter the first unlimited number: "
	menuPromptSecond = "Please enter the second unlimited number: "

	lineFirst      = "The first unlimited integer is: "
	lineSecond     = "The second unlimited integer is: "
	lineSum        = "The sum of these two unlimited numbers is: "
	lineDifference = "The difference between these two unlimited numbers is: "
	lineProduct    = "The product of these two unlimited numbers is: "
	lineQuotient   = "The portion of these two unlimited numbers is: "
	lineEqual      = "Both unlimited integers are equals to each other."
	lineUnequal    = "Both unlimited integers are unequals to each other."
	lineGreater    = "The first unlimited integer is greater than the second one."
	lineLess       = "The first unlimited integer is less than the second one."
)

// Menu is the original two-number driver: it reads two integers, re-prompting
// on malformed input, and prints every operation on them.
type Menu struct {
	in      *bufio.Reader
	out     io.Writer
	divider division.Divider
}

// NewMenu returns a menu reading from in and writing to out. A nil divider
// selects long division.
func NewMenu(in io.Reader, out io.Writer, divider division.Divider) *Menu {
	if divider == nil {
		divider = division.NewDivider(division.LongDivision{})
	}
	return &Menu{in: bufio.NewReader(in), out: out, divider: divider}
}

// Run executes one menu session. It returns io.ErrUnexpectedEOF when the
// input ends before both numbers are read, and the context error when the
// division is interrupted. A zero divisor is reported in the output, not
// returned.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintf(m.out, "%s\n\n", menuTitle)
	fmt.Fprintln(m.out, menuIntro)

	x, err := m.readOperand(ctx, menuPromptFirst)
	if err != nil {
		return err
	}
	y, err := m.readOperand(ctx, menuPromptSecond)
	if err != nil {
		return err
	}

	q, divErr := m.divider.Divide(ctx, nil, 0, x, y)
	if divErr != nil && !errors.Is(divErr, bigint.ErrDivisionByZero) {
		return divErr
	}
	writeReportLines(m.out, BuildReport(models.OpAll, x, y, q, divErr), bigint.BigInt.String)
	return nil
}

// readOperand prompts until a line parses. Parse errors are printed and the
// prompt repeats.
func (m *Menu) readOperand(ctx context.Context, prompt string) (bigint.BigInt, error) {
	for {
		if err := ctx.Err(); err != nil {
			return bigint.BigInt{}, err
		}
		fmt.Fprintln(m.out, prompt)
		line, err := m.readLine()
		if err != nil {
			return bigint.BigInt{}, err
		}
		v, err := bigint.Parse(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(m.out, err.Error())
	}
}

// readLine returns the next input line without its terminator. Only "\n" or
// "\r\n" is removed; surrounding spaces are kept and rejected by Parse.
func (m *Menu) readLine() (string, error) {
	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", io.ErrUnexpectedEOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// writeReportLines prints the menu's result block for r, rendering each
// value with format. Fields missing from r are skipped.
func writeReportLines(out io.Writer, r models.Report, format func(bigint.BigInt) string) {
	fmt.Fprintln(out, lineFirst+format(r.A))
	fmt.Fprintln(out, lineSecond+format(r.B))
	if r.Sum != nil {
		fmt.Fprintln(out, lineSum+format(*r.Sum))
	}
	if r.Difference != nil {
		fmt.Fprintln(out, lineDifference+format(*r.Difference))
	}
	if r.Product != nil {
		fmt.Fprintln(out, lineProduct+format(*r.Product))
	}
	if r.Quotient != nil {
		fmt.Fprintln(out, lineQuotient+format(*r.Quotient))
	} else if r.Error != "" {
		fmt.Fprintln(out, r.Error)
	}
	if r.Comparison != nil {
		for _, line := range comparisonLines(*r.Comparison) {
			fmt.Fprintln(out, line)
		}
	}
}

// comparisonLines renders the result of x.Cmp(y).
func comparisonLines(cmp int) []string {
	switch {
	case cmp == 0:
		return []string{lineEqual}
	case cmp > 0:
		return []string{lineUnequal, lineGreater}
	default:
		return []string{lineUnequal, lineLess}
	}
}
