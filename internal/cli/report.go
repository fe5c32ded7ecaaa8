package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/pkg/models"
)

// ReportOptions controls how a one-shot report is printed.
type ReportOptions struct {
	// Verbose prints values in full instead of truncating them.
	Verbose bool
	// Details adds digit counts and per-strategy durations.
	Details bool
	// Quiet prints bare values, one per line.
	Quiet bool
}

// operationLabels names single operations in the report.
var operationLabels = map[string]string{
	models.OpAdd: "Sum",
	models.OpSub: "Difference",
	models.OpMul: "Product",
	models.OpDiv: "Quotient",
	models.OpCmp: "Comparison",
}

// NeedsDivision reports whether op includes the division.
func NeedsDivision(op string) bool {
	return op == models.OpAll || op == models.OpDiv
}

// BuildReport evaluates op on x and y. The quotient is computed by the
// caller (it depends on the selected strategies) and passed in with its
// error; it is ignored when op does not include the division.
func BuildReport(op string, x, y, quotient bigint.BigInt, divErr error) models.Report {
	r := models.Report{A: x, B: y}
	want := func(o string) bool { return op == models.OpAll || op == o }

	if want(models.OpAdd) {
		v := x.Add(y)
		r.Sum = &v
	}
	if want(models.OpSub) {
		v := x.Sub(y)
		r.Difference = &v
	}
	if want(models.OpMul) {
		v := x.Mul(y)
		r.Product = &v
	}
	if want(models.OpDiv) {
		if divErr != nil {
			r.Error = divErr.Error()
		} else {
			q := quotient
			r.Quotient = &q
		}
	}
	if want(models.OpCmp) {
		c := x.Cmp(y)
		r.Comparison = &c
	}
	return r
}

// DisplayReport prints r for op: the menu's result lines for "all", a single
// "<label>: <value>" line otherwise, or bare values in quiet mode.
//
// Parameters:
//   - out: The output writer.
//   - op: the operation that produced r.
//   - r: The report.
//   - opts: Rendering options.
func DisplayReport(out io.Writer, op string, r models.Report, opts ReportOptions) {
	if opts.Quiet {
		displayQuietReport(out, r)
		return
	}

	value := func(v bigint.BigInt) string { return formatValue(v, opts.Verbose) }
	if op == models.OpAll {
		writeReportLines(out, r, value)
	} else {
		text, ok := selectValue(op, r, value)
		color := ColorGreen()
		if !ok {
			color = ColorRed()
		}
		fmt.Fprintf(out, "%s%s%s: %s%s%s\n", ColorBold(), operationLabels[op], ColorReset(), color, text, ColorReset())
	}

	if opts.Details {
		displayDetails(out, r)
	}
}

// selectValue returns the field of r selected by op rendered with value,
// or the division error with ok false.
func selectValue(op string, r models.Report, value func(bigint.BigInt) string) (text string, ok bool) {
	var v *bigint.BigInt
	switch op {
	case models.OpAdd:
		v = r.Sum
	case models.OpSub:
		v = r.Difference
	case models.OpMul:
		v = r.Product
	case models.OpDiv:
		v = r.Quotient
	case models.OpCmp:
		if r.Comparison != nil {
			return fmt.Sprint(*r.Comparison), true
		}
	}
	if v == nil {
		return r.Error, false
	}
	return value(*v), true
}

// displayQuietReport prints each present value on its own line, in report
// order. A failed division prints its error message in place of the quotient.
func displayQuietReport(out io.Writer, r models.Report) {
	for _, v := range []*bigint.BigInt{r.Sum, r.Difference, r.Product} {
		if v != nil {
			fmt.Fprintln(out, v.String())
		}
	}
	if r.Quotient != nil {
		fmt.Fprintln(out, r.Quotient.String())
	} else if r.Error != "" {
		fmt.Fprintln(out, r.Error)
	}
	if r.Comparison != nil {
		fmt.Fprintln(out, *r.Comparison)
	}
}

// displayDetails prints digit counts and the per-strategy timings.
func displayDetails(out io.Writer, r models.Report) {
	fmt.Fprintf(out, "\n%s--- Details ---%s\n", ColorBold(), ColorReset())
	rows := []struct {
		label string
		v     *bigint.BigInt
	}{
		{"First operand", &r.A},
		{"Second operand", &r.B},
		{"Sum", r.Sum},
		{"Difference", r.Difference},
		{"Product", r.Product},
		{"Quotient", r.Quotient},
	}
	for _, row := range rows {
		if row.v == nil {
			continue
		}
		fmt.Fprintf(out, "%-16s: %s%s%s digits\n", row.label, ColorCyan(), formatNumberString(fmt.Sprint(row.v.Len())), ColorReset())
	}
	for _, d := range r.Divisions {
		status := ColorGreen() + "OK" + ColorReset()
		if d.Error != "" {
			status = ColorRed() + d.Error + ColorReset()
		}
		fmt.Fprintf(out, "%-16s: %s%s%s %s\n", d.Algorithm, ColorYellow(), d.Duration, ColorReset(), status)
	}
}

// NewDivisionResult converts one strategy's outcome for the report.
func NewDivisionResult(name string, result bigint.BigInt, duration time.Duration, err error) models.DivisionResult {
	d := models.DivisionResult{Algorithm: name, Duration: FormatExecutionDuration(duration)}
	if err != nil {
		d.Error = err.Error()
	} else {
		v := result
		d.Result = &v
	}
	return d
}
