// Package orchestration runs several division strategies on the same operands
// concurrently and cross-checks their quotients.
package orchestration

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/division"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/ui"
)

// DivisionResult is the outcome of one strategy.
type DivisionResult struct {
	// Name is the display name of the strategy (e.g., "Long Division").
	Name string
	// Result is the quotient. It is the zero value if Err is set.
	Result bigint.BigInt
	// Duration is the time taken by the strategy.
	Duration time.Duration
	// Err is the strategy's failure, if any.
	Err error
}

// Summary is the verdict of AnalyzeComparisonResults.
type Summary struct {
	// Quotient is the agreed quotient when at least one strategy succeeded.
	Quotient bigint.BigInt
	// Err is set when no strategy succeeded. A zero divisor leaves
	// bigint.ErrDivisionByZero here with ExitCode 0: it is a result to report,
	// not a failure of the run.
	Err error
	// ExitCode is the process exit code for the comparison.
	ExitCode int
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel, per strategy.
const ProgressBufferMultiplier = 5

// ExecuteDivisions computes x / y with every divider concurrently, displaying
// the averaged progress on out. Results are returned in the order of dividers.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - dividers: The strategies to execute.
//   - x, y: the dividend and the divisor.
//   - out: The io.Writer for the progress display.
//
// Returns:
//   - []DivisionResult: one result per divider.
func ExecuteDivisions(ctx context.Context, dividers []division.Divider, x, y bigint.BigInt, out io.Writer) []DivisionResult {
	// The progress gauge is keyed by index; clear entries from a previous batch.
	division.NewMetricsObserver().ResetMetrics()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]DivisionResult, len(dividers))
	progressChan := make(chan division.ProgressUpdate, len(dividers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(dividers), out)

	for i, d := range dividers {
		d := d
		i := i
		g.Go(func() error {
			start := time.Now()
			q, err := d.Divide(ctx, progressChan, i, x, y)
			results[i] = DivisionResult{Name: d.Name(), Result: q, Duration: time.Since(start), Err: err}
			// Failures are collected per strategy, they never cancel the others.
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults prints a table of the strategies sorted by success
// then duration and checks that every successful quotient is identical.
// The table is printed only when more than one strategy ran.
//
// Parameters:
//   - results: The results to analyze. The slice is not modified.
//   - out: The io.Writer for the summary.
//
// Returns:
//   - Summary: the agreed quotient or the shared failure, and an exit code.
func AnalyzeComparisonResults(results []DivisionResult, out io.Writer) Summary {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b DivisionResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Duration, b.Duration)
	})

	if len(sorted) > 1 {
		printComparisonTable(sorted, out)
	}

	var first *DivisionResult
	var firstErr error
	for i := range sorted {
		if sorted[i].Err == nil {
			first = &sorted[i]
			break
		}
		if firstErr == nil {
			firstErr = sorted[i].Err
		}
	}

	if first == nil {
		if firstErr == nil {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No division strategy was run.\n")
			return Summary{Err: errors.New("no division strategy selected"), ExitCode: apperrors.ExitErrorGeneric}
		}
		if errors.Is(firstErr, bigint.ErrDivisionByZero) {
			return Summary{Err: firstErr, ExitCode: apperrors.ExitSuccess}
		}
		if len(sorted) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the division.\n")
		}
		return Summary{Err: firstErr, ExitCode: apperrors.HandleCalculationError(firstErr, 0, out, cli.CLIColorProvider{})}
	}

	for _, res := range sorted {
		if res.Err == nil && !res.Result.Equal(first.Result) {
			fmt.Fprintf(out, "\n%sGlobal Status: CRITICAL ERROR! The division strategies disagree on the quotient.%s\n", ui.ColorRed(), ui.ColorReset())
			return Summary{Quotient: first.Result, ExitCode: apperrors.ExitErrorMismatch}
		}
	}

	if len(sorted) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid quotients are consistent.\n\n")
	}
	return Summary{Quotient: first.Result, ExitCode: apperrors.ExitSuccess}
}

func printComparisonTable(results []DivisionResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sStrategy%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}
