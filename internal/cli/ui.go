// The cli package provides the command-line drivers of the calculator: the
// two-number menu, the REPL, the one-shot report and the asynchronous display
// of division progress.
package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/division"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/briandowns/spinner"
)

// FormatExecutionDuration renders d in whole microseconds below 1ms, whole
// milliseconds below 1s and with time.Duration.String above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}

const (
	// TruncationLimit is the digit count above which a value is truncated
	// in the one-shot report unless -v is given.
	TruncationLimit = 100
	// DisplayEdges digits are kept at each end of a truncated value.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner and bar redraw period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar length in runes.
	ProgressBarWidth = 40
)

// Colour shorthands over the active ui theme, used throughout the package.
func ColorReset() string   { return ui.ColorReset() }
func ColorRed() string     { return ui.ColorRed() }
func ColorGreen() string   { return ui.ColorGreen() }
func ColorYellow() string  { return ui.ColorYellow() }
func ColorBlue() string    { return ui.ColorBlue() }
func ColorMagenta() string { return ui.ColorMagenta() }
func ColorCyan() string    { return ui.ColorCyan() }
func ColorBold() string    { return ui.ColorBold() }

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a real terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix replaces the text drawn after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState aggregates the progress of concurrent divisions so a single
// bar can be shown when several strategies run side by side.
type ProgressState struct {
	progresses  []float64
	numDividers int
}

// NewProgressState creates a ProgressState tracking numDividers strategies.
func NewProgressState(numDividers int) *ProgressState {
	return &ProgressState{
		progresses:  make([]float64, numDividers),
		numDividers: numDividers,
	}
}

// Update records a new progress value for a specific strategy.
// Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked strategies.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numDividers == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numDividers)
}

// progressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func progressBar(progress float64, length int) string {
	filled := int(min(max(progress, 0.0), 1.0) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// DisplayProgress renders a spinner and an averaged progress bar with ETA
// until progressChan is closed. It is meant to run in its own goroutine and
// calls wg.Done when it returns.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - progressChan: The channel receiving progress updates.
//   - numDividers: The number of strategies contributing to the progress.
//   - out: The io.Writer to which the progress bar is rendered.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan division.ProgressUpdate, numDividers int, out io.Writer) {
	defer wg.Done()
	if numDividers <= 0 {
		for range progressChan {
		}
		return
	}

	label := "Progress"
	if numDividers > 1 {
		label = "Avg progress"
	}

	state := NewProgressWithETA(numDividers)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.CalculatorIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label, FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}

// formatValue renders x for the one-shot report. Values longer than
// TruncationLimit digits are shortened to their edges unless verbose is set.
func formatValue(x bigint.BigInt, verbose bool) string {
	s := x.String()
	if verbose || x.Len() <= TruncationLimit {
		return s
	}
	sign := ""
	if x.IsNeg() {
		sign, s = "-", s[1:]
	}
	return fmt.Sprintf("%s%s...%s (%s digits)", sign, s[:DisplayEdges], s[len(s)-DisplayEdges:], formatNumberString(fmt.Sprint(x.Len())))
}

// formatNumberString groups the digits of a decimal string by thousands
// with commas, keeping a leading minus sign.
func formatNumberString(s string) string {
	sign, digits := "", s
	if strings.HasPrefix(s, "-") {
		sign, digits = "-", s[1:]
	}
	if len(digits) <= 3 {
		return s
	}
	groups := make([]string, 0, len(digits)/3+1)
	for end := len(digits); end > 0; end -= 3 {
		groups = append(groups, digits[max(end-3, 0):end])
	}
	slices.Reverse(groups)
	return sign + strings.Join(groups, ",")
}
