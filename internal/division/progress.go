package division

import (
	"math"

	"github.com/agbru/bigcalc/internal/bigint"
)

// ProgressUpdate is a data transfer object that carries the progress of one
// division. It is sent over a channel from a divider to the user interface.
type ProgressUpdate struct {
	// CalculatorIndex identifies the divider instance, allowing the UI to
	// tell concurrent divisions apart.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback used by core strategies to report their
// progress without knowing about channels or observers.
type ProgressReporter func(progress float64)

// log10Approx returns an approximation of log10(|x|) computed from the digit
// count and the leading digits. Zero maps to 0.
func log10Approx(x bigint.BigInt) float64 {
	s := x.Abs().String()
	const lead = 15
	if len(s) <= lead {
		var v float64
		for i := 0; i < len(s); i++ {
			v = v*10 + float64(s[i]-'0')
		}
		if v == 0 {
			return 0
		}
		return math.Log10(v)
	}
	var v float64
	for i := 0; i < lead; i++ {
		v = v*10 + float64(s[i]-'0')
	}
	return math.Log10(v) + float64(len(s)-lead)
}

// RemainderProgress estimates how much of a repeated-subtraction division is
// done. The quotient grows linearly while the remainder shrinks from the
// dividend magnitude to below the divisor, so progress is
// 1 - remaining/dividend, computed in log space to stay finite for any size.
//
// Parameters:
//   - dividendLog10: log10Approx of the original dividend.
//   - remaining: The current remainder.
//
// Returns:
//   - float64: The estimated progress clamped to [0, 1].
func RemainderProgress(dividendLog10 float64, remaining bigint.BigInt) float64 {
	if remaining.IsZero() {
		return 1
	}
	ratio := math.Pow(10, log10Approx(remaining)-dividendLog10)
	p := 1 - ratio
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 1:
		return 1
	}
	return p
}

// ReportRemainderProgress reports progress through reporter when it moved by
// at least ProgressReportThreshold since lastReported.
//
// Parameters:
//   - reporter: The callback to report progress.
//   - lastReported: The last reported value, updated on report.
//   - dividendLog10: log10Approx of the original dividend.
//   - remaining: The current remainder.
func ReportRemainderProgress(reporter ProgressReporter, lastReported *float64, dividendLog10 float64, remaining bigint.BigInt) {
	p := RemainderProgress(dividendLog10, remaining)
	if p-*lastReported >= ProgressReportThreshold {
		reporter(p)
		*lastReported = p
	}
}
