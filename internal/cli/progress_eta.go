package cli

import (
	"fmt"
	"time"
)

// Smoothing and bounds for the ETA estimate.
const (
	etaWarmup     = 100 * time.Millisecond
	etaMinSample  = 50 * time.Millisecond
	etaSmoothing  = 0.3 // weight of the newest rate sample
	etaCeiling    = 24 * time.Hour
	etaMinReading = 0.001
)

// ProgressWithETA extends ProgressState with a time-remaining estimate
// derived from an exponentially smoothed progress rate.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	rate         float64 // progress per second
	now          func() time.Time
}

// NewProgressWithETA creates a progress tracker with ETA for numDividers strategies.
func NewProgressWithETA(numDividers int) *ProgressWithETA {
	return newProgressWithETAClock(numDividers, time.Now)
}

func newProgressWithETAClock(numDividers int, now func() time.Time) *ProgressWithETA {
	start := now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numDividers),
		startTime:     start,
		lastUpdate:    start,
		now:           now,
	}
}

// UpdateWithETA records a progress value and returns the new average and
// the estimated time remaining (0 while no estimate is available).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (progress float64, eta time.Duration) {
	p.Update(index, value)
	progress = p.CalculateAverage()

	now := p.now()
	elapsed := now.Sub(p.startTime)
	if elapsed < etaWarmup || progress <= etaMinReading {
		p.lastUpdate = now
		p.lastProgress = progress
		return progress, 0
	}

	if sinceLast := now.Sub(p.lastUpdate); sinceLast >= etaMinSample {
		if delta := progress - p.lastProgress; delta > 0 {
			sample := delta / sinceLast.Seconds()
			if p.rate > 0 {
				p.rate = (1-etaSmoothing)*p.rate + etaSmoothing*sample
			} else {
				p.rate = progress / elapsed.Seconds()
			}
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}

	return progress, p.GetETA()
}

// GetETA returns the current estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	progress := p.CalculateAverage()
	if p.rate <= 0 || progress >= 1.0 {
		return 0
	}
	eta := time.Duration((1.0 - progress) / p.rate * float64(time.Second))
	return min(eta, etaCeiling)
}

// FormatETA formats a duration as "< 1s", "42s", "2m30s" or "1h15m".
// Non-positive durations mean no estimate yet.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	}
	h, m := int(eta.Hours()), int(eta.Minutes())%60
	if m > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, progressBar(progress, width), FormatETA(eta))
}
