package division

import (
	"slices"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ProgressObserver is told how far divider number index has got, as a
// fraction in [0, 1].
type ProgressObserver interface {
	Update(index int, progress float64)
}

// ProgressSubject fans progress out to a set of observers. The zero value is
// ready to use and it is safe for concurrent use.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register appends o; nil is ignored. Observers are notified in the order
// they were registered.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Unregister removes the first registration of o, if any.
func (s *ProgressSubject) Unregister(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.observers, o); i >= 0 {
		s.observers = slices.Delete(s.observers, i, i+1)
	}
}

// Notify calls every observer synchronously with the subject read-locked.
func (s *ProgressSubject) Notify(index int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(index, progress)
	}
}

func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsProgressReporter binds the subject to one divider index so strategies can
// report without knowing about observers.
func (s *ProgressSubject) AsProgressReporter(index int) ProgressReporter {
	return func(progress float64) { s.Notify(index, progress) }
}

// ChannelObserver feeds the CLI progress display. Sends never block: a full
// channel drops the update and the display catches up on the next one.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver returns an observer writing to ch. With a nil channel
// every update is discarded.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

func (o *ChannelObserver) Update(index int, progress float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{CalculatorIndex: index, Value: min(progress, 1.0)}:
	default:
	}
}

// defaultLogStep is the progress delta between two log entries when none is
// given.
const defaultLogStep = 0.1

// LoggingObserver writes debug entries for long divisions. A divider is logged
// on its first report, on completion and whenever it has moved by at least
// threshold since the last entry.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64

	mu     sync.Mutex
	logged map[int]float64
}

func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = defaultLogStep
	}
	return &LoggingObserver{logger: logger, threshold: threshold, logged: map[int]float64{}}
}

func (o *LoggingObserver) Update(index int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last, seen := o.logged[index]
	if seen && progress < 1.0 && progress-last < o.threshold {
		return
	}
	o.logged[index] = progress
	o.logger.Debug().
		Int("divider", index).
		Float64("progress", progress).
		Msgf("division progress %.1f%%", progress*100)
}

var progressGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "bigcalc_division_progress",
	Help: "Progress of the divisions currently running, from 0 to 1.",
}, []string{"divider_index"})

// MetricsObserver mirrors progress into the bigcalc_division_progress gauge.
type MetricsObserver struct {
	gauge *prometheus.GaugeVec
}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{gauge: progressGauge}
}

func (o *MetricsObserver) Update(index int, progress float64) {
	o.gauge.WithLabelValues(strconv.Itoa(index)).Set(progress)
}

// ResetMetrics drops the series of a previous batch of divisions.
func (o *MetricsObserver) ResetMetrics() {
	o.gauge.Reset()
}
