package division

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// recordingObserver tracks updates for testing.
type recordingObserver struct {
	mu      sync.Mutex
	updates []ProgressUpdate
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{}
}

func (r *recordingObserver) Update(calcIndex int, progress float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, ProgressUpdate{CalculatorIndex: calcIndex, Value: progress})
}

func (r *recordingObserver) values() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.updates))
	for i, u := range r.updates {
		out[i] = u.Value
	}
	return out
}

// TestProgressSubject_Register verifies observer registration and removal.
func TestProgressSubject_Register(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	subject.Register(nil)
	if subject.ObserverCount() != 0 {
		t.Errorf("registering nil should not add observer, got %d", subject.ObserverCount())
	}

	// Pointer comparison needs distinct, non-empty structs.
	o1 := newRecordingObserver()
	o2 := newRecordingObserver()
	subject.Register(o1)
	subject.Register(o2)
	if subject.ObserverCount() != 2 {
		t.Fatalf("expected 2 observers, got %d", subject.ObserverCount())
	}

	subject.Unregister(nil)
	subject.Unregister(o1)
	subject.Unregister(o1)
	if subject.ObserverCount() != 1 {
		t.Errorf("expected 1 observer after unregister, got %d", subject.ObserverCount())
	}
}

// TestProgressSubject_Notify verifies notification delivery in order.
func TestProgressSubject_Notify(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	o1 := newRecordingObserver()
	o2 := newRecordingObserver()
	subject.Register(o1)
	subject.Register(o2)

	subject.Notify(1, 0.5)
	subject.AsProgressReporter(2)(1.0)

	for _, o := range []*recordingObserver{o1, o2} {
		if len(o.updates) != 2 {
			t.Fatalf("expected 2 updates, got %d", len(o.updates))
		}
		if o.updates[0] != (ProgressUpdate{1, 0.5}) || o.updates[1] != (ProgressUpdate{2, 1.0}) {
			t.Errorf("unexpected updates: %+v", o.updates)
		}
	}
}

// TestProgressSubject_ConcurrentAccess verifies thread safety.
func TestProgressSubject_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			subject.Register(newRecordingObserver())
		}()
		go func(idx int) {
			defer wg.Done()
			subject.Notify(idx, float64(idx)/10.0)
		}(i)
	}
	wg.Wait()

	if subject.ObserverCount() != 10 {
		t.Errorf("expected 10 observers, got %d", subject.ObserverCount())
	}
}

// TestChannelObserver verifies clamping and non-blocking sends.
func TestChannelObserver(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 1)
	o := NewChannelObserver(ch)
	o.Update(3, 1.7)
	o.Update(3, 0.2) // dropped, channel full

	u := <-ch
	if u.CalculatorIndex != 3 || u.Value != 1.0 {
		t.Errorf("unexpected update: %+v", u)
	}
	select {
	case extra := <-ch:
		t.Errorf("expected dropped update, got %+v", extra)
	default:
	}

	NewChannelObserver(nil).Update(0, 0.5)
}

// TestLoggingObserver verifies throttled zerolog output.
func TestLoggingObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	o := NewLoggingObserver(logger, 0.25)

	for _, p := range []float64{0.1, 0.2, 0.3, 0.4, 0.6, 1.0} {
		o.Update(0, p)
	}

	// Logged: 0.1 (first), 0.4 (+0.3), 1.0 (boundary). 0.6 is +0.2 only.
	lines := strings.Count(buf.String(), "division progress")
	if lines != 3 {
		t.Errorf("expected 3 log lines, got %d:\n%s", lines, buf.String())
	}

	if NewLoggingObserver(logger, 0).threshold != 0.1 {
		t.Error("non-positive threshold should default to 0.1")
	}
}

// TestMetricsObserver verifies gauge updates do not panic and reset cleanly.
func TestMetricsObserver(t *testing.T) {
	t.Parallel()

	o := NewMetricsObserver()
	o.Update(0, 0.5)
	o.Update(1, 1.0)
	o.ResetMetrics()
}
