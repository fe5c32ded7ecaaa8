package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupContext bounds ctx by timeout. The cancel function must be called.
func SetupContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// SetupSignals returns a context canceled on SIGINT or SIGTERM, so an
// interrupted division stops cleanly and reports exit code 130.
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// Lifecycle holds the release functions of a context built by SetupLifecycle.
type Lifecycle struct {
	CancelTimeout context.CancelFunc
	StopSignals   context.CancelFunc
}

// SetupLifecycle combines SetupContext and SetupSignals: the returned
// context ends at the timeout or the first termination signal.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *Lifecycle) {
	ctx, cancelTimeout := SetupContext(ctx, timeout)
	ctx, stopSignals := SetupSignals(ctx)
	return ctx, &Lifecycle{CancelTimeout: cancelTimeout, StopSignals: stopSignals}
}

// Cleanup stops signal delivery, then releases the timeout.
func (l *Lifecycle) Cleanup() {
	if l.StopSignals != nil {
		l.StopSignals()
	}
	if l.CancelTimeout != nil {
		l.CancelTimeout()
	}
}
