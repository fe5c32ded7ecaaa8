// Package division provides interchangeable strategies for dividing BigInt
// values. A `Divider` wraps a strategy with the cross-cutting concerns of the
// application (metrics, tracing, logging and progress reporting) so that the
// orchestration layer can run several strategies side by side and cross-check
// their quotients.
package division

import (
	"context"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	divisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigcalc_divisions_total",
			Help: "The total number of divisions processed",
		},
		[]string{"algorithm", "status"},
	)
	divisionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bigcalc_division_duration_seconds",
			Help: "The duration of divisions in seconds",
		},
		[]string{"algorithm"},
	)
)

// Divider defines the public interface for a division strategy.
// It is the abstraction used by the orchestration layer and the service to
// interact with the different division algorithms.
type Divider interface {
	// Divide computes x / y truncated toward zero. It is safe for concurrent
	// use and honours cancellation through ctx. Progress updates are sent
	// asynchronously to progressChan, which may be nil.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - progressChan: The channel for sending progress updates.
	//   - calcIndex: A unique index for the divider instance.
	//   - x: The dividend.
	//   - y: The divisor.
	//
	// Returns:
	//   - bigint.BigInt: The quotient.
	//   - error: bigint.ErrDivisionByZero, a context error, or a strategy failure.
	Divide(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, x, y bigint.BigInt) (bigint.BigInt, error)

	// Name returns the display name of the division algorithm.
	Name() string
}

// coreDivider is the internal interface of a pure division algorithm.
// Implementations may assume y != 0 and |x| >= |y|.
type coreDivider interface {
	DivideCore(ctx context.Context, reporter ProgressReporter, x, y bigint.BigInt) (bigint.BigInt, error)
	Name() string
}

// StrategyDivider implements Divider by decorating a coreDivider.
// It handles the trivial cases (zero divisor, zero or smaller dividend) before
// the strategy runs and records metrics, a trace span and a debug log line
// for every division.
type StrategyDivider struct {
	core coreDivider
}

// NewDivider wraps a coreDivider. It panics if core is nil.
//
// Parameters:
//   - core: The division strategy to wrap.
//
// Returns:
//   - Divider: The decorated divider.
func NewDivider(core coreDivider) Divider {
	if core == nil {
		panic("division: the `coreDivider` implementation cannot be nil")
	}
	return &StrategyDivider{core: core}
}

// Name returns the name of the wrapped strategy.
func (d *StrategyDivider) Name() string {
	return d.core.Name()
}

// progressLogStep is the progress increase between two debug log lines.
const progressLogStep = 0.25

// Divide reports progress to progressChan (when non-nil), the progress
// gauge and the debug log, then delegates to DivideWithObservers.
func (d *StrategyDivider) Divide(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, x, y bigint.BigInt) (bigint.BigInt, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	subject.Register(NewMetricsObserver())
	subject.Register(NewLoggingObserver(log.Logger, progressLogStep))
	return d.DivideWithObservers(ctx, subject, calcIndex, x, y)
}

// DivideWithObservers executes the division and reports progress to every
// observer registered on subject. A nil subject discards progress.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - subject: The progress subject with registered observers.
//   - calcIndex: A unique index for the divider instance.
//   - x: The dividend.
//   - y: The divisor.
//
// Returns:
//   - bigint.BigInt: The quotient.
//   - error: An error if one occurred.
func (d *StrategyDivider) DivideWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, x, y bigint.BigInt) (result bigint.BigInt, err error) {
	algoName := d.core.Name()

	tracer := otel.Tracer("division")
	ctx, span := tracer.Start(ctx, "Divide")
	span.SetAttributes(
		attribute.String("algorithm", algoName),
		attribute.Int("dividend.digits", x.Len()),
		attribute.Int("divisor.digits", y.Len()),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		divisionsTotal.WithLabelValues(algoName, status).Inc()
		divisionDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Int("dividend_digits", x.Len()).
			Int("divisor_digits", y.Len()).
			Float64("duration", duration).
			Str("status", status).
			Msg("division completed")
	}()

	var reporter ProgressReporter
	if subject != nil {
		reporter = subject.AsProgressReporter(calcIndex)
	} else {
		reporter = func(float64) {}
	}

	if y.IsZero() {
		return bigint.BigInt{}, bigint.ErrDivisionByZero
	}
	if x.CmpAbs(y) < 0 {
		reporter(1.0)
		return bigint.Zero(), nil
	}
	if err := ctx.Err(); err != nil {
		return bigint.BigInt{}, err
	}

	result, err = d.core.DivideCore(ctx, reporter, x, y)
	if err != nil {
		return bigint.BigInt{}, err
	}
	reporter(1.0)
	return result, nil
}
