// Package service evaluates single BigInt operations for the HTTP API. It
// selects the division strategy, enforces the operand size limit and keeps
// recent results in an LRU cache.
package service

//go:generate mockgen -source=calculator_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/division"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/pkg/models"
)

// DefaultCacheSize is the number of results kept when no size is given.
const DefaultCacheSize = 1024

var (
	// ErrMaxDigitsExceeded is returned when an operand is longer than the
	// configured limit.
	ErrMaxDigitsExceeded = errors.New("maximum operand length exceeded")
	// ErrUnknownOperation is returned for an operation outside models.Operations.
	ErrUnknownOperation = errors.New("unknown operation")
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigcalc_operations_total",
			Help: "The total number of operations evaluated by the service",
		},
		[]string{"op", "status"},
	)
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bigcalc_cache_hits_total",
		Help: "Results served from the service cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bigcalc_cache_misses_total",
		Help: "Results that had to be computed",
	})
)

// Request is one operation on two operands.
type Request struct {
	// Op is one of models.Operations.
	Op string
	// Algo names the division strategy. It only matters for models.OpDiv.
	Algo string
	A, B bigint.BigInt
}

// Result is the outcome of a Request. For models.OpCmp, Value is -1, 0 or 1.
type Result struct {
	Value     bigint.BigInt
	Algorithm string
	Duration  time.Duration
	Cached    bool
}

// Service defines the interface of the calculation service.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Calculate evaluates req.
	//
	// Returns:
	//   - Result: the value and the strategy used.
	//   - error: ErrMaxDigitsExceeded, ErrUnknownOperation or
	//     *division.UnknownDividerError for a rejected request. Division
	//     failures (bigint.ErrDivisionByZero, context errors) arrive wrapped
	//     in an apperrors.CalculationError.
	Calculate(ctx context.Context, req Request) (Result, error)

	// Algorithms returns the sorted names of the division strategies.
	Algorithms() []string
}

type cacheKey struct {
	op, algo, a, b string
}

// CalculatorService is the Service used by the server.
type CalculatorService struct {
	factory   division.DividerFactory
	maxDigits int
	cache     *lru.Cache[cacheKey, bigint.BigInt]
}

var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a service over factory.
//
// Parameters:
//   - factory: The factory to retrieve division strategies from.
//   - maxDigits: The maximum operand length in digits (0 for no limit).
//   - cacheSize: The number of cached results (DefaultCacheSize if <= 0).
func NewCalculatorService(factory division.DividerFactory, maxDigits, cacheSize int) *CalculatorService {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[cacheKey, bigint.BigInt](cacheSize)
	return &CalculatorService{factory: factory, maxDigits: maxDigits, cache: cache}
}

// Algorithms implements Service.
func (s *CalculatorService) Algorithms() []string {
	return s.factory.List()
}

// Calculate implements Service. Successful results are cached by operation,
// strategy and operands; failures are not.
func (s *CalculatorService) Calculate(ctx context.Context, req Request) (res Result, err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		operationsTotal.WithLabelValues(req.Op, status).Inc()
	}()

	if s.maxDigits > 0 && (req.A.Len() > s.maxDigits || req.B.Len() > s.maxDigits) {
		return Result{}, fmt.Errorf("%w: at most %d digits per operand", ErrMaxDigitsExceeded, s.maxDigits)
	}

	var divider division.Divider
	switch req.Op {
	case models.OpAdd, models.OpSub, models.OpMul, models.OpCmp:
		req.Algo = ""
	case models.OpDiv:
		if divider, err = s.factory.Get(req.Algo); err != nil {
			return Result{}, err
		}
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Op)
	}

	key := cacheKey{op: req.Op, algo: req.Algo, a: req.A.String(), b: req.B.String()}
	if v, ok := s.cache.Get(key); ok {
		cacheHits.Inc()
		return Result{Value: v, Algorithm: req.Algo, Cached: true}, nil
	}
	cacheMisses.Inc()

	start := time.Now()
	var v bigint.BigInt
	switch req.Op {
	case models.OpAdd:
		v = req.A.Add(req.B)
	case models.OpSub:
		v = req.A.Sub(req.B)
	case models.OpMul:
		v = req.A.Mul(req.B)
	case models.OpCmp:
		v = bigint.New(int64(req.A.Cmp(req.B)))
	case models.OpDiv:
		if v, err = divider.Divide(ctx, nil, 0, req.A, req.B); err != nil {
			return Result{}, apperrors.CalculationError{Cause: err}
		}
	}

	s.cache.Add(key, v)
	return Result{Value: v, Algorithm: req.Algo, Duration: time.Since(start)}, nil
}
