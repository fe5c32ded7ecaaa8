package division

import (
	"context"

	"github.com/agbru/bigcalc/internal/bigint"
)

// LongDivision is the schoolbook long division of the bigint package: one
// quotient digit per dividend digit, each found with at most nine trial
// subtractions. It runs in O(len(x) * len(y)) digit operations.
type LongDivision struct{}

// Name returns the name of the algorithm.
func (LongDivision) Name() string {
	return "Long Division"
}

// DivideCore implements coreDivider.
func (LongDivision) DivideCore(ctx context.Context, reporter ProgressReporter, x, y bigint.BigInt) (bigint.BigInt, error) {
	return x.Quo(y)
}

// RepeatedSubtraction subtracts |y| from |x| until the remainder drops below
// |y|, counting the subtractions. The loop runs once per unit of the quotient,
// so it checks ctx every CancellationCheckInterval iterations and reports
// progress as the remainder shrinks.
type RepeatedSubtraction struct{}

// Name returns the name of the algorithm.
func (RepeatedSubtraction) Name() string {
	return "Repeated Subtraction"
}

// DivideCore implements coreDivider.
func (RepeatedSubtraction) DivideCore(ctx context.Context, reporter ProgressReporter, x, y bigint.BigInt) (bigint.BigInt, error) {
	remaining := x.Abs()
	divisor := y.Abs()
	one := bigint.One()
	quotient := bigint.Zero()

	total := log10Approx(remaining)
	var lastReported float64

	for iter := 1; remaining.Cmp(divisor) >= 0; iter++ {
		remaining = remaining.Sub(divisor)
		quotient = quotient.Add(one)

		if iter%CancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return bigint.BigInt{}, err
			}
			ReportRemainderProgress(reporter, &lastReported, total, remaining)
		}
	}

	if x.IsNeg() != y.IsNeg() {
		quotient = quotient.Neg()
	}
	return quotient, nil
}

// MathBigDivider delegates to math/big. It serves as the oracle that the
// decimal strategies are cross-checked against.
type MathBigDivider struct{}

// Name returns the name of the algorithm.
func (MathBigDivider) Name() string {
	return "math/big"
}

// DivideCore implements coreDivider. big.Int.Quo truncates toward zero like
// bigint.Quo.
func (MathBigDivider) DivideCore(ctx context.Context, reporter ProgressReporter, x, y bigint.BigInt) (bigint.BigInt, error) {
	q := x.Big()
	q.Quo(q, y.Big())
	return bigint.FromBig(q), nil
}
