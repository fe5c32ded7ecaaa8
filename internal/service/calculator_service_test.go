package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/division"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/pkg/models"
)

// countingDivider counts calls so cache hits can be observed.
func countingDivider(calls *int) *division.MockDivider {
	return &division.MockDivider{
		Label: "counting",
		Fn: func(ctx context.Context, x, y bigint.BigInt) (bigint.BigInt, error) {
			*calls++
			return x.Quo(y)
		},
	}
}

func TestNewCalculatorService(t *testing.T) {
	t.Parallel()

	svc := NewCalculatorService(division.NewDefaultFactory(), 100, 0)
	require.NotNil(t, svc)
	assert.Equal(t, 100, svc.maxDigits)
	assert.NotNil(t, svc.cache)
	assert.Equal(t, []string{"big", "long", "subtract"}, svc.Algorithms())
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	svc := NewCalculatorService(division.NewDefaultFactory(), 0, 16)
	a, b := bigint.MustParse("-17"), bigint.MustParse("5")

	tests := []struct {
		op, algo string
		want     string
		wantAlgo string
	}{
		{models.OpAdd, "", "-12", ""},
		{models.OpSub, "long", "-22", ""},
		{models.OpMul, "", "-85", ""},
		{models.OpDiv, "long", "-3", "long"},
		{models.OpDiv, "subtract", "-3", "subtract"},
		{models.OpDiv, "big", "-3", "big"},
		{models.OpCmp, "", "-1", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.op+"/"+tt.algo, func(t *testing.T) {
			t.Parallel()
			res, err := svc.Calculate(context.Background(), Request{Op: tt.op, Algo: tt.algo, A: a, B: b})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value.String())
			assert.Equal(t, tt.wantAlgo, res.Algorithm)
		})
	}
}

func TestCalculate_Errors(t *testing.T) {
	t.Parallel()

	svc := NewCalculatorService(division.NewDefaultFactory(), 5, 16)
	small := bigint.New(12)

	_, err := svc.Calculate(context.Background(), Request{Op: models.OpDiv, Algo: "long", A: small, B: bigint.Zero()})
	assert.ErrorIs(t, err, bigint.ErrDivisionByZero)
	var calcErr apperrors.CalculationError
	assert.ErrorAs(t, err, &calcErr, "division failures are wrapped")

	_, err = svc.Calculate(context.Background(), Request{Op: models.OpAdd, A: bigint.MustParse("123456"), B: small})
	assert.ErrorIs(t, err, ErrMaxDigitsExceeded)

	_, err = svc.Calculate(context.Background(), Request{Op: models.OpAdd, A: small, B: bigint.MustParse("-123456")})
	assert.ErrorIs(t, err, ErrMaxDigitsExceeded)

	_, err = svc.Calculate(context.Background(), Request{Op: "pow", A: small, B: small})
	assert.ErrorIs(t, err, ErrUnknownOperation)

	_, err = svc.Calculate(context.Background(), Request{Op: models.OpDiv, Algo: "magic", A: small, B: small})
	var unknown *division.UnknownDividerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "magic", unknown.Name)

	res, err := svc.Calculate(context.Background(), Request{Op: models.OpAdd, A: bigint.MustParse("-99999"), B: small})
	require.NoError(t, err, "five digits are within the limit")
	assert.Equal(t, "-99987", res.Value.String())
}

func TestCalculate_Cache(t *testing.T) {
	t.Parallel()

	calls := 0
	factory := division.NewTestFactory(map[string]division.Divider{"counting": countingDivider(&calls)})
	svc := NewCalculatorService(factory, 0, 2)
	req := Request{Op: models.OpDiv, Algo: "counting", A: bigint.New(100), B: bigint.New(7)}

	first, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, first.Value.Equal(second.Value))
	assert.Equal(t, 1, calls, "the second request must be served from the cache")

	// Two other entries evict the first one from a cache of size 2.
	for _, v := range []int64{8, 9} {
		_, err := svc.Calculate(context.Background(), Request{Op: models.OpDiv, Algo: "counting", A: bigint.New(100), B: bigint.New(v)})
		require.NoError(t, err)
	}
	third, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 4, calls)
}

func TestCalculate_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	fail := true
	d := &division.MockDivider{Fn: func(ctx context.Context, x, y bigint.BigInt) (bigint.BigInt, error) {
		if fail {
			return bigint.BigInt{}, context.DeadlineExceeded
		}
		return bigint.One(), nil
	}}
	svc := NewCalculatorService(division.NewTestFactory(map[string]division.Divider{"mock": d}), 0, 4)
	req := Request{Op: models.OpDiv, Algo: "mock", A: bigint.New(3), B: bigint.New(2)}

	_, err := svc.Calculate(context.Background(), req)
	require.True(t, errors.Is(err, context.DeadlineExceeded))

	fail = false
	res, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "1", res.Value.String())
}

func TestCalculate_AlgoIgnoredOutsideDivision(t *testing.T) {
	t.Parallel()

	svc := NewCalculatorService(division.NewDefaultFactory(), 0, 4)
	_, err := svc.Calculate(context.Background(), Request{Op: models.OpMul, Algo: "magic", A: bigint.New(2), B: bigint.New(3)})
	require.NoError(t, err)

	res, err := svc.Calculate(context.Background(), Request{Op: models.OpMul, Algo: "long", A: bigint.New(2), B: bigint.New(3)})
	require.NoError(t, err)
	assert.True(t, res.Cached, "the strategy is not part of the key for multiplication")
}
