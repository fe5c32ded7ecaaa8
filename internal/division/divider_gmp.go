//go:build gmp

// This file provides a GMP-backed divider, compiled only with the "gmp" build
// tag so that default builds need neither cgo nor libgmp:
//
//	go build -tags=gmp ./...
//
// System requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp

package division

import (
	"context"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/ncw/gmp"
)

func init() {
	_ = RegisterDivider("gmp", func() coreDivider { return &GMPDivider{} })
}

// GMPDivider divides through the GMP library via cgo.
type GMPDivider struct{}

// Name returns the name of the algorithm.
func (d *GMPDivider) Name() string {
	return "GMP"
}

// DivideCore implements coreDivider. gmp.Int.Quo truncates toward zero.
func (d *GMPDivider) DivideCore(ctx context.Context, reporter ProgressReporter, x, y bigint.BigInt) (bigint.BigInt, error) {
	gx, ok := new(gmp.Int).SetString(x.String(), 10)
	if !ok {
		return bigint.BigInt{}, fmt.Errorf("gmp: cannot convert dividend %q", x.String())
	}
	gy, ok := new(gmp.Int).SetString(y.String(), 10)
	if !ok {
		return bigint.BigInt{}, fmt.Errorf("gmp: cannot convert divisor %q", y.String())
	}
	q := new(gmp.Int).Quo(gx, gy)
	return bigint.Parse(q.String())
}
