package bigint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genBigInt generates decimal strings of up to 60 digits, leading zeros and
// "-0" included, and parses them.
func genBigInt() gopter.Gen {
	return gen.RegexMatch(`-?[0-9]{1,60}`).Map(func(s string) BigInt {
		return MustParse(s)
	})
}

func bigOf(x BigInt) *big.Int {
	return x.Big()
}

// TestArithmetic_PropertyBased checks every operation against math/big and
// the algebraic laws of the integers.
func TestArithmetic_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("String round trips through Parse", prop.ForAll(
		func(x BigInt) bool {
			y, err := Parse(x.String())
			return err == nil && y.Equal(x) && y.String() == x.String()
		},
		genBigInt(),
	))

	properties.Property("values are normalized", prop.ForAll(
		func(x BigInt) bool {
			s := x.String()
			if x.IsZero() {
				return s == "0" && !x.IsNeg()
			}
			digits := s
			if x.IsNeg() {
				digits = s[1:]
			}
			return digits[0] != '0'
		},
		genBigInt(),
	))

	properties.Property("Add matches math/big", prop.ForAll(
		func(x, y BigInt) bool {
			return x.Add(y).String() == new(big.Int).Add(bigOf(x), bigOf(y)).String()
		},
		genBigInt(), genBigInt(),
	))

	properties.Property("Sub matches math/big", prop.ForAll(
		func(x, y BigInt) bool {
			return x.Sub(y).String() == new(big.Int).Sub(bigOf(x), bigOf(y)).String()
		},
		genBigInt(), genBigInt(),
	))

	properties.Property("Mul matches math/big", prop.ForAll(
		func(x, y BigInt) bool {
			return x.Mul(y).String() == new(big.Int).Mul(bigOf(x), bigOf(y)).String()
		},
		genBigInt(), genBigInt(),
	))

	properties.Property("QuoRem matches math/big truncated division", prop.ForAll(
		func(x, y BigInt) bool {
			q, r, err := x.QuoRem(y)
			if y.IsZero() {
				return err == ErrDivisionByZero
			}
			wq, wr := new(big.Int).QuoRem(bigOf(x), bigOf(y), new(big.Int))
			return err == nil && q.String() == wq.String() && r.String() == wr.String()
		},
		genBigInt(), genBigInt(),
	))

	properties.Property("Cmp matches math/big", prop.ForAll(
		func(x, y BigInt) bool {
			return x.Cmp(y) == bigOf(x).Cmp(bigOf(y))
		},
		genBigInt(), genBigInt(),
	))

	properties.Property("addition and multiplication commute", prop.ForAll(
		func(x, y BigInt) bool {
			return x.Add(y).Equal(y.Add(x)) && x.Mul(y).Equal(y.Mul(x))
		},
		genBigInt(), genBigInt(),
	))

	properties.Property("identities and inverse", prop.ForAll(
		func(x BigInt) bool {
			return x.Add(Zero()).Equal(x) &&
				x.Mul(One()).Equal(x) &&
				x.Sub(x).IsZero() &&
				!x.Sub(x).IsNeg() &&
				x.Mul(Zero()).IsZero()
		},
		genBigInt(),
	))

	properties.Property("quotient and remainder reconstruct the dividend", prop.ForAll(
		func(x, y BigInt) bool {
			if y.IsZero() {
				return true
			}
			q, r, err := x.QuoRem(y)
			if err != nil {
				return false
			}
			rebuilt := q.Mul(y).Add(r)
			remainderOK := r.CmpAbs(y) < 0 && (r.IsZero() || r.IsNeg() == x.IsNeg())
			return rebuilt.Equal(x) && remainderOK
		},
		genBigInt(), genBigInt(),
	))

	properties.Property("division by zero always fails", prop.ForAll(
		func(x BigInt) bool {
			_, err := x.Quo(Zero())
			return err == ErrDivisionByZero
		},
		genBigInt(),
	))

	properties.Property("ordering is antisymmetric and transitive", prop.ForAll(
		func(x, y, z BigInt) bool {
			if x.Cmp(y) != -y.Cmp(x) {
				return false
			}
			if x.Cmp(y) <= 0 && y.Cmp(z) <= 0 {
				return x.Cmp(z) <= 0
			}
			return true
		},
		genBigInt(), genBigInt(), genBigInt(),
	))

	properties.TestingRun(t)
}
