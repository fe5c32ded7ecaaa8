package bigint

import (
	"fmt"
	"math/big"
)

// BigInt is an immutable arbitrary-precision signed integer.
// The zero value is the numeric value 0.
// It is safe for concurrent use by multiple goroutines.
//
// A BigInt is normalized at construction: the digit sequence never has a
// leading zero, and zero is never negative.
type BigInt struct {
	digits []byte // digit values 0-9, most significant first; nil for zero
	neg    bool   // set only for non-zero values
}

// zeroMag is the magnitude of zero. It is shared and must never be written.
var zeroMag = []byte{0}

// newBigInt takes ownership of digits and returns the normalized value.
func newBigInt(neg bool, digits []byte) BigInt {
	digits = trimLeadingZeros(digits)
	if len(digits) == 1 && digits[0] == 0 {
		return BigInt{}
	}
	return BigInt{digits: digits, neg: neg}
}

// trimLeadingZeros strips leading zero digits, keeping a single 0 for an
// all-zero or empty sequence.
func trimLeadingZeros(digits []byte) []byte {
	i := 0
	for i < len(digits)-1 && digits[i] == 0 {
		i++
	}
	if len(digits) == 0 {
		return zeroMag
	}
	return digits[i:]
}

// mag returns the magnitude digits of x. The result must not be modified.
func (x BigInt) mag() []byte {
	if len(x.digits) == 0 {
		return zeroMag
	}
	return x.digits
}

// New returns the BigInt value of v.
func New(v int64) BigInt {
	if v == 0 {
		return BigInt{}
	}
	neg := v < 0
	u := uint64(v)
	if neg {
		u = -u
	}
	var buf [20]byte
	pos := len(buf)
	for u > 0 {
		pos--
		buf[pos] = byte(u % 10)
		u /= 10
	}
	digits := make([]byte, len(buf)-pos)
	copy(digits, buf[pos:])
	return BigInt{digits: digits, neg: neg}
}

// Zero returns the value 0.
func Zero() BigInt {
	return BigInt{}
}

// One returns the value 1.
func One() BigInt {
	return BigInt{digits: []byte{1}}
}

// FromDigits returns the value with the given sign and magnitude digits,
// most significant first. Digits are values 0-9, not ASCII characters.
// The slice is copied and normalized: leading zeros are dropped and a zero
// magnitude is never negative. An empty slice is zero.
func FromDigits(neg bool, digits []byte) (BigInt, error) {
	cp := make([]byte, len(digits))
	for i, d := range digits {
		if d > 9 {
			return BigInt{}, fmt.Errorf("%w: %d at index %d", ErrDigitRange, d, i)
		}
		cp[i] = d
	}
	return newBigInt(neg, cp), nil
}

// FromBig converts a math/big integer. A nil pointer converts to zero.
func FromBig(b *big.Int) BigInt {
	if b == nil || b.Sign() == 0 {
		return BigInt{}
	}
	text := b.Append(nil, 10)
	neg := text[0] == '-'
	if neg {
		text = text[1:]
	}
	for i := range text {
		text[i] -= '0'
	}
	return newBigInt(neg, text)
}

// Big converts x to a newly allocated math/big integer.
func (x BigInt) Big() *big.Int {
	b, _ := new(big.Int).SetString(x.String(), 10)
	return b
}

// Digits returns a copy of the magnitude digits of x, most significant first.
// Zero yields [0].
func (x BigInt) Digits() []byte {
	m := x.mag()
	cp := make([]byte, len(m))
	copy(cp, m)
	return cp
}

// Len returns the number of decimal digits in the magnitude of x.
// Zero has length 1.
func (x BigInt) Len() int {
	return len(x.mag())
}
