package bigint

import "fmt"

// Quo returns the quotient x / y truncated toward zero.
// It returns ErrDivisionByZero and the zero value if y is zero.
func (x BigInt) Quo(y BigInt) (BigInt, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns the remainder x % y, which has the sign of x.
// It returns ErrDivisionByZero and the zero value if y is zero.
func (x BigInt) Rem(y BigInt) (BigInt, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// QuoRem returns the truncated quotient q and remainder r such that
//
//	x = q*y + r  and  |r| < |y|
//
// with r carrying the sign of x.
// It returns ErrDivisionByZero and zero values if y is zero.
func (x BigInt) QuoRem(y BigInt) (q, r BigInt, err error) {
	switch {
	case y.IsZero():
		return BigInt{}, BigInt{}, ErrDivisionByZero
	case x.IsZero():
		return BigInt{}, BigInt{}, nil
	case cmpMag(x.mag(), y.mag()) < 0:
		return BigInt{}, x, nil
	}
	qm, rm := quoRemMag(x.mag(), y.mag())
	return newBigInt(x.neg != y.neg, qm), newBigInt(x.neg, rm), nil
}

// MustQuo is like Quo but panics if y is zero.
func (x BigInt) MustQuo(y BigInt) BigInt {
	q, err := x.Quo(y)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v, %v) failed: %v", x, y, err))
	}
	return q
}

// MustQuoRem is like QuoRem but panics if y is zero.
func (x BigInt) MustQuoRem(y BigInt) (q, r BigInt) {
	q, r, err := x.QuoRem(y)
	if err != nil {
		panic(fmt.Sprintf("MustQuoRem(%v, %v) failed: %v", x, y, err))
	}
	return q, r
}

// quoRemMag divides the normalized magnitude a by the non-zero normalized
// magnitude b. Each dividend digit is brought down into the running
// remainder, which then needs at most nine subtractions of b to produce the
// next quotient digit.
func quoRemMag(a, b []byte) (q, r []byte) {
	q = make([]byte, len(a))
	r = []byte{0}
	for i, d := range a {
		if len(r) == 1 && r[0] == 0 {
			r = []byte{d}
		} else {
			r = append(r, d)
		}
		var qd byte
		for cmpMag(r, b) >= 0 {
			r = trimLeadingZeros(subMag(r, b))
			qd++
		}
		q[i] = qd
	}
	return q, r
}
