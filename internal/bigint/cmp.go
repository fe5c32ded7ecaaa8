package bigint

// Cmp compares x and y and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
//
// A positive value is greater than any negative value. For equal signs the
// value with more digits has the larger magnitude, and equal-length
// magnitudes are ordered digit by digit from the most significant end. The
// sense of the magnitude comparison is reversed for negative values.
func (x BigInt) Cmp(y BigInt) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	}
	c := cmpMag(x.mag(), y.mag())
	if x.neg {
		return -c
	}
	return c
}

// CmpAbs compares the magnitudes |x| and |y| and returns -1, 0 or +1.
func (x BigInt) CmpAbs(y BigInt) int {
	return cmpMag(x.mag(), y.mag())
}

// Equal reports whether x and y represent the same value.
func (x BigInt) Equal(y BigInt) bool {
	return x.Cmp(y) == 0
}

// Sign returns -1, 0 or +1 depending on whether x is negative, zero or
// positive.
func (x BigInt) Sign() int {
	switch {
	case x.neg:
		return -1
	case x.IsZero():
		return 0
	}
	return 1
}

// IsZero reports whether x is 0.
func (x BigInt) IsZero() bool {
	m := x.mag()
	return len(m) == 1 && m[0] == 0
}

// IsNeg reports whether x is strictly negative.
func (x BigInt) IsNeg() bool {
	return x.neg
}

// Abs returns |x|.
func (x BigInt) Abs() BigInt {
	return BigInt{digits: x.digits}
}

// Neg returns -x. The negation of zero is zero.
func (x BigInt) Neg() BigInt {
	if x.IsZero() {
		return BigInt{}
	}
	return BigInt{digits: x.digits, neg: !x.neg}
}

// cmpMag compares two normalized magnitudes.
func cmpMag(a, b []byte) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}
