package bigint

// Add returns x + y.
func (x BigInt) Add(y BigInt) BigInt {
	switch {
	case x.neg && y.neg:
		return newBigInt(true, addMag(x.mag(), y.mag()))
	case x.neg:
		return y.Sub(x.Abs())
	case y.neg:
		return x.Sub(y.Abs())
	}
	return newBigInt(false, addMag(x.mag(), y.mag()))
}

// Sub returns x - y.
func (x BigInt) Sub(y BigInt) BigInt {
	switch {
	case x.neg && y.neg:
		return y.Abs().Sub(x.Abs())
	case x.neg:
		return newBigInt(true, addMag(x.mag(), y.mag()))
	case y.neg:
		return newBigInt(false, addMag(x.mag(), y.mag()))
	}
	if cmpMag(x.mag(), y.mag()) < 0 {
		return newBigInt(true, subMag(y.mag(), x.mag()))
	}
	return newBigInt(false, subMag(x.mag(), y.mag()))
}

// Mul returns x * y.
func (x BigInt) Mul(y BigInt) BigInt {
	if x.IsZero() || y.IsZero() {
		return BigInt{}
	}
	return newBigInt(x.neg != y.neg, mulMag(x.mag(), y.mag()))
}

// addMag returns a + b. The result may carry a leading zero.
func addMag(a, b []byte) []byte {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]byte, len(a)+1)
	var carry byte
	j := len(b) - 1
	for i := len(a) - 1; i >= 0; i-- {
		s := a[i] + carry
		if j >= 0 {
			s += b[j]
			j--
		}
		out[i+1] = s % 10
		carry = s / 10
	}
	out[0] = carry
	return out
}

// subMag returns a - b for a >= b. The result may carry leading zeros.
func subMag(a, b []byte) []byte {
	out := make([]byte, len(a))
	var borrow int
	j := len(b) - 1
	for i := len(a) - 1; i >= 0; i-- {
		d := int(a[i]) - borrow
		if j >= 0 {
			d -= int(b[j])
			j--
		}
		if d < 0 {
			d += 10
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = byte(d)
	}
	return out
}

// mulMag returns a * b using schoolbook multiplication. Position i+j+1 of the
// product accumulates a[i]*b[j] plus the running carry.
func mulMag(a, b []byte) []byte {
	out := make([]byte, len(a)+len(b))
	for i := len(a) - 1; i >= 0; i-- {
		carry := 0
		for j := len(b) - 1; j >= 0; j-- {
			p := int(a[i])*int(b[j]) + int(out[i+j+1]) + carry
			out[i+j+1] = byte(p % 10)
			carry = p / 10
		}
		out[i] = byte(carry)
	}
	return out
}
