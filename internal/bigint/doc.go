// Package bigint implements an immutable arbitrary-precision signed integer
// stored as a sequence of decimal digits.
//
// Values are built from text with Parse, from machine integers with New, or
// from raw digit values with FromDigits. Every arithmetic method returns a new
// value and never modifies its receiver, so a BigInt can be copied and shared
// between goroutines without synchronization.
//
// Arithmetic uses grade-school algorithms on base-10 digits: carry addition,
// borrow subtraction, schoolbook multiplication and long division. Division
// truncates toward zero and the remainder takes the sign of the dividend, the
// same convention as Go's integer / and % operators.
//
// Example:
//
//	x := bigint.MustParse("123456789012345678901234567890")
//	y := bigint.New(987654321)
//	q, err := x.Quo(y)
//	if err != nil {
//		// only bigint.ErrDivisionByZero is possible here
//	}
//	fmt.Println(x.Add(y), x.Mul(y), q)
package bigint
