package bigint

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"
)

// ─────────────────────────────────────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────────────────────────────────────

// TestParse verifies accepted inputs and their canonical rendering.
func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"7", "7"},
		{"-7", "-7"},
		{"007", "7"},
		{"-0", "0"},
		{"-000", "0"},
		{"-00120", "-120"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
		{"-98765432109876543210", "-98765432109876543210"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			x, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.input, err)
			}
			if got := x.String(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// TestParse_Errors verifies the rejected inputs, their sentinels and offsets.
func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantErr    error
		wantMsg    string
		wantOffset int
	}{
		{"empty", "", ErrEmptyInput, MsgEmptyInput, -1},
		{"sign only", "-", ErrInvalidFormat, MsgInvalidFormat, 1},
		{"letters", "abc", ErrInvalidFormat, MsgInvalidFormat, 0},
		{"trailing letter", "12a", ErrInvalidFormat, MsgInvalidFormat, 2},
		{"plus sign", "+5", ErrInvalidFormat, MsgInvalidFormat, 0},
		{"double minus", "--5", ErrInvalidFormat, MsgInvalidFormat, 1},
		{"inner minus", "5-5", ErrInvalidFormat, MsgInvalidFormat, 1},
		{"space", " 5", ErrInvalidFormat, MsgInvalidFormat, 0},
		{"trailing newline", "5\n", ErrInvalidFormat, MsgInvalidFormat, 1},
		{"decimal point", "1.5", ErrInvalidFormat, MsgInvalidFormat, 1},
		{"exponent", "1e5", ErrInvalidFormat, MsgInvalidFormat, 1},
		{"non ascii digit", "١٢", ErrInvalidFormat, MsgInvalidFormat, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tc.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", tc.input)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected errors.Is(err, %v), got %v", tc.wantErr, err)
			}
			if err.Error() != tc.wantMsg {
				t.Errorf("expected message %q, got %q", tc.wantMsg, err.Error())
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Offset != tc.wantOffset {
				t.Errorf("expected offset %d, got %d", tc.wantOffset, fe.Offset)
			}
			if fe.Input != tc.input {
				t.Errorf("expected input %q, got %q", tc.input, fe.Input)
			}
			if fe.Detail() == "" {
				t.Error("Detail() should not be empty")
			}
		})
	}
}

// TestMustParse_Panics verifies MustParse panics on invalid input.
func TestMustParse_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("not a number")
}

// TestNew verifies conversion from int64, including both extremes.
func TestNew(t *testing.T) {
	t.Parallel()

	tests := []int64{0, 1, -1, 42, -42, 1000, math.MaxInt64, math.MinInt64}
	for _, v := range tests {
		v := v
		t.Run(fmt.Sprint(v), func(t *testing.T) {
			t.Parallel()
			want := fmt.Sprint(v)
			if got := New(v).String(); got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		})
	}
}

// TestFromDigits verifies validation and normalization of raw digits.
func TestFromDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		neg     bool
		digits  []byte
		want    string
		wantErr bool
	}{
		{"simple", false, []byte{1, 2, 3}, "123", false},
		{"negative", true, []byte{4, 5}, "-45", false},
		{"leading zeros", false, []byte{0, 0, 9}, "9", false},
		{"negative zero", true, []byte{0, 0}, "0", false},
		{"empty", true, nil, "0", false},
		{"out of range", false, []byte{1, 10}, "", true},
		{"ascii instead of value", false, []byte("12"), "", true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			x, err := FromDigits(tc.neg, tc.digits)
			if tc.wantErr {
				if !errors.Is(err, ErrDigitRange) {
					t.Errorf("expected ErrDigitRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := x.String(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// TestFromDigits_Copies verifies the input slice is not retained.
func TestFromDigits_Copies(t *testing.T) {
	t.Parallel()

	in := []byte{1, 2, 3}
	x, err := FromDigits(false, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in[0] = 9
	if got := x.String(); got != "123" {
		t.Errorf("value changed after caller mutation: got %q", got)
	}

	out := x.Digits()
	out[0] = 9
	if got := x.String(); got != "123" {
		t.Errorf("value changed after mutating Digits(): got %q", got)
	}
}

// TestBigConversion verifies the math/big bridge in both directions.
func TestBigConversion(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"0", "5", "-5", "340282366920938463463374607431768211456", "-18446744073709551617"} {
		b, _ := new(big.Int).SetString(s, 10)
		x := FromBig(b)
		if got := x.String(); got != s {
			t.Errorf("FromBig(%s): expected %q, got %q", s, s, got)
		}
		if x.Big().Cmp(b) != 0 {
			t.Errorf("Big() round trip failed for %s", s)
		}
	}
	if !FromBig(nil).IsZero() {
		t.Error("FromBig(nil) should be zero")
	}
}

// TestZeroValue verifies the zero value behaves as 0 everywhere.
func TestZeroValue(t *testing.T) {
	t.Parallel()

	var z BigInt
	if z.String() != "0" {
		t.Errorf("expected %q, got %q", "0", z.String())
	}
	if !z.IsZero() || z.Sign() != 0 || z.IsNeg() || z.Len() != 1 {
		t.Errorf("zero value predicates wrong: IsZero=%v Sign=%d IsNeg=%v Len=%d", z.IsZero(), z.Sign(), z.IsNeg(), z.Len())
	}
	if !z.Equal(MustParse("-0")) || !z.Equal(Zero()) {
		t.Error("zero value should equal parsed zero")
	}
	if got := z.Add(New(5)).String(); got != "5" {
		t.Errorf("0 + 5: expected %q, got %q", "5", got)
	}
	if got := New(5).Sub(z).String(); got != "5" {
		t.Errorf("5 - 0: expected %q, got %q", "5", got)
	}
	if got := z.Neg(); got.IsNeg() {
		t.Error("Neg(0) must not be negative")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Arithmetic
// ─────────────────────────────────────────────────────────────────────────────

// TestArithmetic verifies the four operations on representative operands.
func TestArithmetic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b                 string
		sum, diff, prod, quo string
	}{
		{"123", "877", "1000", "-754", "107871", "0"},
		{"-5", "3", "-2", "-8", "-15", "-1"},
		{"999", "999", "1998", "0", "998001", "1"},
		{"17", "5", "22", "12", "85", "3"},
		{"-17", "5", "-12", "-22", "-85", "-3"},
		{"17", "-5", "12", "22", "-85", "-3"},
		{"-17", "-5", "-22", "-12", "85", "3"},
		{"5", "17", "22", "-12", "85", "0"},
		{"-5", "-3", "-8", "-2", "15", "1"},
		{"3", "-5", "-2", "8", "-15", "0"},
		{"0", "-9", "-9", "9", "0", "0"},
		{"1000000000000000000000", "1", "1000000000000000000001", "999999999999999999999", "1000000000000000000000", "1000000000000000000000"},
		{"99999999999999999999", "99999999999999999999", "199999999999999999998", "0", "9999999999999999999800000000000000000001", "1"},
		{"100000000000000000000", "-99999999999999999999", "1", "199999999999999999999", "-9999999999999999999900000000000000000000", "-1"},
		{"121932631137021795226185032733622923332237463801111263526900", "123456789012345678901234567890", "121932631137021795226185032733746380121249809480012498094790", "121932631137021795226185032733499466543225118122210028959010", "15053411116003470973240679958461993036122918640139582757916694421440278224677638891241000", "987654321098765432109876543210"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.a+"_"+tc.b, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tc.a), MustParse(tc.b)

			if got := a.Add(b).String(); got != tc.sum {
				t.Errorf("%s + %s: expected %q, got %q", tc.a, tc.b, tc.sum, got)
			}
			if got := a.Sub(b).String(); got != tc.diff {
				t.Errorf("%s - %s: expected %q, got %q", tc.a, tc.b, tc.diff, got)
			}
			if got := a.Mul(b).String(); got != tc.prod {
				t.Errorf("%s * %s: expected %q, got %q", tc.a, tc.b, tc.prod, got)
			}
			q, err := a.Quo(b)
			if err != nil {
				t.Fatalf("%s / %s failed: %v", tc.a, tc.b, err)
			}
			if got := q.String(); got != tc.quo {
				t.Errorf("%s / %s: expected %q, got %q", tc.a, tc.b, tc.quo, got)
			}
		})
	}
}

// TestArithmetic_DoesNotMutate verifies operands are unchanged by operations.
func TestArithmetic_DoesNotMutate(t *testing.T) {
	t.Parallel()

	a := MustParse("-98765")
	b := MustParse("1234")
	_ = a.Add(b)
	_ = a.Sub(b)
	_ = a.Mul(b)
	_, _, _ = a.QuoRem(b)
	_ = a.Abs().Neg()

	if a.String() != "-98765" || b.String() != "1234" {
		t.Errorf("operands mutated: a=%s b=%s", a, b)
	}
}

// TestQuoRem verifies truncated division and remainder signs.
func TestQuoRem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b, q, r string
	}{
		{"17", "5", "3", "2"},
		{"-17", "5", "-3", "-2"},
		{"17", "-5", "-3", "2"},
		{"-17", "-5", "3", "-2"},
		{"4", "7", "0", "4"},
		{"-4", "7", "0", "-4"},
		{"0", "-7", "0", "0"},
		{"100", "10", "10", "0"},
		{"1000000000000000000000000000000", "999999999999999999999999999999", "1", "1"},
		{"98765432109876543210", "1", "98765432109876543210", "0"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			t.Parallel()
			q, r, err := MustParse(tc.a).QuoRem(MustParse(tc.b))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.String() != tc.q || r.String() != tc.r {
				t.Errorf("expected (%s, %s), got (%s, %s)", tc.q, tc.r, q, r)
			}
			rem, err := MustParse(tc.a).Rem(MustParse(tc.b))
			if err != nil || !rem.Equal(r) {
				t.Errorf("Rem mismatch: got %s, %v", rem, err)
			}
		})
	}
}

// TestDivisionByZero verifies every division entry point rejects a zero divisor.
func TestDivisionByZero(t *testing.T) {
	t.Parallel()

	x := New(7)
	if q, err := x.Quo(Zero()); !errors.Is(err, ErrDivisionByZero) || !q.IsZero() {
		t.Errorf("Quo: expected ErrDivisionByZero and zero, got %s, %v", q, err)
	}
	if _, _, err := x.QuoRem(MustParse("-0")); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("QuoRem: expected ErrDivisionByZero, got %v", err)
	}
	if _, err := Zero().Rem(BigInt{}); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Rem: expected ErrDivisionByZero, got %v", err)
	}
	if ErrDivisionByZero.Error() != "Division by 0 is not allowed." {
		t.Errorf("unexpected message %q", ErrDivisionByZero.Error())
	}

	for name, fn := range map[string]func(){
		"MustQuo":    func() { x.MustQuo(Zero()) },
		"MustQuoRem": func() { x.MustQuoRem(Zero()) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s should panic on zero divisor", name)
				}
			}()
			fn()
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Comparison
// ─────────────────────────────────────────────────────────────────────────────

// TestCmp verifies the ordering rules for signs, lengths and digits.
func TestCmp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"0", "0", 0},
		{"0", "-0", 0},
		{"1", "-1", 1},
		{"-1", "1", -1},
		{"100", "99", 1},
		{"-100", "-99", -1},
		{"123", "124", -1},
		{"-123", "-124", 1},
		{"5", "5", 0},
		{"-5", "-5", 0},
		{"0", "-1", 1},
		{"0", "1", -1},
		{"12345678901234567890", "12345678901234567891", -1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.a+"_"+tc.b, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tc.a), MustParse(tc.b)
			if got := a.Cmp(b); got != tc.want {
				t.Errorf("Cmp(%s, %s): expected %d, got %d", tc.a, tc.b, tc.want, got)
			}
			if got := b.Cmp(a); got != -tc.want {
				t.Errorf("Cmp(%s, %s): expected %d, got %d", tc.b, tc.a, -tc.want, got)
			}
			if got := a.Equal(b); got != (tc.want == 0) {
				t.Errorf("Equal(%s, %s): expected %v, got %v", tc.a, tc.b, tc.want == 0, got)
			}
		})
	}
}

// TestSignHelpers verifies Sign, Abs, Neg and CmpAbs.
func TestSignHelpers(t *testing.T) {
	t.Parallel()

	neg := MustParse("-42")
	pos := MustParse("42")

	if neg.Sign() != -1 || pos.Sign() != 1 || Zero().Sign() != 0 {
		t.Errorf("unexpected signs: %d %d %d", neg.Sign(), pos.Sign(), Zero().Sign())
	}
	if !neg.Abs().Equal(pos) {
		t.Errorf("Abs(-42): expected 42, got %s", neg.Abs())
	}
	if !pos.Neg().Equal(neg) || !neg.Neg().Equal(pos) {
		t.Error("Neg should flip the sign")
	}
	if neg.CmpAbs(pos) != 0 {
		t.Errorf("CmpAbs(-42, 42): expected 0, got %d", neg.CmpAbs(pos))
	}
	if New(-100).CmpAbs(New(99)) != 1 {
		t.Error("CmpAbs(-100, 99) should be 1")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Rendering and encoding
// ─────────────────────────────────────────────────────────────────────────────

// TestFormat verifies fmt verbs, width and flags.
func TestFormat(t *testing.T) {
	t.Parallel()

	x := MustParse("-1234")
	y := MustParse("56")

	tests := []struct {
		format string
		value  BigInt
		want   string
	}{
		{"%v", x, "-1234"},
		{"%s", x, "-1234"},
		{"%d", y, "56"},
		{"%+d", y, "+56"},
		{"%+d", x, "-1234"},
		{"%q", x, `"-1234"`},
		{"%6d", y, "    56"},
		{"%-6d|", y, "56    |"},
		{"%2v", x, "-1234"},
		{"%x", y, "%!x(bigint.BigInt=56)"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.format, func(t *testing.T) {
			t.Parallel()
			if got := fmt.Sprintf(tc.format, tc.value); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// TestJSON verifies BigInt fields encode as strings and decode from both
// strings and bare numbers.
func TestJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Value BigInt `json:"value"`
	}

	data, err := json.Marshal(payload{Value: MustParse("-123456789012345678901234567890")})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"value":"-123456789012345678901234567890"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}

	for _, in := range []string{
		`{"value":"-123456789012345678901234567890"}`,
		`{"value":-123456789012345678901234567890}`,
	} {
		var p payload
		if err := json.Unmarshal([]byte(in), &p); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", in, err)
		}
		if p.Value.String() != "-123456789012345678901234567890" {
			t.Errorf("Unmarshal(%s): got %s", in, p.Value)
		}
	}

	p := payload{Value: New(9)}
	if err := json.Unmarshal([]byte(`{"value":null}`), &p); err != nil {
		t.Fatalf("Unmarshal(null) failed: %v", err)
	}
	if p.Value.String() != "9" {
		t.Errorf("null should leave the value unchanged, got %s", p.Value)
	}

	err = json.Unmarshal([]byte(`{"value":"1.5"}`), &p)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

// TestText verifies the encoding.TextMarshaler round trip.
func TestText(t *testing.T) {
	t.Parallel()

	x := MustParse("-90210")
	text, err := x.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	var y BigInt
	if err := y.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if !x.Equal(y) {
		t.Errorf("expected %s, got %s", x, y)
	}
	if err := y.UnmarshalText(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
