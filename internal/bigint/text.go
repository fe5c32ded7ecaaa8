package bigint

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse converts text of the form [-]digits into a BigInt.
//
// The empty string yields a FormatError wrapping ErrEmptyInput. Anything other
// than an optional single leading '-' followed by one or more ASCII digits
// yields a FormatError wrapping ErrInvalidFormat. Leading zeros are accepted
// and dropped, and "-0" parses as zero.
func Parse(s string) (BigInt, error) {
	if s == "" {
		return BigInt{}, &FormatError{Input: s, Offset: -1, Err: ErrEmptyInput}
	}
	start := 0
	neg := false
	if s[0] == '-' {
		neg = true
		start = 1
	}
	if start == len(s) {
		return BigInt{}, &FormatError{Input: s, Offset: len(s), Err: ErrInvalidFormat}
	}
	digits := make([]byte, len(s)-start)
	for i := start; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return BigInt{}, &FormatError{Input: s, Offset: i, Err: ErrInvalidFormat}
		}
		digits[i-start] = c - '0'
	}
	return newBigInt(neg, digits), nil
}

// MustParse is like Parse but panics if the text cannot be parsed.
// It simplifies safe initialization of global variables holding constants.
func MustParse(s string) BigInt {
	x, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return x
}

// String implements the [fmt.Stringer] interface and returns the decimal
// representation of x: a '-' for negative values followed by the digits,
// without separators or whitespace.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x BigInt) String() string {
	return string(x.appendText(nil))
}

func (x BigInt) appendText(buf []byte) []byte {
	m := x.mag()
	if x.neg {
		buf = append(buf, '-')
	}
	for _, d := range m {
		buf = append(buf, '0'+d)
	}
	return buf
}

// Format implements the [fmt.Formatter] interface.
// The verbs 's', 'v' and 'd' print the decimal form and 'q' prints it quoted.
// Width and the '-' flag are honoured, as is the '+' flag for 'd'.
//
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (x BigInt) Format(state fmt.State, verb rune) {
	var s string
	switch verb {
	case 's', 'v':
		s = x.String()
	case 'd':
		s = x.String()
		if state.Flag('+') && !x.neg {
			s = "+" + s
		}
	case 'q':
		s = strconv.Quote(x.String())
	default:
		fmt.Fprintf(state, "%%!%c(bigint.BigInt=%s)", verb, x.String())
		return
	}
	if w, ok := state.Width(); ok && w > len(s) {
		pad := strings.Repeat(" ", w-len(s))
		if state.Flag('-') {
			s += pad
		} else {
			s = pad + s
		}
	}
	_, _ = io.WriteString(state, s)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (x BigInt) MarshalText() ([]byte, error) {
	return x.appendText(nil), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (x *BigInt) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface. Values are encoded
// as JSON strings so that no precision is lost in decoders that read numbers
// as float64.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (x BigInt) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, x.Len()+3)
	buf = append(buf, '"')
	buf = x.appendText(buf)
	buf = append(buf, '"')
	return buf, nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface. Both JSON
// strings and bare integer literals are accepted; null leaves x unchanged.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (x *BigInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	return x.UnmarshalText([]byte(text))
}
