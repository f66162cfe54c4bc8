// Package money provides exact fixed-point currency arithmetic.
// Amounts are stored as an integer number of cents; no float arithmetic
// is ever performed on monetary values.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is a monetary amount in cents (hundredths of the currency unit).
// It maps to a BIGINT column.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// FromCents builds a Money from a raw cent count.
func FromCents(cents int64) Money {
	return Money(cents)
}

// FromUnits builds a Money from whole currency units.
func FromUnits(units int64) Money {
	return Money(units * 100)
}

// Parse converts a decimal string such as "12", "12.5" or "12.50" into a
// Money. At most two fractional digits are accepted; anything finer than a
// cent is rejected rather than silently rounded.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}

	negative := false
	if s[0] == '+' || s[0] == '-' {
		negative = s[0] == '-'
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, fmt.Errorf("money: amount %q has sub-cent precision", s)
	}
	// Pad "12.5" to 12.50.
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	// Both parts must be bare digit runs. ParseInt alone would let a second
	// sign hide inside the fraction ("1.-5") and reinterpret the amount.
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: amount %q out of range", s)
	}
	cents, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}

	if units > (math.MaxInt64-cents)/100 {
		return 0, fmt.Errorf("money: amount %q out of range", s)
	}
	total := units*100 + cents
	if negative {
		total = -total
	}
	return Money(total), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Cents returns the raw cent count.
func (m Money) Cents() int64 {
	return int64(m)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulInt returns the amount multiplied by an integer quantity. The result is
// exact; this is the only multiplication a sale line ever needs.
func (m Money) MulInt(n int) Money {
	return m * Money(n)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// Float64 converts to a float for display layers only. Never feed the result
// back into monetary arithmetic.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// String renders the amount with two decimals, e.g. "12.50" or "-0.05".
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON encodes the amount as an exact decimal JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number ("12.5") or a quoted decimal
// string ("\"12.50\"").
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
