// Package money provides a fixed-point amount type for two-decimal
// currencies. All arithmetic happens on an int64 count of minor units
// (paise); binary floating point is never involved, so sums and
// comparisons are exact.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Money is an amount in minor units (paise).
type Money int64

// Common errors
var (
	ErrInvalidAmount = errors.New("invalid money amount")
)

// FromMinor builds a Money from a count of minor units.
func FromMinor(units int64) Money {
	return Money(units)
}

// FromUnits builds a Money from whole currency units and minor units.
// FromUnits(12, 34) is 12.34.
func FromUnits(whole, minor int64) Money {
	if whole < 0 {
		return Money(whole*100 - minor)
	}
	return Money(whole*100 + minor)
}

// Parse reads a decimal string such as "123.45", "123.4", "123" or
// "-0.05". More than two fraction digits are rejected.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	wholePart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		wholePart = s[:i]
		fracPart = s[i+1:]
	}
	if wholePart == "" && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(fracPart) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two fraction digits", ErrInvalidAmount, s)
	}
	// 15 whole digits keeps units*100 far inside int64.
	if len(wholePart) > 15 {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
	}

	var units int64
	for _, c := range wholePart {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		units = units*10 + int64(c-'0')
	}
	units *= 100

	mult := int64(10)
	for _, c := range fracPart {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		units += int64(c-'0') * mult
		mult /= 10
	}

	if negative {
		units = -units
	}
	return Money(units), nil
}

// Minor returns the amount as a count of minor units.
func (m Money) Minor() int64 {
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

// Neg returns -m.
func (m Money) Neg() Money {
	return -m
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// Cmp compares m against other, returning -1, 0 or 1.
func (m Money) Cmp(other Money) int {
	switch {
	case m < other:
		return -1
	case m > other:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// IsPositive reports whether m is greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// IsNegative reports whether m is less than zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// String formats the amount as a decimal with two fraction digits.
func (m Money) String() string {
	units := int64(m)
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return fmt.Sprintf("%s%d.%02d", sign, units/100, units%100)
}

// MarshalJSON encodes the amount as a decimal string ("123.45") so API
// clients never see a binary float.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a decimal string or a bare JSON number
// with at most two fraction digits.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = str
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
