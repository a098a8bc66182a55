// Package core provides money parsing and handling utilities.
//
// Amounts are decimals bounded to MaxIntegerDigits whole digits and
// MaxFractionDigits decimal places, so every amount is shown exactly as typed.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxIntegerDigits bounds amounts below one trillion.
	MaxIntegerDigits = 12
	// MaxFractionDigits matches the decimal places the display renders.
	MaxFractionDigits = 3
)

// Money is a currency-agnostic positive amount.
type Money struct {
	Value decimal.Decimal
}

// ParseMoney parses a decimal string such as "150", "12.5" or "1e3".
//
// It rejects empty input, anything that is not a number, values that are
// not strictly greater than zero and values outside the digit bounds.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	m := Money{Value: d}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// NewMoney creates Money from an integer number of units.
func NewMoney(units int64) Money {
	return Money{Value: decimal.NewFromInt(units)}
}

func (m Money) Validate() error {
	if !m.Value.IsPositive() || !withinBounds(m.Value) {
		return ErrInvalidAmount
	}
	return nil
}

// withinBounds inspects the coefficient and exponent directly. Comparing
// against a limit would rescale values like 1e1000000 first.
func withinBounds(d decimal.Decimal) bool {
	digits := d.Coefficient().String()
	significant := strings.TrimRight(digits, "0")
	if significant == "" {
		return false
	}
	exp := int64(d.Exponent()) + int64(len(digits)-len(significant))
	if exp < -MaxFractionDigits {
		return false
	}
	return int64(len(significant))+exp <= MaxIntegerDigits
}

func (m Money) Add(o Money) Money {
	return Money{Value: m.Value.Add(o.Value)}
}

func (m Money) IsZero() bool {
	return m.Value.IsZero()
}

func (m Money) GreaterThan(o Money) bool {
	return m.Value.GreaterThan(o.Value)
}

// Equal compares numeric value, so 150 equals 150.00.
func (m Money) Equal(o Money) bool {
	return m.Value.Equal(o.Value)
}

// Float64 returns the value as a float64 for display and chart scaling.
// Use the decimal value for sums.
func (m Money) Float64() float64 {
	return m.Value.InexactFloat64()
}

func (m Money) String() string {
	return m.Value.String()
}
