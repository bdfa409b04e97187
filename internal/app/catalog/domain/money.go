package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an exact non-negative amount, so totals such as price x entries
// never pick up floating-point drift.
type Money struct {
	d decimal.Decimal
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{d: decimal.Zero}
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(24990, 100) represents 249.90
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &Money{d: decimal.NewFromInt(numerator).Div(decimal.NewFromInt(denominator))}, nil
}

// ParseMoney parses a decimal string such as "12.50".
func ParseMoney(s string) (*Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return &Money{d: d}, nil
}

// NewMoneyFromFloat converts a float64, rejecting NaN and infinities.
// 0.1 becomes exactly 1/10.
func NewMoneyFromFloat(f float64) (*Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid amount %v", f)
	}
	return &Money{d: decimal.NewFromFloat(f)}, nil
}

// Copy returns an independent copy.
func (m *Money) Copy() *Money {
	if m == nil {
		return Zero()
	}
	return &Money{d: m.d}
}

// Add returns m + other.
func (m *Money) Add(other *Money) *Money {
	return &Money{d: m.d.Add(other.d)}
}

// Times returns m multiplied by a count.
func (m *Money) Times(n int) *Money {
	return &Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))}
}

// IsNegative returns true if the amount is below zero.
func (m *Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m.d.IsZero()
}

// Equal reports whether both amounts are the same.
func (m *Money) Equal(other *Money) bool {
	return m.d.Equal(other.d)
}

// Float64 returns the nearest float64.
func (m *Money) Float64() float64 {
	return m.d.InexactFloat64()
}

// Decimal renders the amount without trailing zeros; it is the stored form.
func (m *Money) Decimal() string {
	return m.d.String()
}

// String renders the amount with two decimals, as shown to users.
func (m *Money) String() string {
	return m.d.StringFixed(2)
}
