package kernel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"marketplace/internal/pkg/errs"
)

// MinorUnitsPerMajor is the number of kobo in a naira.
const MinorUnitsPerMajor = 100

// Money is a non-negative currency amount held in minor units (kobo) so that
// sums and comparisons are exact. The zero value is a valid zero amount.
type Money struct {
	minor int64
}

// NewMoney builds an amount from minor units.
func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", minor, 0, int64(math.MaxInt64))
	}
	return Money{minor: minor}, nil
}

// MustMoney is NewMoney for constants and tests; it panics on negative input.
func MustMoney(minor int64) Money {
	m, err := NewMoney(minor)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney reads a decimal major-unit string such as "1250.5" or "99.99".
// More than two fractional digits are rejected rather than rounded.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q must have one or two decimals", s))
	}
	for len(frac) < 2 {
		frac += "0"
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || minor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal amount", s))
	}
	if major > (math.MaxInt64-minor)/MinorUnitsPerMajor {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", s, 0, int64(math.MaxInt64))
	}

	return NewMoney(major*MinorUnitsPerMajor + minor)
}

// Minor returns the amount in kobo.
func (m Money) Minor() int64 {
	return m.minor
}

// Major returns the amount in naira, for JSON responses only.
func (m Money) Major() float64 {
	return float64(m.minor) / MinorUnitsPerMajor
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{minor: m.minor + other.minor}
}

// Times returns m multiplied by a non-negative quantity.
func (m Money) Times(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt32)
	}
	return Money{minor: m.minor * int64(quantity)}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.minor == 0
}

// String renders "1250.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.minor/MinorUnitsPerMajor, m.minor%MinorUnitsPerMajor)
}
