// Package money converts between decimal currency amounts and integer cents.
//
// All ledger arithmetic happens in cents. Decimals only appear at the edges
// (API messages, models) so callers never add floats.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MaxCents is the largest single amount accepted, 1,000,000,000.00.
// A household would need more than 90 million expenses at this size before a
// cent total left the int64 range.
const MaxCents int64 = 100_000_000_000

var maxAmount = decimal.New(MaxCents, -2)

// ErrInvalidAmount is returned for amounts that are zero or negative once
// rounded to cents, or larger than MaxCents.
var ErrInvalidAmount = errors.New("amount must be greater than zero and at most 1000000000.00")

// ToCents converts an amount to cents, rounding half away from zero on the
// third decimal place. Amounts outside the int64 range wrap, so user input
// goes through PositiveCents first.
//
// Examples:
//
//	ToCents(12.34)  -> 1234
//	ToCents(12.345) -> 1235
//	ToCents(12.344) -> 1234
func ToCents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

// FromCents converts cents back to a decimal amount with two places.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// PositiveCents validates that amount is a positive currency value and
// returns it in cents.
func PositiveCents(amount decimal.Decimal) (int64, error) {
	rounded := amount.Round(2)
	if rounded.Sign() <= 0 || rounded.GreaterThan(maxAmount) {
		return 0, ErrInvalidAmount
	}
	return ToCents(rounded), nil
}
