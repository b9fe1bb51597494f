package calculator

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roommate/internal/money"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrNoParticipants    = errors.New("must have at least one participant")
)

// Share is one participant's portion of an expense.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// EqualSplit divides amount equally among participants.
//
// The amount is rounded to cents and divided as an integer. Cents left over
// from the division go one each to the first participants in the given
// order, so the shares always sum to the rounded amount:
//
//	EqualSplit(100.00, [a, b, c]) -> a: 33.34, b: 33.33, c: 33.33
//
// Duplicate participants are not rejected; each occurrence gets a share.
func EqualSplit(amount decimal.Decimal, participants []string) ([]Share, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if amount.Round(2).Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	totalCents, err := money.PositiveCents(amount)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, cents := range distributeCents(totalCents, len(participants)) {
		shares[i] = Share{
			UserID: participants[i],
			Amount: money.FromCents(cents),
		}
	}
	return shares, nil
}

// distributeCents splits total into n integer parts that differ by at most
// one cent. Larger parts come first.
func distributeCents(total int64, n int) []int64 {
	base := total / int64(n)
	remainder := total % int64(n)

	parts := make([]int64, n)
	for i := range parts {
		parts[i] = base
		if int64(i) < remainder {
			parts[i]++
		}
	}
	return parts
}
