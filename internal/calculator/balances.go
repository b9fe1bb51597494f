package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	PayerID   string
	PayerName string
	Amount    decimal.Decimal
	Splits    []SplitForBalance
}

// SplitForBalance is one participant's share of an ExpenseForBalance.
type SplitForBalance struct {
	UserID string
	Name   string
	Amount decimal.Decimal
}

// MemberBalance represents the balance information for one household member.
type MemberBalance struct {
	UserID    string
	Name      string
	Balance   decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid decimal.Decimal // Total amount fronted across all expenses
	TotalOwed decimal.Decimal // Total of this member's shares
}

// DebtEdge represents a suggested payment from one member to another.
type DebtEdge struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount decimal.Decimal
}

type runningBalance struct {
	userID string
	name   string
	paid   decimal.Decimal
	owed   decimal.Decimal
}

func (b *runningBalance) net() decimal.Decimal {
	return b.paid.Sub(b.owed)
}

// CalculateBalances computes each member's net position across expenses.
//
// Algorithm:
// - For each expense: payer is credited the full amount
// - For each split: the participant is debited their share
// - A payer who is also a participant nets out to "amount - own share"
//
// Amounts are rounded to cents and summed as exact decimals, so totals cannot
// overflow, the result does not depend on input order, and balances add up to
// zero whenever every expense's splits add up to its amount. An expense without splits leaves the payer credited in full.
// Output is sorted by user ID.
func CalculateBalances(expenses []ExpenseForBalance) []MemberBalance {
	balances := make(map[string]*runningBalance)

	get := func(userID, name string) *runningBalance {
		b, exists := balances[userID]
		if !exists {
			b = &runningBalance{userID: userID}
			balances[userID] = b
		}
		if b.name == "" {
			b.name = name
		}
		return b
	}

	for _, expense := range expenses {
		payer := get(expense.PayerID, expense.PayerName)
		payer.paid = payer.paid.Add(expense.Amount.Round(2))

		for _, split := range expense.Splits {
			participant := get(split.UserID, split.Name)
			participant.owed = participant.owed.Add(split.Amount.Round(2))
		}
	}

	result := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		result = append(result, MemberBalance{
			UserID:    b.userID,
			Name:      b.name,
			Balance:   b.net(),
			TotalPaid: b.paid,
			TotalOwed: b.owed,
		})
	}
	slices.SortFunc(result, func(a, b MemberBalance) int {
		return cmp.Compare(a.UserID, b.UserID)
	})

	return result
}

type position struct {
	userID string
	amount decimal.Decimal
}

// SimplifyDebts turns net balances into a short list of payments that settles
// everyone up.
//
// Greedy: the largest debtor pays the largest creditor as much as both can
// absorb, then moves on. Ties are broken by user ID so the same balances
// always produce the same suggestions.
func SimplifyDebts(balances []MemberBalance) []DebtEdge {
	var creditors, debtors []position
	for _, bal := range balances {
		amount := bal.Balance.Round(2)
		switch amount.Sign() {
		case 1:
			creditors = append(creditors, position{userID: bal.UserID, amount: amount})
		case -1:
			debtors = append(debtors, position{userID: bal.UserID, amount: amount.Neg()})
		}
	}

	largestFirst := func(a, b position) int {
		if c := b.amount.Cmp(a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.userID, b.userID)
	}
	slices.SortFunc(creditors, largestFirst)
	slices.SortFunc(debtors, largestFirst)

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)

		edges = append(edges, DebtEdge{
			From:   debtors[i].userID,
			To:     creditors[j].userID,
			Amount: amount,
		})

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if debtors[i].amount.IsZero() {
			i++
		}
		if creditors[j].amount.IsZero() {
			j++
		}
	}

	return edges
}
