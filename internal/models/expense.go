package models

import "github.com/shopspring/decimal"

// Expense represents money one member fronted on behalf of the household.
// Expenses are never edited; a wrong expense is deleted and re-created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// HouseholdID is the owning household.
	HouseholdID string

	// PaidByID is the user who paid. Must be a household member at creation.
	PaidByID string

	// PaidByName is filled in by reads that join users.
	PaidByName string

	// Amount is the positive amount paid, in currency units with two decimals.
	Amount decimal.Decimal

	// Description is optional free text.
	Description string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits are the participants' shares. Empty for a solo expense.
	// Only populated by reads that load splits.
	Splits []ExpenseSplit
}

// ExpenseSplit is one participant's share of an expense.
// (ExpenseID, UserID) is unique.
type ExpenseSplit struct {
	ExpenseID string
	UserID    string

	// UserName is filled in by reads that join users.
	UserName string

	ShareAmount decimal.Decimal
}

// IsShared reports whether the expense was split among participants.
func (e *Expense) IsShared() bool {
	return len(e.Splits) > 0
}
