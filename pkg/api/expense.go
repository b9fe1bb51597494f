package api

import "github.com/shopspring/decimal"

type Expense struct {
	ID          string          `json:"id"`
	HouseholdID string          `json:"householdId"`
	PaidByID    string          `json:"paidById"`
	PaidByName  string          `json:"paidByName,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   int64           `json:"createdAt"`
	Splits      []ExpenseSplit  `json:"splits,omitempty"`
}

type ExpenseSplit struct {
	UserID      string          `json:"userId"`
	Name        string          `json:"name,omitempty"`
	ShareAmount decimal.Decimal `json:"shareAmount"`
}

// CreateExpenseRequest records an expense. An empty SharedWith records a
// solo expense with no splits.
type CreateExpenseRequest struct {
	HouseholdID string          `json:"householdId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PaidByID    string          `json:"paidById"`
	SharedWith  []string        `json:"sharedWith"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
	// SplitCount is the number of split rows written.
	SplitCount int `json:"splitCount"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	HouseholdID string `json:"householdId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type GetBalancesRequest struct {
	HouseholdID string `json:"householdId"`
}

// Balance is a member's net position: positive means others owe them.
type Balance struct {
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	TotalOwed decimal.Decimal `json:"totalOwed"`
}

// SuggestedPayment is one transfer of a settle-up plan.
type SuggestedPayment struct {
	FromUserID string          `json:"fromUserId"`
	ToUserID   string          `json:"toUserId"`
	Amount     decimal.Decimal `json:"amount"`
}

type GetBalancesResponse struct {
	Balances    []Balance          `json:"balances"`
	Settlements []SuggestedPayment `json:"settlements"`
}
