package service

import (
	"github.com/mmynk/roommate/internal/calculator"
	"github.com/mmynk/roommate/internal/models"
	"github.com/mmynk/roommate/pkg/api"
)

func toAPIUser(user *models.User) *api.User {
	return &api.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func toAPIHousehold(household *models.Household) *api.Household {
	out := &api.Household{
		ID:        household.ID,
		Name:      household.Name,
		CreatedBy: household.CreatedBy,
		CreatedAt: household.CreatedAt,
	}
	for _, m := range household.Members {
		out.Members = append(out.Members, api.Member{
			UserID:   m.UserID,
			Name:     m.Name,
			Email:    m.Email,
			JoinedAt: m.JoinedAt,
		})
	}
	return out
}

func toAPIExpense(expense *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:          expense.ID,
		HouseholdID: expense.HouseholdID,
		PaidByID:    expense.PaidByID,
		PaidByName:  expense.PaidByName,
		Amount:      expense.Amount,
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
	}
	for _, split := range expense.Splits {
		out.Splits = append(out.Splits, api.ExpenseSplit{
			UserID:      split.UserID,
			Name:        split.UserName,
			ShareAmount: split.ShareAmount,
		})
	}
	return out
}

// toBalanceInputs strips expenses down to what the balance aggregator reads.
func toBalanceInputs(expenses []*models.Expense) []calculator.ExpenseForBalance {
	inputs := make([]calculator.ExpenseForBalance, len(expenses))
	for i, expense := range expenses {
		splits := make([]calculator.SplitForBalance, len(expense.Splits))
		for j, split := range expense.Splits {
			splits[j] = calculator.SplitForBalance{
				UserID: split.UserID,
				Name:   split.UserName,
				Amount: split.ShareAmount,
			}
		}
		inputs[i] = calculator.ExpenseForBalance{
			PayerID:   expense.PaidByID,
			PayerName: expense.PaidByName,
			Amount:    expense.Amount,
			Splits:    splits,
		}
	}
	return inputs
}

func toAPIBalances(balances []calculator.MemberBalance) []api.Balance {
	out := make([]api.Balance, len(balances))
	for i, b := range balances {
		out[i] = api.Balance{
			UserID:    b.UserID,
			Name:      b.Name,
			Balance:   b.Balance,
			TotalPaid: b.TotalPaid,
			TotalOwed: b.TotalOwed,
		}
	}
	return out
}

func toAPISettlements(edges []calculator.DebtEdge) []api.SuggestedPayment {
	out := make([]api.SuggestedPayment, len(edges))
	for i, e := range edges {
		out[i] = api.SuggestedPayment{
			FromUserID: e.From,
			ToUserID:   e.To,
			Amount:     e.Amount,
		}
	}
	return out
}
