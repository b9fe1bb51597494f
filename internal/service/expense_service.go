package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/roommate/internal/calculator"
	"github.com/mmynk/roommate/internal/metrics"
	"github.com/mmynk/roommate/internal/models"
	"github.com/mmynk/roommate/internal/money"
	"github.com/mmynk/roommate/internal/storage"
	"github.com/mmynk/roommate/pkg/api"
)

// ExpenseBackend is the storage the ExpenseService needs.
type ExpenseBackend interface {
	storage.MembershipDirectory
	storage.ExpenseStore
	WithTx(ctx context.Context, fn func(tx storage.LedgerTx) error) error
}

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store   ExpenseBackend
	metrics *metrics.Metrics
}

// NewExpenseService creates a new ExpenseService. m may be nil.
func NewExpenseService(store ExpenseBackend, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{store: store, metrics: m}
}

// CreateExpense records an expense and, when shared, its equal splits.
//
// The caller and the payer must both be household members, as must everyone
// in SharedWith. The header and split rows are written in one transaction.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	msg := req.Msg
	slog.Info("CreateExpense request received",
		"household_id", msg.HouseholdID,
		"paid_by_id", msg.PaidByID,
		"amount", msg.Amount.String(),
		"shared_with_count", len(msg.SharedWith),
	)

	if msg.HouseholdID == "" || msg.PaidByID == "" {
		s.metrics.ExpenseFailed("invalid")
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("householdId and paidById are required"))
	}
	cents, err := money.PositiveCents(msg.Amount)
	if err != nil {
		s.metrics.ExpenseFailed("invalid")
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := requireMembers(ctx, s.store, msg.HouseholdID, dedupe([]string{userID, msg.PaidByID})...); err != nil {
		if connect.CodeOf(err) == connect.CodePermissionDenied {
			slog.Warn("CreateExpense rejected", "household_id", msg.HouseholdID, "user_id", userID, "paid_by_id", msg.PaidByID)
			s.metrics.ExpenseFailed("forbidden")
		}
		return nil, err
	}

	participants := dedupe(msg.SharedWith)
	if err := s.checkParticipants(ctx, msg.HouseholdID, participants); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		HouseholdID: msg.HouseholdID,
		PaidByID:    msg.PaidByID,
		Amount:      money.FromCents(cents),
		Description: strings.TrimSpace(msg.Description),
	}

	var splits []models.ExpenseSplit
	var splitCount int
	err = s.store.WithTx(ctx, func(tx storage.LedgerTx) error {
		if err := tx.CreateExpense(ctx, expense); err != nil {
			return err
		}
		if len(participants) == 0 {
			return nil
		}

		shares, err := calculator.EqualSplit(expense.Amount, participants)
		if err != nil {
			return err
		}
		splits = make([]models.ExpenseSplit, len(shares))
		for i, share := range shares {
			splits[i] = models.ExpenseSplit{
				ExpenseID:   expense.ID,
				UserID:      share.UserID,
				ShareAmount: share.Amount,
			}
		}

		splitCount, err = tx.BulkCreateSplits(ctx, splits)
		return err
	})
	if err != nil {
		slog.Error("CreateExpense failed", "household_id", msg.HouseholdID, "error", err)
		s.metrics.ExpenseFailed("storage")
		return nil, connect.NewError(connect.CodeAborted, errUnableToAddExpense)
	}
	expense.Splits = splits

	s.metrics.ExpenseCreated(expense.IsShared())
	slog.Info("Expense created", "expense_id", expense.ID, "split_count", splitCount)

	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense:    toAPIExpense(expense),
		SplitCount: splitCount,
	}), nil
}

// checkParticipants requires every participant to be a household member.
func (s *ExpenseService) checkParticipants(ctx context.Context, householdID string, participants []string) error {
	for _, p := range participants {
		ok, err := s.store.IsMember(ctx, p, householdID)
		if err != nil {
			slog.Error("Participant membership check failed", "household_id", householdID, "error", err)
			return connect.NewError(connect.CodeInternal, errInternal)
		}
		if !ok {
			s.metrics.ExpenseFailed("invalid")
			return connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("participant %s is not a member of the household", p))
		}
	}
	return nil
}

// GetExpense returns one expense with its splits.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.loadForMember(ctx, req.Msg.ExpenseID, userID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses returns a household's expenses, newest first, without splits.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.HouseholdID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("householdId is required"))
	}
	if err := requireMembers(ctx, s.store, req.Msg.HouseholdID, userID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByHousehold(ctx, req.Msg.HouseholdID)
	if err != nil {
		slog.Error("ListExpenses failed", "household_id", req.Msg.HouseholdID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}

	slog.Info("ListExpenses successful", "household_id", req.Msg.HouseholdID, "count", len(out))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense and its splits.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	// Not found is reported before anything is deleted.
	if _, err := s.loadForMember(ctx, req.Msg.ExpenseID, userID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("expense not found"))
		}
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetBalances computes every involved member's net position in the household
// and a list of payments that would settle everyone up.
func (s *ExpenseService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.HouseholdID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("householdId is required"))
	}
	if err := requireMembers(ctx, s.store, req.Msg.HouseholdID, userID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesWithSplits(ctx, req.Msg.HouseholdID)
	if err != nil {
		slog.Error("GetBalances failed", "household_id", req.Msg.HouseholdID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	balances := calculator.CalculateBalances(toBalanceInputs(expenses))
	settlements := calculator.SimplifyDebts(balances)

	slog.Debug("Balances computed",
		"household_id", req.Msg.HouseholdID,
		"expenses", len(expenses),
		"members", len(balances),
		"settlements", len(settlements),
	)

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances:    toAPIBalances(balances),
		Settlements: toAPISettlements(settlements),
	}), nil
}

// loadForMember fetches the expense and checks that userID belongs to its household.
func (s *ExpenseService) loadForMember(ctx context.Context, expenseID, userID string) (*models.Expense, error) {
	if expenseID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("expenseId is required"))
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("expense not found"))
		}
		slog.Error("GetExpense failed", "expense_id", expenseID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	if err := requireMembers(ctx, s.store, expense.HouseholdID, userID); err != nil {
		return nil, err
	}
	return expense, nil
}
