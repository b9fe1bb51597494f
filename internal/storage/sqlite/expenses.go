package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roommate/internal/models"
	"github.com/mmynk/roommate/internal/money"
	"github.com/mmynk/roommate/internal/storage"
)

// CreateExpense persists a new expense header outside any transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return createExpense(ctx, s.db, expense)
}

func createExpense(ctx context.Context, q querier, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := q.ExecContext(ctx,
		`INSERT INTO expenses (id, household_id, paid_by_id, amount_cents, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.HouseholdID, expense.PaidByID,
		money.ToCents(expense.Amount), expense.Description, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// bulkCreateSplits writes all splits with a single multi-row INSERT.
func bulkCreateSplits(ctx context.Context, q querier, splits []models.ExpenseSplit) (int, error) {
	if len(splits) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(splits)*3)
	for _, split := range splits {
		args = append(args, split.ExpenseID, split.UserID, money.ToCents(split.ShareAmount))
	}

	query := "INSERT INTO expense_splits (expense_id, user_id, share_cents) VALUES " +
		strings.TrimSuffix(strings.Repeat("(?, ?, ?), ", len(splits)), ", ")

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert expense splits: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count inserted splits: %w", err)
	}
	return int(n), nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amountCents int64

	err := s.db.QueryRowContext(ctx,
		`SELECT e.id, e.household_id, e.paid_by_id, u.name, e.amount_cents, e.description, e.created_at
		 FROM expenses e JOIN users u ON u.id = e.paid_by_id
		 WHERE e.id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.HouseholdID, &expense.PaidByID, &expense.PaidByName,
		&amountCents, &expense.Description, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = money.FromCents(amountCents)

	rows, err := s.db.QueryContext(ctx,
		`SELECT s.expense_id, s.user_id, u.name, s.share_cents
		 FROM expense_splits s JOIN users u ON u.id = s.user_id
		 WHERE s.expense_id = ?
		 ORDER BY u.name, s.user_id`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, err
		}
		expense.Splits = append(expense.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expense, nil
}

// DeleteExpense removes an expense and its splits in one transaction.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense splits: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpensesByHousehold retrieves expense headers for a household, newest first.
func (s *SQLiteStore) ListExpensesByHousehold(ctx context.Context, householdID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.household_id, e.paid_by_id, u.name, e.amount_cents, e.description, e.created_at
		 FROM expenses e JOIN users u ON u.id = e.paid_by_id
		 WHERE e.household_id = ?
		 ORDER BY e.created_at DESC, e.id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by household: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var amountCents int64
		if err := rows.Scan(&expense.ID, &expense.HouseholdID, &expense.PaidByID, &expense.PaidByName,
			&amountCents, &expense.Description, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = money.FromCents(amountCents)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// ListExpensesWithSplits retrieves every expense of a household with its splits
// and the names of payers and participants.
func (s *SQLiteStore) ListExpensesWithSplits(ctx context.Context, householdID string) ([]*models.Expense, error) {
	expenses, err := s.ListExpensesByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Expense, len(expenses))
	for _, e := range expenses {
		byID[e.ID] = e
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT s.expense_id, s.user_id, u.name, s.share_cents
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 JOIN users u ON u.id = s.user_id
		 WHERE e.household_id = ?
		 ORDER BY s.expense_id, u.name, s.user_id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, err
		}
		if e, ok := byID[split.ExpenseID]; ok {
			e.Splits = append(e.Splits, split)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expenses, nil
}

func scanSplit(rows *sql.Rows) (models.ExpenseSplit, error) {
	var split models.ExpenseSplit
	var shareCents int64
	if err := rows.Scan(&split.ExpenseID, &split.UserID, &split.UserName, &shareCents); err != nil {
		return split, fmt.Errorf("failed to scan expense split: %w", err)
	}
	split.ShareAmount = money.FromCents(shareCents)
	return split, nil
}
