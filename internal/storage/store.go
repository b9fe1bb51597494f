// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/roommate/internal/models"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique key would be duplicated.
	ErrAlreadyExists = errors.New("already exists")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail and GetUserByID return nil, nil when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// MembershipDirectory answers whether a user belongs to a household.
type MembershipDirectory interface {
	IsMember(ctx context.Context, userID, householdID string) (bool, error)
}

// HouseholdStore persists households and their members.
type HouseholdStore interface {
	MembershipDirectory

	// CreateHousehold persists the household and adds its creator as the
	// first member. ID and CreatedAt are assigned by the store.
	CreateHousehold(ctx context.Context, household *models.Household) error

	// GetHousehold returns the household with Members loaded, or ErrNotFound.
	GetHousehold(ctx context.Context, householdID string) (*models.Household, error)

	// ListHouseholdsByUser returns the households userID belongs to, without members.
	ListHouseholdsByUser(ctx context.Context, userID string) ([]*models.Household, error)

	// AddMember returns ErrAlreadyExists if the user is already a member.
	AddMember(ctx context.Context, householdID, userID string) error

	// RemoveMember returns ErrNotFound if the user is not a member.
	RemoveMember(ctx context.Context, householdID, userID string) error
}

// ExpenseWriter writes expense headers.
type ExpenseWriter interface {
	// CreateExpense persists the header. ID and CreatedAt are assigned by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error
}

// ExpenseSplitStore writes split rows. Splits are only ever inserted in bulk.
type ExpenseSplitStore interface {
	// BulkCreateSplits inserts all splits and returns how many were written.
	BulkCreateSplits(ctx context.Context, splits []models.ExpenseSplit) (int, error)
}

// ExpenseStore persists and reads expense headers.
type ExpenseStore interface {
	ExpenseWriter

	// GetExpense returns the expense with its splits, or ErrNotFound.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// DeleteExpense removes the expense and all of its splits atomically.
	// Returns ErrNotFound if there is nothing to delete.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesByHousehold returns headers only, newest first.
	ListExpensesByHousehold(ctx context.Context, householdID string) ([]*models.Expense, error)

	// ListExpensesWithSplits returns headers with splits and user names loaded.
	ListExpensesWithSplits(ctx context.Context, householdID string) ([]*models.Expense, error)
}

// LedgerTx is the set of writes that must commit or roll back together when
// recording an expense.
type LedgerTx interface {
	ExpenseWriter
	ExpenseSplitStore
}

// Store is the full storage backend used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	HouseholdStore
	ExpenseStore

	// WithTx runs fn inside a single transaction. The transaction commits if
	// fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx LedgerTx) error) error

	// Close releases any resources held by the store.
	Close() error
}
