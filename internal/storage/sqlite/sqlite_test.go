package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roommate/internal/models"
	"github.com/mmynk/roommate/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "roommate-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func createHousehold(t *testing.T, store *SQLiteStore, name string, creator *models.User, members ...*models.User) *models.Household {
	t.Helper()
	ctx := context.Background()
	household := &models.Household{Name: name, CreatedBy: creator.ID}
	if err := store.CreateHousehold(ctx, household); err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}
	for _, m := range members {
		if err := store.AddMember(ctx, household.ID, m.ID); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}
	return household
}

// recordExpense writes an expense and its splits the way the service does.
func recordExpense(t *testing.T, store *SQLiteStore, expense *models.Expense, shares map[string]string) {
	t.Helper()
	err := store.WithTx(context.Background(), func(tx storage.LedgerTx) error {
		if err := tx.CreateExpense(context.Background(), expense); err != nil {
			return err
		}
		var splits []models.ExpenseSplit
		for userID, amount := range shares {
			splits = append(splits, models.ExpenseSplit{
				ExpenseID:   expense.ID,
				UserID:      userID,
				ShareAmount: decimal.RequireFromString(amount),
			})
		}
		_, err := tx.BulkCreateSplits(context.Background(), splits)
		return err
	})
	if err != nil {
		t.Fatalf("recording expense failed: %v", err)
	}
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")

	t.Run("GetUserByEmail finds user", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != alice.ID || got.Name != "Alice" {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("missing user is nil without error", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, "nonexistent-id")
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil user, got %+v", got)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Other Alice", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected error for duplicate email")
		}
	})
}

func TestSQLiteStore_Households(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")

	household := createHousehold(t, store, "Flat 4B", alice, bob)

	t.Run("CreateHousehold generates ID and adds creator", func(t *testing.T) {
		if household.ID == "" || household.CreatedAt == 0 {
			t.Fatalf("expected ID and CreatedAt, got %+v", household)
		}
		ok, err := store.IsMember(ctx, alice.ID, household.ID)
		if err != nil || !ok {
			t.Errorf("creator should be a member (ok=%v, err=%v)", ok, err)
		}
	})

	t.Run("GetHousehold loads members", func(t *testing.T) {
		got, err := store.GetHousehold(ctx, household.ID)
		if err != nil {
			t.Fatalf("GetHousehold failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(got.Members))
		}
		if got.Members[0].Name != "Alice" || got.Members[1].Name != "Bob" {
			t.Errorf("members not ordered by name: %+v", got.Members)
		}
		if !got.HasMember(bob.ID) || got.HasMember(carol.ID) {
			t.Errorf("unexpected membership: %+v", got.Members)
		}
	})

	t.Run("GetHousehold returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetHousehold(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AddMember twice returns ErrAlreadyExists", func(t *testing.T) {
		err := store.AddMember(ctx, household.ID, bob.ID)
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("ListHouseholdsByUser", func(t *testing.T) {
		createHousehold(t, store, "Cabin", carol, bob)

		got, err := store.ListHouseholdsByUser(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListHouseholdsByUser failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected bob in 2 households, got %d", len(got))
		}

		got, err = store.ListHouseholdsByUser(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListHouseholdsByUser failed: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Flat 4B" {
			t.Errorf("unexpected households for alice: %+v", got)
		}
	})

	t.Run("RemoveMember", func(t *testing.T) {
		if err := store.RemoveMember(ctx, household.ID, bob.ID); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		ok, err := store.IsMember(ctx, bob.ID, household.ID)
		if err != nil || ok {
			t.Errorf("bob should no longer be a member (ok=%v, err=%v)", ok, err)
		}
		if err := store.RemoveMember(ctx, household.ID, bob.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound removing twice, got %v", err)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	household := createHousehold(t, store, "Flat 4B", alice, bob)

	t.Run("expense with splits round-trips", func(t *testing.T) {
		expense := &models.Expense{
			HouseholdID: household.ID,
			PaidByID:    alice.ID,
			Amount:      decimal.RequireFromString("100"),
			Description: "Groceries",
		}
		recordExpense(t, store, expense, map[string]string{alice.ID: "50", bob.ID: "50"})

		if expense.ID == "" || expense.CreatedAt == 0 {
			t.Fatalf("expected ID and CreatedAt, got %+v", expense)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(decimal.RequireFromString("100")) {
			t.Errorf("Amount mismatch: got %s", got.Amount)
		}
		if got.PaidByName != "Alice" || got.Description != "Groceries" {
			t.Errorf("unexpected header: %+v", got)
		}
		if len(got.Splits) != 2 {
			t.Fatalf("expected 2 splits, got %d", len(got.Splits))
		}
		if got.Splits[0].UserName != "Alice" || got.Splits[1].UserName != "Bob" {
			t.Errorf("split names not loaded: %+v", got.Splits)
		}
	})

	t.Run("solo expense has no splits", func(t *testing.T) {
		expense := &models.Expense{
			HouseholdID: household.ID,
			PaidByID:    bob.ID,
			Amount:      decimal.RequireFromString("12.34"),
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.IsShared() {
			t.Errorf("expected no splits, got %+v", got.Splits)
		}
		if got.Amount.String() != "12.34" {
			t.Errorf("Amount mismatch: got %s", got.Amount)
		}
	})

	t.Run("failed split insert rolls back the expense", func(t *testing.T) {
		before, err := store.ListExpensesByHousehold(ctx, household.ID)
		if err != nil {
			t.Fatalf("ListExpensesByHousehold failed: %v", err)
		}

		expense := &models.Expense{
			HouseholdID: household.ID,
			PaidByID:    alice.ID,
			Amount:      decimal.RequireFromString("10"),
		}
		err = store.WithTx(ctx, func(tx storage.LedgerTx) error {
			if err := tx.CreateExpense(ctx, expense); err != nil {
				return err
			}
			// Same (expense, user) twice violates the primary key.
			_, err := tx.BulkCreateSplits(ctx, []models.ExpenseSplit{
				{ExpenseID: expense.ID, UserID: bob.ID, ShareAmount: decimal.RequireFromString("5")},
				{ExpenseID: expense.ID, UserID: bob.ID, ShareAmount: decimal.RequireFromString("5")},
			})
			return err
		})
		if err == nil {
			t.Fatal("expected duplicate split error")
		}

		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expense should have been rolled back, got err=%v", err)
		}
		after, err := store.ListExpensesByHousehold(ctx, household.ID)
		if err != nil {
			t.Fatalf("ListExpensesByHousehold failed: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("expense count changed from %d to %d", len(before), len(after))
		}
	})

	t.Run("BulkCreateSplits reports count", func(t *testing.T) {
		expense := &models.Expense{
			HouseholdID: household.ID,
			PaidByID:    alice.ID,
			Amount:      decimal.RequireFromString("9"),
		}
		var count int
		err := store.WithTx(ctx, func(tx storage.LedgerTx) error {
			if err := tx.CreateExpense(ctx, expense); err != nil {
				return err
			}
			var err error
			count, err = tx.BulkCreateSplits(ctx, []models.ExpenseSplit{
				{ExpenseID: expense.ID, UserID: alice.ID, ShareAmount: decimal.RequireFromString("4.5")},
				{ExpenseID: expense.ID, UserID: bob.ID, ShareAmount: decimal.RequireFromString("4.5")},
			})
			return err
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected count 2, got %d", count)
		}
	})

	t.Run("ListExpensesWithSplits attaches splits to their expense", func(t *testing.T) {
		expenses, err := store.ListExpensesWithSplits(ctx, household.ID)
		if err != nil {
			t.Fatalf("ListExpensesWithSplits failed: %v", err)
		}
		if len(expenses) != 3 {
			t.Fatalf("expected 3 expenses, got %d", len(expenses))
		}
		splitCount := 0
		for _, e := range expenses {
			sum := decimal.Zero
			for _, s := range e.Splits {
				if s.ExpenseID != e.ID {
					t.Errorf("split %+v attached to expense %s", s, e.ID)
				}
				sum = sum.Add(s.ShareAmount)
			}
			if e.IsShared() && !sum.Equal(e.Amount) {
				t.Errorf("expense %s splits sum to %s, want %s", e.ID, sum, e.Amount)
			}
			splitCount += len(e.Splits)
		}
		if splitCount != 4 {
			t.Errorf("expected 4 splits in total, got %d", splitCount)
		}
	})

	t.Run("DeleteExpense cascades splits", func(t *testing.T) {
		expenses, err := store.ListExpensesWithSplits(ctx, household.ID)
		if err != nil {
			t.Fatalf("ListExpensesWithSplits failed: %v", err)
		}
		var target *models.Expense
		for _, e := range expenses {
			if e.IsShared() {
				target = e
				break
			}
		}
		if target == nil {
			t.Fatal("no shared expense to delete")
		}

		if err := store.DeleteExpense(ctx, target.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}

		var remaining int
		if err := store.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM expense_splits WHERE expense_id = ?", target.ID,
		).Scan(&remaining); err != nil {
			t.Fatalf("count splits failed: %v", err)
		}
		if remaining != 0 {
			t.Errorf("expected splits to be deleted, %d remain", remaining)
		}

		if err := store.DeleteExpense(ctx, target.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound deleting twice, got %v", err)
		}
	})
}
