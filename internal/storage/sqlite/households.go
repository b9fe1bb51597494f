package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roommate/internal/models"
	"github.com/mmynk/roommate/internal/storage"
)

// CreateHousehold persists a household and makes its creator the first member.
func (s *SQLiteStore) CreateHousehold(ctx context.Context, household *models.Household) error {
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.CreatedAt == 0 {
		household.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO households (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		household.ID, household.Name, household.CreatedBy, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO household_members (household_id, user_id, joined_at) VALUES (?, ?, ?)",
		household.ID, household.CreatedBy, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetHousehold retrieves a household with its members ordered by name.
func (s *SQLiteStore) GetHousehold(ctx context.Context, householdID string) (*models.Household, error) {
	household := &models.Household{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM households WHERE id = ?",
		householdID,
	).Scan(&household.ID, &household.Name, &household.CreatedBy, &household.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("household %s: %w", householdID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, m.joined_at
		 FROM household_members m JOIN users u ON u.id = m.user_id
		 WHERE m.household_id = ?
		 ORDER BY u.name, u.id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get household members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		household.Members = append(household.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return household, nil
}

// ListHouseholdsByUser retrieves the households a user belongs to, newest first.
func (s *SQLiteStore) ListHouseholdsByUser(ctx context.Context, userID string) ([]*models.Household, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT h.id, h.name, h.created_by, h.created_at
		 FROM households h JOIN household_members m ON m.household_id = h.id
		 WHERE m.user_id = ?
		 ORDER BY h.created_at DESC, h.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	defer rows.Close()

	var households []*models.Household
	for rows.Next() {
		h := &models.Household{}
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		households = append(households, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate households: %w", err)
	}

	return households, nil
}

// IsMember reports whether the user currently belongs to the household.
func (s *SQLiteStore) IsMember(ctx context.Context, userID, householdID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM household_members WHERE household_id = ? AND user_id = ?",
		householdID, userID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

// AddMember adds a user to a household.
func (s *SQLiteStore) AddMember(ctx context.Context, householdID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO household_members (household_id, user_id, joined_at) VALUES (?, ?, ?)
		 ON CONFLICT (household_id, user_id) DO NOTHING`,
		householdID, userID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check added member: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s in household %s: %w", userID, householdID, storage.ErrAlreadyExists)
	}
	return nil
}

// RemoveMember removes a user from a household. Past expenses are kept.
func (s *SQLiteStore) RemoveMember(ctx context.Context, householdID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM household_members WHERE household_id = ? AND user_id = ?",
		householdID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed member: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s in household %s: %w", userID, householdID, storage.ErrNotFound)
	}
	return nil
}
