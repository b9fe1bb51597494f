package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/roommate/internal/models"
)

type memoryUsers struct {
	byEmail map[string]*models.User
}

func (m *memoryUsers) CreateUser(ctx context.Context, user *models.User) error {
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func newTestAuthenticator() (*PasswordAuthenticator, *memoryUsers) {
	users := &memoryUsers{byEmail: make(map[string]*models.User)}
	a := NewPasswordAuthenticator(users)
	a.cost = bcrypt.MinCost
	return a, users
}

func TestPasswordAuthenticator_Register(t *testing.T) {
	a, users := newTestAuthenticator()
	ctx := context.Background()

	user, err := a.Register(ctx, "  Alice@Example.com ", "Alice", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" || user.Email != "alice@example.com" || user.Name != "Alice" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in plain text")
	}
	if users.byEmail["alice@example.com"] != user {
		t.Error("user not persisted under normalized email")
	}

	if _, err := a.Register(ctx, "ALICE@example.com", "Alice 2", "another password"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}

	if _, err := a.Register(ctx, "bob@example.com", "Bob", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestPasswordAuthenticator_Authenticate(t *testing.T) {
	a, _ := newTestAuthenticator()
	ctx := context.Background()

	registered, err := a.Register(ctx, "alice@example.com", "Alice", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "alice@example.com", "correct horse", nil},
		{"email is case-insensitive", "Alice@Example.COM", "correct horse", nil},
		{"wrong password", "alice@example.com", "battery staple", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "correct horse", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := a.Authenticate(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && user.ID != registered.ID {
				t.Errorf("authenticated wrong user: %s", user.ID)
			}
		})
	}
}
