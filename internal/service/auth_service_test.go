package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/roommate/internal/auth"
	"github.com/mmynk/roommate/internal/middleware"
	"github.com/mmynk/roommate/internal/storage/sqlite"
	"github.com/mmynk/roommate/pkg/api"
	"github.com/mmynk/roommate/pkg/api/apiconnect"
	"github.com/mmynk/roommate/pkg/logging"
)

func setupAuthTestServer(t *testing.T) apiconnect.AuthServiceClient {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-for-auth-service", time.Hour)
	svc := NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logging.New(io.Discard, slog.LevelError))

	path, handler := apiconnect.NewAuthServiceHandler(svc, connect.WithInterceptors(middleware.OptionalAuth(jwtManager)))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
}

func TestAuthService_RegisterLoginCurrentUser(t *testing.T) {
	client := setupAuthTestServer(t)
	ctx := context.Background()

	reg, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:    "Alice@Example.com",
		Name:     "Alice",
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" || reg.Msg.User.Email != "alice@example.com" {
		t.Fatalf("unexpected register response: %+v", reg.Msg)
	}

	login, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.User.ID != reg.Msg.User.ID {
		t.Errorf("login returned a different user: %+v", login.Msg.User)
	}

	req := connect.NewRequest(&api.GetCurrentUserRequest{})
	req.Header().Set("Authorization", "Bearer "+login.Msg.Token)
	me, err := client.GetCurrentUser(ctx, req)
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.Name != "Alice" || me.Msg.User.CreatedAt == 0 {
		t.Errorf("expected full profile from storage, got %+v", me.Msg.User)
	}
}

func TestAuthService_Errors(t *testing.T) {
	client := setupAuthTestServer(t)
	ctx := context.Background()

	if _, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "bob@example.com", Name: "Bob", Password: "password123",
	})); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "BOB@example.com", Name: "Bobby", Password: "password123",
		}))
		assertCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "carol@example.com", Name: "Carol", Password: "short",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "dave@example.com", Password: "password123",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "bob@example.com", Password: "not-the-password",
		}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("anonymous current user", func(t *testing.T) {
		_, err := client.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})
}
