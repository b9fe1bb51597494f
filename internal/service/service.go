// Package service implements the RoomMate Connect handlers.
//
// Every handler returns failures as *connect.Error. Storage errors are logged
// here and never passed through to callers verbatim.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/roommate/internal/auth"
	"github.com/mmynk/roommate/internal/middleware"
	"github.com/mmynk/roommate/internal/storage"
)

var (
	errNotMember          = errors.New("User is not a member of the household")
	errUnableToAddExpense = errors.New("Unable to add Expense")
	errInternal           = errors.New("internal error")
)

// requireUser returns the authenticated user ID or an Unauthenticated error.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// requireMembers checks that every user belongs to the household.
// The first non-member yields PermissionDenied.
func requireMembers(ctx context.Context, dir storage.MembershipDirectory, householdID string, userIDs ...string) error {
	for _, userID := range userIDs {
		ok, err := dir.IsMember(ctx, userID, householdID)
		if err != nil {
			slog.Error("Membership check failed", "household_id", householdID, "user_id", userID, "error", err)
			return connect.NewError(connect.CodeInternal, errInternal)
		}
		if !ok {
			return connect.NewError(connect.CodePermissionDenied, errNotMember)
		}
	}
	return nil
}

// dedupe drops empty and repeated IDs, keeping first occurrences in order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
