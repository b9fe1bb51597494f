package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/roommate/pkg/api"
)

func TestCreateHousehold(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com", "Alice")

	resp, err := env.households.CreateHousehold(ctx, asUser(alice.ID, &api.CreateHouseholdRequest{Name: "  Maple Street  "}))
	if err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}

	household := resp.Msg.Household
	if household.Name != "Maple Street" || household.CreatedBy != alice.ID {
		t.Errorf("unexpected household: %+v", household)
	}
	if len(household.Members) != 1 || household.Members[0].UserID != alice.ID || household.Members[0].Name != "Alice" {
		t.Errorf("creator should be the only member, got %+v", household.Members)
	}

	_, err = env.households.CreateHousehold(ctx, asUser(alice.ID, &api.CreateHouseholdRequest{Name: "   "}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.households.CreateHousehold(ctx, asUser("", &api.CreateHouseholdRequest{Name: "Flat"}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetHousehold(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com", "Alice")
	bob := env.createUser(t, "bob@example.com", "Bob")
	outsider := env.createUser(t, "mallory@example.com", "Mallory")
	householdID := env.createHousehold(t, alice, bob)

	resp, err := env.households.GetHousehold(ctx, asUser(bob.ID, &api.GetHouseholdRequest{HouseholdID: householdID}))
	if err != nil {
		t.Fatalf("GetHousehold failed: %v", err)
	}
	if len(resp.Msg.Household.Members) != 2 {
		t.Errorf("expected 2 members, got %+v", resp.Msg.Household.Members)
	}

	_, err = env.households.GetHousehold(ctx, asUser(outsider.ID, &api.GetHouseholdRequest{HouseholdID: householdID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.households.GetHousehold(ctx, asUser(alice.ID, &api.GetHouseholdRequest{HouseholdID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.households.GetHousehold(ctx, asUser(alice.ID, &api.GetHouseholdRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestListHouseholds(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com", "Alice")
	bob := env.createUser(t, "bob@example.com", "Bob")
	env.createHousehold(t, alice, bob)
	env.createHousehold(t, alice)

	tests := []struct {
		user string
		want int
	}{
		{alice.ID, 2},
		{bob.ID, 1},
	}
	for _, tt := range tests {
		resp, err := env.households.ListHouseholds(ctx, asUser(tt.user, &api.ListHouseholdsRequest{}))
		if err != nil {
			t.Fatalf("ListHouseholds failed: %v", err)
		}
		if len(resp.Msg.Households) != tt.want {
			t.Errorf("user %s: expected %d households, got %d", tt.user, tt.want, len(resp.Msg.Households))
		}
	}
}

func TestAddMember(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com", "Alice")
	bob := env.createUser(t, "bob@example.com", "Bob")
	outsider := env.createUser(t, "mallory@example.com", "Mallory")
	householdID := env.createHousehold(t, alice)

	t.Run("by email, case-insensitive", func(t *testing.T) {
		resp, err := env.households.AddMember(ctx, asUser(alice.ID, &api.AddMemberRequest{
			HouseholdID: householdID,
			Email:       "  Bob@Example.com ",
		}))
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if len(resp.Msg.Household.Members) != 2 {
			t.Errorf("expected 2 members, got %+v", resp.Msg.Household.Members)
		}
	})

	tests := []struct {
		name   string
		caller string
		email  string
		code   connect.Code
	}{
		{"already a member", alice.ID, bob.Email, connect.CodeAlreadyExists},
		{"unknown email", alice.ID, "nobody@example.com", connect.CodeNotFound},
		{"empty email", alice.ID, "", connect.CodeInvalidArgument},
		{"caller not a member", outsider.ID, outsider.Email, connect.CodePermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.households.AddMember(ctx, asUser(tt.caller, &api.AddMemberRequest{
				HouseholdID: householdID,
				Email:       tt.email,
			}))
			assertCode(t, err, tt.code)
		})
	}
}

func TestRemoveMember(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com", "Alice")
	bob := env.createUser(t, "bob@example.com", "Bob")
	householdID := env.createHousehold(t, alice, bob)

	if _, err := env.households.RemoveMember(ctx, asUser(bob.ID, &api.RemoveMemberRequest{
		HouseholdID: householdID,
		UserID:      bob.ID,
	})); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	// Bob left, so he can no longer see or change the household.
	_, err := env.households.GetHousehold(ctx, asUser(bob.ID, &api.GetHouseholdRequest{HouseholdID: householdID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.households.RemoveMember(ctx, asUser(alice.ID, &api.RemoveMemberRequest{
		HouseholdID: householdID,
		UserID:      bob.ID,
	}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.households.RemoveMember(ctx, asUser(alice.ID, &api.RemoveMemberRequest{HouseholdID: householdID}))
	assertCode(t, err, connect.CodeInvalidArgument)
}
