package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/roommate/internal/auth"
	"github.com/mmynk/roommate/internal/models"
	"github.com/mmynk/roommate/internal/storage"
	"github.com/mmynk/roommate/pkg/api"
)

// HouseholdBackend is the storage the HouseholdService needs.
type HouseholdBackend interface {
	storage.HouseholdStore
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// HouseholdService implements the Connect HouseholdService.
type HouseholdService struct {
	store HouseholdBackend
}

// NewHouseholdService creates a new HouseholdService with the given storage backend.
func NewHouseholdService(store HouseholdBackend) *HouseholdService {
	return &HouseholdService{store: store}
}

// CreateHousehold creates a household with the caller as its first member.
func (s *HouseholdService) CreateHousehold(ctx context.Context, req *connect.Request[api.CreateHouseholdRequest]) (*connect.Response[api.CreateHouseholdResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("CreateHousehold request received", "name", name, "user_id", userID)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("household name is required"))
	}

	household := &models.Household{Name: name, CreatedBy: userID}
	if err := s.store.CreateHousehold(ctx, household); err != nil {
		slog.Error("CreateHousehold failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	created, err := s.store.GetHousehold(ctx, household.ID)
	if err != nil {
		slog.Error("CreateHousehold reload failed", "household_id", household.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	slog.Info("Household created", "household_id", created.ID)
	return connect.NewResponse(&api.CreateHouseholdResponse{Household: toAPIHousehold(created)}), nil
}

// GetHousehold returns a household and its members to one of its members.
func (s *HouseholdService) GetHousehold(ctx context.Context, req *connect.Request[api.GetHouseholdRequest]) (*connect.Response[api.GetHouseholdResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	household, err := s.loadForMember(ctx, req.Msg.HouseholdID, userID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetHouseholdResponse{Household: toAPIHousehold(household)}), nil
}

// ListHouseholds returns the caller's households.
func (s *HouseholdService) ListHouseholds(ctx context.Context, req *connect.Request[api.ListHouseholdsRequest]) (*connect.Response[api.ListHouseholdsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	households, err := s.store.ListHouseholdsByUser(ctx, userID)
	if err != nil {
		slog.Error("ListHouseholds failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	out := make([]*api.Household, len(households))
	for i, h := range households {
		out[i] = toAPIHousehold(h)
	}

	slog.Info("ListHouseholds successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListHouseholdsResponse{Households: out}), nil
}

// AddMember adds an existing account, found by email, to the household.
// Only members can add members.
func (s *HouseholdService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	email := auth.NormalizeEmail(req.Msg.Email)
	slog.Info("AddMember request received", "household_id", req.Msg.HouseholdID, "email", email)
	if email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email is required"))
	}

	if _, err := s.loadForMember(ctx, req.Msg.HouseholdID, userID); err != nil {
		return nil, err
	}

	invitee, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		slog.Error("AddMember user lookup failed", "email", email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}
	if invitee == nil {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("no account with that email"))
	}

	if err := s.store.AddMember(ctx, req.Msg.HouseholdID, invitee.ID); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, connect.NewError(connect.CodeAlreadyExists, errors.New("user is already a member of the household"))
		}
		slog.Error("AddMember failed", "household_id", req.Msg.HouseholdID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	household, err := s.store.GetHousehold(ctx, req.Msg.HouseholdID)
	if err != nil {
		slog.Error("AddMember reload failed", "household_id", req.Msg.HouseholdID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	slog.Info("Member added", "household_id", household.ID, "user_id", invitee.ID)
	return connect.NewResponse(&api.AddMemberResponse{Household: toAPIHousehold(household)}), nil
}

// RemoveMember removes a user from the household. Members may remove
// themselves or anyone else; existing expenses are kept.
func (s *HouseholdService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("RemoveMember request received", "household_id", req.Msg.HouseholdID, "user_id", req.Msg.UserID)
	if req.Msg.UserID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("userId is required"))
	}

	if _, err := s.loadForMember(ctx, req.Msg.HouseholdID, userID); err != nil {
		return nil, err
	}

	if err := s.store.RemoveMember(ctx, req.Msg.HouseholdID, req.Msg.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("user is not a member of the household"))
		}
		slog.Error("RemoveMember failed", "household_id", req.Msg.HouseholdID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// loadForMember fetches the household and checks that userID belongs to it.
func (s *HouseholdService) loadForMember(ctx context.Context, householdID, userID string) (*models.Household, error) {
	if householdID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("householdId is required"))
	}

	household, err := s.store.GetHousehold(ctx, householdID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("household not found"))
		}
		slog.Error("GetHousehold failed", "household_id", householdID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errInternal)
	}

	if !household.HasMember(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotMember)
	}
	return household, nil
}
