package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/roommate/pkg/api"
)

const (
	// HouseholdServiceName is the fully-qualified name of the HouseholdService.
	HouseholdServiceName = "roommate.v1.HouseholdService"

	HouseholdServiceCreateHouseholdProcedure = "/roommate.v1.HouseholdService/CreateHousehold"
	HouseholdServiceGetHouseholdProcedure    = "/roommate.v1.HouseholdService/GetHousehold"
	HouseholdServiceListHouseholdsProcedure  = "/roommate.v1.HouseholdService/ListHouseholds"
	HouseholdServiceAddMemberProcedure       = "/roommate.v1.HouseholdService/AddMember"
	HouseholdServiceRemoveMemberProcedure    = "/roommate.v1.HouseholdService/RemoveMember"
)

// HouseholdServiceHandler is implemented by the server side of the HouseholdService.
type HouseholdServiceHandler interface {
	CreateHousehold(context.Context, *connect.Request[api.CreateHouseholdRequest]) (*connect.Response[api.CreateHouseholdResponse], error)
	GetHousehold(context.Context, *connect.Request[api.GetHouseholdRequest]) (*connect.Response[api.GetHouseholdResponse], error)
	ListHouseholds(context.Context, *connect.Request[api.ListHouseholdsRequest]) (*connect.Response[api.ListHouseholdsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewHouseholdServiceHandler builds an HTTP handler from the service implementation.
func NewHouseholdServiceHandler(svc HouseholdServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + HouseholdServiceName + "/", serviceMux(map[string]http.Handler{
		HouseholdServiceCreateHouseholdProcedure: connect.NewUnaryHandler(HouseholdServiceCreateHouseholdProcedure, svc.CreateHousehold, opts...),
		HouseholdServiceGetHouseholdProcedure:    connect.NewUnaryHandler(HouseholdServiceGetHouseholdProcedure, svc.GetHousehold, opts...),
		HouseholdServiceListHouseholdsProcedure:  connect.NewUnaryHandler(HouseholdServiceListHouseholdsProcedure, svc.ListHouseholds, opts...),
		HouseholdServiceAddMemberProcedure:       connect.NewUnaryHandler(HouseholdServiceAddMemberProcedure, svc.AddMember, opts...),
		HouseholdServiceRemoveMemberProcedure:    connect.NewUnaryHandler(HouseholdServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
	})
}

// HouseholdServiceClient is a client for the HouseholdService.
type HouseholdServiceClient interface {
	CreateHousehold(context.Context, *connect.Request[api.CreateHouseholdRequest]) (*connect.Response[api.CreateHouseholdResponse], error)
	GetHousehold(context.Context, *connect.Request[api.GetHouseholdRequest]) (*connect.Response[api.GetHouseholdResponse], error)
	ListHouseholds(context.Context, *connect.Request[api.ListHouseholdsRequest]) (*connect.Response[api.ListHouseholdsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewHouseholdServiceClient constructs a client for the HouseholdService at baseURL.
func NewHouseholdServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) HouseholdServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &householdServiceClient{
		createHousehold: connect.NewClient[api.CreateHouseholdRequest, api.CreateHouseholdResponse](httpClient, baseURL+HouseholdServiceCreateHouseholdProcedure, opts...),
		getHousehold:    connect.NewClient[api.GetHouseholdRequest, api.GetHouseholdResponse](httpClient, baseURL+HouseholdServiceGetHouseholdProcedure, opts...),
		listHouseholds:  connect.NewClient[api.ListHouseholdsRequest, api.ListHouseholdsResponse](httpClient, baseURL+HouseholdServiceListHouseholdsProcedure, opts...),
		addMember:       connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+HouseholdServiceAddMemberProcedure, opts...),
		removeMember:    connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+HouseholdServiceRemoveMemberProcedure, opts...),
	}
}

type householdServiceClient struct {
	createHousehold *connect.Client[api.CreateHouseholdRequest, api.CreateHouseholdResponse]
	getHousehold    *connect.Client[api.GetHouseholdRequest, api.GetHouseholdResponse]
	listHouseholds  *connect.Client[api.ListHouseholdsRequest, api.ListHouseholdsResponse]
	addMember       *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	removeMember    *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
}

func (c *householdServiceClient) CreateHousehold(ctx context.Context, req *connect.Request[api.CreateHouseholdRequest]) (*connect.Response[api.CreateHouseholdResponse], error) {
	return c.createHousehold.CallUnary(ctx, req)
}

func (c *householdServiceClient) GetHousehold(ctx context.Context, req *connect.Request[api.GetHouseholdRequest]) (*connect.Response[api.GetHouseholdResponse], error) {
	return c.getHousehold.CallUnary(ctx, req)
}

func (c *householdServiceClient) ListHouseholds(ctx context.Context, req *connect.Request[api.ListHouseholdsRequest]) (*connect.Response[api.ListHouseholdsResponse], error) {
	return c.listHouseholds.CallUnary(ctx, req)
}

func (c *householdServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *householdServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}
