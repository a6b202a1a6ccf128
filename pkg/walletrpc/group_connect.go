package walletrpc

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "groupwallet.v1.GroupService"

// Procedure paths of the GroupService RPCs.
const (
	GroupServiceCreateGroupProcedure             = "/groupwallet.v1.GroupService/CreateGroup"
	GroupServiceJoinGroupProcedure               = "/groupwallet.v1.GroupService/JoinGroup"
	GroupServiceGetGroupProcedure                = "/groupwallet.v1.GroupService/GetGroup"
	GroupServiceListMemberGroupsProcedure        = "/groupwallet.v1.GroupService/ListMemberGroups"
	GroupServiceUpdateGroupProcedure             = "/groupwallet.v1.GroupService/UpdateGroup"
	GroupServiceDeleteGroupProcedure             = "/groupwallet.v1.GroupService/DeleteGroup"
	GroupServiceUpdateApprovalThresholdProcedure = "/groupwallet.v1.GroupService/UpdateApprovalThreshold"
	GroupServiceGetMemberStatementsProcedure     = "/groupwallet.v1.GroupService/GetMemberStatements"
)

// GroupServiceHandler is implemented by servers of GroupService.
// It manages wallets and their membership.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	JoinGroup(context.Context, *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListMemberGroups(context.Context, *connect.Request[ListMemberGroupsRequest]) (*connect.Response[ListMemberGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	UpdateApprovalThreshold(context.Context, *connect.Request[UpdateApprovalThresholdRequest]) (*connect.Response[UpdateApprovalThresholdResponse], error)
	GetMemberStatements(context.Context, *connect.Request[GetMemberStatementsRequest]) (*connect.Response[GetMemberStatementsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	createGroupHandler := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	joinGroupHandler := connect.NewUnaryHandler(GroupServiceJoinGroupProcedure, svc.JoinGroup, opts...)
	getGroupHandler := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...)
	listMemberGroupsHandler := connect.NewUnaryHandler(GroupServiceListMemberGroupsProcedure, svc.ListMemberGroups, opts...)
	updateGroupHandler := connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts...)
	deleteGroupHandler := connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...)
	updateApprovalThresholdHandler := connect.NewUnaryHandler(GroupServiceUpdateApprovalThresholdProcedure, svc.UpdateApprovalThreshold, opts...)
	getMemberStatementsHandler := connect.NewUnaryHandler(GroupServiceGetMemberStatementsProcedure, svc.GetMemberStatements, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case GroupServiceJoinGroupProcedure:
			joinGroupHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			getGroupHandler.ServeHTTP(w, r)
		case GroupServiceListMemberGroupsProcedure:
			listMemberGroupsHandler.ServeHTTP(w, r)
		case GroupServiceUpdateGroupProcedure:
			updateGroupHandler.ServeHTTP(w, r)
		case GroupServiceDeleteGroupProcedure:
			deleteGroupHandler.ServeHTTP(w, r)
		case GroupServiceUpdateApprovalThresholdProcedure:
			updateApprovalThresholdHandler.ServeHTTP(w, r)
		case GroupServiceGetMemberStatementsProcedure:
			getMemberStatementsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) JoinGroup(context.Context, *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.GroupService.JoinGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListMemberGroups(context.Context, *connect.Request[ListMemberGroupsRequest]) (*connect.Response[ListMemberGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.GroupService.ListMemberGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) UpdateGroup(context.Context, *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.GroupService.UpdateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.GroupService.DeleteGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) UpdateApprovalThreshold(context.Context, *connect.Request[UpdateApprovalThresholdRequest]) (*connect.Response[UpdateApprovalThresholdResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.GroupService.UpdateApprovalThreshold is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetMemberStatements(context.Context, *connect.Request[GetMemberStatementsRequest]) (*connect.Response[GetMemberStatementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.GroupService.GetMemberStatements is not implemented"))
}

// GroupServiceClient is a client for GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	JoinGroup(context.Context, *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListMemberGroups(context.Context, *connect.Request[ListMemberGroupsRequest]) (*connect.Response[ListMemberGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	UpdateApprovalThreshold(context.Context, *connect.Request[UpdateApprovalThresholdRequest]) (*connect.Response[UpdateApprovalThresholdResponse], error)
	GetMemberStatements(context.Context, *connect.Request[GetMemberStatementsRequest]) (*connect.Response[GetMemberStatementsResponse], error)
}

// NewGroupServiceClient constructs a client for GroupService. baseURL is the server
// root, e.g. http://localhost:8080.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &groupServiceClient{
		createGroup:             connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		joinGroup:               connect.NewClient[JoinGroupRequest, JoinGroupResponse](httpClient, baseURL+GroupServiceJoinGroupProcedure, opts...),
		getGroup:                connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listMemberGroups:        connect.NewClient[ListMemberGroupsRequest, ListMemberGroupsResponse](httpClient, baseURL+GroupServiceListMemberGroupsProcedure, opts...),
		updateGroup:             connect.NewClient[UpdateGroupRequest, UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		deleteGroup:             connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		updateApprovalThreshold: connect.NewClient[UpdateApprovalThresholdRequest, UpdateApprovalThresholdResponse](httpClient, baseURL+GroupServiceUpdateApprovalThresholdProcedure, opts...),
		getMemberStatements:     connect.NewClient[GetMemberStatementsRequest, GetMemberStatementsResponse](httpClient, baseURL+GroupServiceGetMemberStatementsProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup             *connect.Client[CreateGroupRequest, CreateGroupResponse]
	joinGroup               *connect.Client[JoinGroupRequest, JoinGroupResponse]
	getGroup                *connect.Client[GetGroupRequest, GetGroupResponse]
	listMemberGroups        *connect.Client[ListMemberGroupsRequest, ListMemberGroupsResponse]
	updateGroup             *connect.Client[UpdateGroupRequest, UpdateGroupResponse]
	deleteGroup             *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	updateApprovalThreshold *connect.Client[UpdateApprovalThresholdRequest, UpdateApprovalThresholdResponse]
	getMemberStatements     *connect.Client[GetMemberStatementsRequest, GetMemberStatementsResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListMemberGroups(ctx context.Context, req *connect.Request[ListMemberGroupsRequest]) (*connect.Response[ListMemberGroupsResponse], error) {
	return c.listMemberGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateApprovalThreshold(ctx context.Context, req *connect.Request[UpdateApprovalThresholdRequest]) (*connect.Response[UpdateApprovalThresholdResponse], error) {
	return c.updateApprovalThreshold.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetMemberStatements(ctx context.Context, req *connect.Request[GetMemberStatementsRequest]) (*connect.Response[GetMemberStatementsResponse], error) {
	return c.getMemberStatements.CallUnary(ctx, req)
}
