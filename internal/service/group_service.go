package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupwallet/internal/middleware"
	"github.com/mmynk/groupwallet/internal/wallet"
	pb "github.com/mmynk/groupwallet/pkg/walletrpc"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	pb.UnimplementedGroupServiceHandler
	wallet *wallet.Manager
}

// NewGroupService creates a new GroupService backed by the wallet manager.
func NewGroupService(manager *wallet.Manager) *GroupService {
	return &GroupService{wallet: manager}
}

// CreateGroup opens a new wallet with the caller as admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[pb.CreateGroupRequest]) (*connect.Response[pb.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
		"threshold", req.Msg.ApprovalThreshold,
	)

	caller, err := callerFrom(ctx, req.Msg.CreatorName)
	if err != nil {
		return nil, err
	}

	members := make([]wallet.MemberInput, 0, len(req.Msg.Members))
	for _, m := range req.Msg.Members {
		if m == nil {
			continue
		}
		members = append(members, wallet.MemberInput{Name: m.Name, Phone: m.Phone})
	}

	group, err := s.wallet.CreateGroup(ctx, caller, wallet.CreateGroupInput{
		Name:              req.Msg.Name,
		Code:              req.Msg.Code,
		ApprovalThreshold: req.Msg.ApprovalThreshold,
		Members:           members,
	})
	if err != nil {
		return nil, fail("CreateGroup", err, "member_id", caller.MemberID)
	}

	return connect.NewResponse(&pb.CreateGroupResponse{Group: toPBGroup(group)}), nil
}

// JoinGroup adds the caller to the group with the given code.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[pb.JoinGroupRequest]) (*connect.Response[pb.JoinGroupResponse], error) {
	slog.Info("JoinGroup request received", "code", req.Msg.Code)

	if err := requireField("code", req.Msg.Code); err != nil {
		return nil, err
	}
	caller, err := callerFrom(ctx, req.Msg.Name)
	if err != nil {
		return nil, err
	}

	group, err := s.wallet.JoinGroup(ctx, caller, req.Msg.Code)
	if err != nil {
		return nil, fail("JoinGroup", err, "code", req.Msg.Code, "member_id", caller.MemberID)
	}

	slog.Info("JoinGroup successful", "group_id", group.ID, "member_id", caller.MemberID)
	return connect.NewResponse(&pb.JoinGroupResponse{Group: toPBGroup(group)}), nil
}

// GetGroup retrieves a group the caller belongs to, with its summary.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[pb.GetGroupRequest]) (*connect.Response[pb.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.wallet.GetGroup(ctx, req.Msg.GroupID, middleware.GetMemberID(ctx))
	if err != nil {
		return nil, fail("GetGroup", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)
	return connect.NewResponse(&pb.GetGroupResponse{Group: toPBGroup(group)}), nil
}

// ListMemberGroups returns every group the caller's phone belongs to.
func (s *GroupService) ListMemberGroups(ctx context.Context, req *connect.Request[pb.ListMemberGroupsRequest]) (*connect.Response[pb.ListMemberGroupsResponse], error) {
	caller, err := callerFrom(ctx, "")
	if err != nil {
		return nil, err
	}
	slog.Info("ListMemberGroups request received", "member_id", caller.MemberID)

	groups, err := s.wallet.ListMemberGroups(ctx, caller.Phone)
	if err != nil {
		return nil, fail("ListMemberGroups", err, "member_id", caller.MemberID)
	}

	pbGroups := make([]*pb.Group, len(groups))
	for i, g := range groups {
		pbGroups[i] = toPBGroup(g)
	}

	slog.Info("ListMemberGroups successful", "count", len(groups))
	return connect.NewResponse(&pb.ListMemberGroupsResponse{Groups: pbGroups}), nil
}

// UpdateGroup applies a partial update to the group.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[pb.UpdateGroupRequest]) (*connect.Response[pb.UpdateGroupResponse], error) {
	slog.Info("UpdateGroup request received", "group_id", req.Msg.GroupID)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.wallet.UpdateGroup(ctx, req.Msg.GroupID, middleware.GetMemberID(ctx), req.Msg.Name)
	if err != nil {
		return nil, fail("UpdateGroup", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("Group updated", "group_id", group.ID)
	return connect.NewResponse(&pb.UpdateGroupResponse{Group: toPBGroup(group)}), nil
}

// DeleteGroup removes an empty group.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[pb.DeleteGroupRequest]) (*connect.Response[pb.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}

	if err := s.wallet.DeleteGroup(ctx, req.Msg.GroupID, middleware.GetMemberID(ctx)); err != nil {
		return nil, fail("DeleteGroup", err, "group_id", req.Msg.GroupID)
	}

	return connect.NewResponse(&pb.DeleteGroupResponse{}), nil
}

// UpdateApprovalThreshold changes the number of approvals a transaction needs.
func (s *GroupService) UpdateApprovalThreshold(ctx context.Context, req *connect.Request[pb.UpdateApprovalThresholdRequest]) (*connect.Response[pb.UpdateApprovalThresholdResponse], error) {
	slog.Info("UpdateApprovalThreshold request received",
		"group_id", req.Msg.GroupID,
		"threshold", req.Msg.ApprovalThreshold,
	)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}

	group, err := s.wallet.UpdateApprovalThreshold(ctx, req.Msg.GroupID, middleware.GetMemberID(ctx), req.Msg.ApprovalThreshold)
	if err != nil {
		return nil, fail("UpdateApprovalThreshold", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("Approval threshold updated", "group_id", group.ID, "threshold", group.ApprovalThreshold)
	return connect.NewResponse(&pb.UpdateApprovalThresholdResponse{Group: toPBGroup(group)}), nil
}

// GetMemberStatements returns per-member totals for the group.
func (s *GroupService) GetMemberStatements(ctx context.Context, req *connect.Request[pb.GetMemberStatementsRequest]) (*connect.Response[pb.GetMemberStatementsResponse], error) {
	slog.Info("GetMemberStatements request received", "group_id", req.Msg.GroupID)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}

	statements, err := s.wallet.MemberStatements(ctx, req.Msg.GroupID, middleware.GetMemberID(ctx))
	if err != nil {
		return nil, fail("GetMemberStatements", err, "group_id", req.Msg.GroupID)
	}

	pbStatements := make([]*pb.MemberStatement, len(statements))
	for i, st := range statements {
		pbStatements[i] = toPBStatement(st)
	}
	return connect.NewResponse(&pb.GetMemberStatementsResponse{Statements: pbStatements}), nil
}
