package wallet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/groupwallet/internal/admin"
	"github.com/mmynk/groupwallet/internal/auth"
	"github.com/mmynk/groupwallet/internal/calculator"
	"github.com/mmynk/groupwallet/internal/models"
)

// Caller is the authenticated member making a request.
type Caller struct {
	MemberID string
	Phone    string
	Name     string
}

// MemberInput names a person to add to a group by phone.
type MemberInput struct {
	Name  string
	Phone string
}

// CreateGroupInput carries everything needed to open a new wallet.
type CreateGroupInput struct {
	Name string
	Code string

	// ApprovalThreshold of zero selects the default, capped by member count.
	ApprovalThreshold int

	Members []MemberInput
}

// CreateGroup opens a group with the caller as admin and first member.
// Initial members get stable IDs derived from their phones.
func (m *Manager) CreateGroup(ctx context.Context, caller Caller, in CreateGroupInput) (*models.Group, error) {
	creator, err := newMember(caller.MemberID, caller.Name, caller.Phone)
	if err != nil {
		return nil, err
	}

	initial := make([]models.Member, 0, len(in.Members))
	for _, mi := range in.Members {
		phone, err := auth.NormalizePhone(mi.Phone)
		if err != nil {
			return nil, err
		}
		member, err := newMember(auth.MemberID(phone), mi.Name, phone)
		if err != nil {
			return nil, err
		}
		initial = append(initial, member)
	}

	g, err := models.NewGroup(in.Name, in.Code, in.ApprovalThreshold, creator, initial, m.now())
	if err != nil {
		return nil, err
	}
	if err := m.store.CreateGroup(ctx, g); err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", g.ID, "members", len(g.Members), "threshold", g.ApprovalThreshold)
	return g, nil
}

// JoinGroup adds the caller to the group with the given code.
func (m *Manager) JoinGroup(ctx context.Context, caller Caller, code string) (*models.Group, error) {
	found, err := m.store.GetGroupByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}

	member, err := newMember(caller.MemberID, caller.Name, caller.Phone)
	if err != nil {
		return nil, err
	}
	member.JoinedAt = m.now()

	return m.mutate(ctx, found.ID, func(g *models.Group) error {
		return admin.Join(g, member)
	})
}

// GetGroup returns the group if the requester is a member.
func (m *Manager) GetGroup(ctx context.Context, groupID, requesterID string) (*models.Group, error) {
	return m.load(ctx, groupID, requesterID)
}

// ListMemberGroups returns every group the phone belongs to.
func (m *Manager) ListMemberGroups(ctx context.Context, phone string) ([]*models.Group, error) {
	phone, err := auth.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return m.store.ListGroupsByPhone(ctx, phone)
}

// UpdateGroup applies a partial update. Only the name can change here;
// a nil name leaves the group untouched.
func (m *Manager) UpdateGroup(ctx context.Context, groupID, requesterID string, name *string) (*models.Group, error) {
	return m.mutate(ctx, groupID, func(g *models.Group) error {
		if name == nil {
			return admin.RequireAdmin(g, requesterID, "update the group")
		}
		return admin.Rename(g, *name, requesterID)
	})
}

// UpdateApprovalThreshold changes how many approvals settle a transaction.
// Pending transactions are not re-evaluated until their next vote.
func (m *Manager) UpdateApprovalThreshold(ctx context.Context, groupID, requesterID string, threshold int) (*models.Group, error) {
	return m.mutate(ctx, groupID, func(g *models.Group) error {
		return admin.UpdateApprovalThreshold(g, threshold, requesterID)
	})
}

// DeleteGroup removes an empty wallet. Only the admin may delete, and only
// when the settled balance is zero.
func (m *Manager) DeleteGroup(ctx context.Context, groupID, requesterID string) error {
	unlock, err := m.lock(ctx, groupID)
	if err != nil {
		return err
	}
	defer unlock()

	g, err := m.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if err := admin.CheckDeletable(g, requesterID); err != nil {
		return err
	}
	if err := m.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}

	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// MemberStatements returns per-member totals for the group.
func (m *Manager) MemberStatements(ctx context.Context, groupID, requesterID string) ([]calculator.MemberStatement, error) {
	g, err := m.load(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}
	return calculator.MemberStatements(g), nil
}

func newMember(id, name, phone string) (models.Member, error) {
	if strings.TrimSpace(name) == "" {
		name = phone
	}
	return models.NewMember(id, name, phone)
}
