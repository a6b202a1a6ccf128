package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupwallet/internal/apperr"
)

// Group is a shared wallet: a set of members pooling money through
// transactions that need approval before they take effect.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Goa Trip").
	Name string

	// Code is the join token shared with prospective members.
	// Unique across all groups.
	Code string

	// ApprovalThreshold is the number of approvals a transaction needs.
	// Always within [1, len(Members)].
	ApprovalThreshold int

	// Members in join order. The creator is always present.
	Members []Member

	// Transactions in creation order.
	Transactions []*Transaction

	// CreatedBy is the member ID of the admin.
	CreatedBy string

	CreatedAt time.Time
}

// DefaultApprovalThreshold is used when a group is created without an
// explicit threshold. It is capped by the number of members.
const DefaultApprovalThreshold = 2

// NewGroup builds a group with the creator as admin and first member.
// initial may repeat the creator; duplicate phones are rejected.
// A zero threshold selects DefaultApprovalThreshold.
func NewGroup(name, code string, threshold int, creator Member, initial []Member, now time.Time) (*Group, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return nil, apperr.Validation("group name is required")
	}
	if code == "" {
		return nil, apperr.Validation("group code is required")
	}
	if err := creator.validate(); err != nil {
		return nil, err
	}

	g := &Group{
		ID:           uuid.NewString(),
		Name:         name,
		Code:         code,
		CreatedBy:    creator.ID,
		CreatedAt:    now,
		Members:      make([]Member, 0, len(initial)+1),
		Transactions: []*Transaction{},
	}

	creator.IsAdmin = true
	if creator.JoinedAt.IsZero() {
		creator.JoinedAt = now
	}
	g.Members = append(g.Members, creator)

	for _, m := range initial {
		if m.ID == creator.ID {
			continue
		}
		m.IsAdmin = false
		if m.JoinedAt.IsZero() {
			m.JoinedAt = now
		}
		if err := g.AddMember(m); err != nil {
			return nil, apperr.Validation("invalid initial members: %s", apperr.MessageOf(err))
		}
	}

	if threshold == 0 {
		threshold = min(DefaultApprovalThreshold, len(g.Members))
	}
	if err := g.checkThreshold(threshold); err != nil {
		return nil, err
	}
	g.ApprovalThreshold = threshold

	return g, nil
}

// AddMember appends m, enforcing unique IDs and phones.
func (g *Group) AddMember(m Member) error {
	if err := m.validate(); err != nil {
		return err
	}
	for _, existing := range g.Members {
		if existing.Phone == m.Phone {
			return apperr.Conflict("phone %s is already a member of this group", m.Phone)
		}
		if existing.ID == m.ID {
			return apperr.Conflict("member %s is already in this group", m.ID)
		}
	}
	g.Members = append(g.Members, m)
	return nil
}

// SetApprovalThreshold changes the threshold if it is within [1, len(Members)].
func (g *Group) SetApprovalThreshold(threshold int) error {
	if err := g.checkThreshold(threshold); err != nil {
		return err
	}
	g.ApprovalThreshold = threshold
	return nil
}

func (g *Group) checkThreshold(threshold int) error {
	if threshold < 1 || threshold > len(g.Members) {
		return apperr.Validation("threshold must be between 1 and %d", len(g.Members))
	}
	return nil
}

// IsAdmin reports whether memberID administers the group.
func (g *Group) IsAdmin(memberID string) bool {
	return memberID != "" && memberID == g.CreatedBy
}

// Member returns the member with the given ID.
func (g *Group) Member(memberID string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == memberID {
			return m, true
		}
	}
	return Member{}, false
}

// HasMember reports whether memberID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	_, ok := g.Member(memberID)
	return ok
}

// HasPhone reports whether a member with the given phone belongs to the group.
func (g *Group) HasPhone(phone string) bool {
	for _, m := range g.Members {
		if m.Phone == phone {
			return true
		}
	}
	return false
}

// Transaction returns the transaction with the given ID.
func (g *Group) Transaction(transactionID string) (*Transaction, error) {
	for _, t := range g.Transactions {
		if t.ID == transactionID {
			return t, nil
		}
	}
	return nil, apperr.NotFound("transaction %s not found", transactionID)
}

// Clone returns a deep copy of the aggregate.
func (g *Group) Clone() *Group {
	c := *g
	c.Members = append([]Member(nil), g.Members...)
	c.Transactions = make([]*Transaction, len(g.Transactions))
	for i, t := range g.Transactions {
		c.Transactions[i] = t.Clone()
	}
	return &c
}
