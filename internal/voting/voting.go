// Package voting applies approve/reject votes to pending transactions and
// decides when a transaction settles.
package voting

import (
	"slices"
	"time"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/models"
)

// Kind is the stance a member takes on a transaction.
type Kind string

const (
	Approve Kind = "approve"
	Reject  Kind = "reject"
)

// Status is a snapshot of the tally presented to members.
type Status struct {
	Approvals    int
	Rejections   int
	TotalMembers int
	Required     int
	IsApproved   bool
	IsRejected   bool
}

// Snapshot reports the current tally of t within g.
func Snapshot(t *models.Transaction, g *models.Group) Status {
	return Status{
		Approvals:    len(t.Approvals),
		Rejections:   len(t.Rejections),
		TotalMembers: len(g.Members),
		Required:     g.ApprovalThreshold,
		IsApproved:   t.Status == models.StatusApproved,
		IsRejected:   t.Status == models.StatusRejected,
	}
}

// Engine records votes and applies the settlement policy.
type Engine struct {
	policy Policy
	now    func() time.Time
}

// NewEngine creates an engine using policy. A nil policy selects QuorumPolicy.
func NewEngine(policy Policy) *Engine {
	if policy == nil {
		policy = QuorumPolicy{}
	}
	return &Engine{policy: policy, now: time.Now}
}

// WithClock returns a copy of e that stamps settlement times with now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	c := *e
	c.now = now
	return &c
}

// Policy returns the settlement policy in use.
func (e *Engine) Policy() Policy {
	return e.policy
}

// CastVote records memberID's vote on t and recomputes its status.
//
// Voting the opposite kind moves the member between sets; repeating the same
// kind fails with DuplicateVote and leaves t untouched. reason is kept only
// when a rejection settles the transaction.
func (e *Engine) CastVote(t *models.Transaction, g *models.Group, memberID string, kind Kind, reason string) (Status, error) {
	if kind != Approve && kind != Reject {
		return Status{}, apperr.Validation("invalid vote %q", kind)
	}
	if !t.IsPending() {
		return Status{}, apperr.InvalidState("transaction is already %s", t.Status)
	}
	if !g.HasMember(memberID) {
		return Status{}, apperr.Forbidden("only group members can vote")
	}

	switch kind {
	case Approve:
		if t.HasApproved(memberID) {
			return Status{}, apperr.DuplicateVote("you have already approved this transaction")
		}
		t.Rejections = remove(t.Rejections, memberID)
		t.Approvals = append(t.Approvals, memberID)
	case Reject:
		if t.HasRejected(memberID) {
			return Status{}, apperr.DuplicateVote("you have already rejected this transaction")
		}
		t.Approvals = remove(t.Approvals, memberID)
		t.Rejections = append(t.Rejections, memberID)
	}

	e.settle(t, g, kind, reason)
	return Snapshot(t, g), nil
}

func (e *Engine) settle(t *models.Transaction, g *models.Group, kind Kind, reason string) {
	switch e.policy.Decide(t, g) {
	case models.StatusApproved:
		now := e.now()
		t.Status = models.StatusApproved
		t.ApprovedAt = &now
	case models.StatusRejected:
		now := e.now()
		t.Status = models.StatusRejected
		t.RejectedAt = &now
		if kind == Reject {
			t.RejectionReason = reason
		}
	}
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}

// ParseKind accepts "approve" or "reject".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Approve, Reject:
		return k, nil
	}
	return "", apperr.Validation("unknown vote kind %q", s)
}
