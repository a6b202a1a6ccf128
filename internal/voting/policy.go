package voting

import (
	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/models"
)

// Policy decides the status of a pending transaction from its vote sets.
// Decide returns StatusPending when the transaction stays open.
type Policy interface {
	Name() string
	Decide(t *models.Transaction, g *models.Group) models.TransactionStatus
}

const (
	PolicyQuorum          = "quorum"
	PolicySingleRejection = "single-rejection"
)

// QuorumPolicy approves once the approval threshold is met and rejects once
// every member has voted without reaching it. Approval is checked first.
type QuorumPolicy struct{}

func (QuorumPolicy) Name() string { return PolicyQuorum }

func (QuorumPolicy) Decide(t *models.Transaction, g *models.Group) models.TransactionStatus {
	approvals := len(t.Approvals)
	rejections := len(t.Rejections)
	switch {
	case approvals >= g.ApprovalThreshold:
		return models.StatusApproved
	case approvals+rejections >= len(g.Members):
		return models.StatusRejected
	default:
		return models.StatusPending
	}
}

// SingleRejectionPolicy is the legacy behavior: any rejection rejects the
// transaction immediately, otherwise approvals tally against the threshold.
// Only used when configured explicitly.
type SingleRejectionPolicy struct{}

func (SingleRejectionPolicy) Name() string { return PolicySingleRejection }

func (SingleRejectionPolicy) Decide(t *models.Transaction, g *models.Group) models.TransactionStatus {
	switch {
	case len(t.Rejections) > 0:
		return models.StatusRejected
	case len(t.Approvals) >= g.ApprovalThreshold:
		return models.StatusApproved
	default:
		return models.StatusPending
	}
}

// PolicyByName returns the policy registered under name. An empty name
// selects the quorum policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", PolicyQuorum:
		return QuorumPolicy{}, nil
	case PolicySingleRejection:
		return SingleRejectionPolicy{}, nil
	}
	return nil, apperr.Validation("unknown voting policy %q", name)
}
