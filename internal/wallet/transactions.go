package wallet

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupwallet/internal/lifecycle"
	"github.com/mmynk/groupwallet/internal/models"
	"github.com/mmynk/groupwallet/internal/voting"
)

// CreateTransaction proposes a deposit or withdrawal in the group.
func (m *Manager) CreateTransaction(ctx context.Context, groupID, requesterID string, typ models.TransactionType, amount decimal.Decimal, description string) (*models.Transaction, voting.Status, error) {
	var (
		t      *models.Transaction
		status voting.Status
	)
	_, err := m.mutate(ctx, groupID, func(g *models.Group) error {
		var err error
		t, err = m.lifecycle.CreateTransaction(g, typ, amount, description, requesterID)
		if err != nil {
			return err
		}
		status = voting.Snapshot(t, g)
		return nil
	})
	if err != nil {
		return nil, voting.Status{}, err
	}

	m.metrics.TransactionCreated(string(t.Type))
	slog.Info("Transaction created", "group_id", groupID, "transaction_id", t.ID, "type", t.Type, "amount", t.Amount.String())
	return t, status, nil
}

// Vote casts the requester's approve or reject vote. reason is only used for
// rejections.
func (m *Manager) Vote(ctx context.Context, groupID, transactionID, requesterID string, kind voting.Kind, reason string) (*models.Transaction, voting.Status, error) {
	var (
		t      *models.Transaction
		status voting.Status
		before models.TransactionStatus
	)
	_, err := m.mutate(ctx, groupID, func(g *models.Group) error {
		var err error
		if t, err = g.Transaction(transactionID); err != nil {
			return err
		}
		before = t.Status
		status, err = m.engine.CastVote(t, g, requesterID, kind, reason)
		return err
	})
	if err != nil {
		return nil, voting.Status{}, err
	}

	m.metrics.VoteCast(string(kind))
	if t.Status != before {
		m.metrics.Transition(string(t.Status))
		slog.Info("Transaction settled", "group_id", groupID, "transaction_id", t.ID, "status", t.Status)
	}
	return t, status, nil
}

// ApprovalStatus returns the transaction and its current tally.
func (m *Manager) ApprovalStatus(ctx context.Context, groupID, transactionID, requesterID string) (*models.Transaction, voting.Status, error) {
	g, err := m.load(ctx, groupID, requesterID)
	if err != nil {
		return nil, voting.Status{}, err
	}
	t, err := g.Transaction(transactionID)
	if err != nil {
		return nil, voting.Status{}, err
	}
	return t, voting.Snapshot(t, g), nil
}

// CompletePayment marks an approved deposit as paid into the wallet. It
// returns the group as saved.
func (m *Manager) CompletePayment(ctx context.Context, groupID, transactionID, requesterID, paymentRef string) (*models.Transaction, *models.Group, error) {
	var t *models.Transaction
	g, err := m.mutate(ctx, groupID, func(g *models.Group) error {
		var err error
		if t, err = g.Transaction(transactionID); err != nil {
			return err
		}
		return m.lifecycle.CompletePayment(t, requesterID, paymentRef)
	})
	if err != nil {
		return nil, nil, err
	}

	m.metrics.Transition(string(t.Status))
	slog.Info("Payment completed", "group_id", groupID, "transaction_id", t.ID, "amount", t.Amount.String())
	return t, g, nil
}

// CompleteWithdrawal marks an approved withdrawal as paid out to dest. It
// returns the group as saved.
func (m *Manager) CompleteWithdrawal(ctx context.Context, groupID, transactionID, requesterID, dest, paymentRef string) (*models.Transaction, *models.Group, error) {
	var t *models.Transaction
	g, err := m.mutate(ctx, groupID, func(g *models.Group) error {
		var err error
		if t, err = g.Transaction(transactionID); err != nil {
			return err
		}
		return m.lifecycle.CompleteWithdrawal(g, t, requesterID, dest, paymentRef)
	})
	if err != nil {
		return nil, nil, err
	}

	m.metrics.Transition(string(t.Status))
	slog.Info("Withdrawal completed", "group_id", groupID, "transaction_id", t.ID, "amount", t.Amount.String())
	return t, g, nil
}

// PaymentDetails describes a transaction for the member about to settle it.
type PaymentDetails struct {
	GroupID     string
	GroupName   string
	Transaction *models.Transaction

	// CanComplete is true when the requester may complete the transaction
	// now, including the balance check for withdrawals.
	CanComplete bool
}

// PaymentDetails returns the transaction with completion information.
func (m *Manager) PaymentDetails(ctx context.Context, groupID, transactionID, requesterID string) (PaymentDetails, error) {
	g, err := m.load(ctx, groupID, requesterID)
	if err != nil {
		return PaymentDetails{}, err
	}
	t, err := g.Transaction(transactionID)
	if err != nil {
		return PaymentDetails{}, err
	}
	return PaymentDetails{
		GroupID:     g.ID,
		GroupName:   g.Name,
		Transaction: t,
		CanComplete: lifecycle.CanComplete(g, t, requesterID),
	}, nil
}

// PendingPayments lists approved transactions created by the caller that
// still need a payment or payout, across all of the caller's groups.
func (m *Manager) PendingPayments(ctx context.Context, caller Caller) ([]PaymentDetails, error) {
	groups, err := m.ListMemberGroups(ctx, caller.Phone)
	if err != nil {
		return nil, err
	}

	var pending []PaymentDetails
	for _, g := range groups {
		for _, t := range g.Transactions {
			if t.Status != models.StatusApproved || t.CreatedBy != caller.MemberID {
				continue
			}
			pending = append(pending, PaymentDetails{
				GroupID:     g.ID,
				GroupName:   g.Name,
				Transaction: t,
				CanComplete: lifecycle.CanComplete(g, t, caller.MemberID),
			})
		}
	}
	return pending, nil
}
