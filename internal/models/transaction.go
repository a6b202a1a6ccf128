package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupwallet/internal/apperr"
)

// TransactionType is the direction of a money movement.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// ParseTransactionType accepts "deposit" or "withdrawal" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case Deposit, Withdrawal:
		return t, nil
	}
	return "", apperr.Validation("invalid transaction type %q", s)
}

// TransactionStatus is the state of a transaction.
//
//	pending -> approved -> paid
//	pending -> rejected
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusRejected TransactionStatus = "rejected"
	StatusPaid     TransactionStatus = "paid"
)

// Transaction is a proposed deposit or withdrawal on a group wallet.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// GroupID is the owning group.
	GroupID string

	Type TransactionType

	// Amount is always positive.
	Amount decimal.Decimal

	Description string

	// CreatedBy is the member ID of the proposer. Only the proposer
	// may complete the transaction.
	CreatedBy string
	CreatedAt time.Time

	Status TransactionStatus

	// Approvals and Rejections hold member IDs in the order votes were
	// cast. They never share an ID.
	Approvals  []string
	Rejections []string

	ApprovedAt *time.Time
	RejectedAt *time.Time
	PaidAt     *time.Time

	// RejectionReason is the reason given by the vote that rejected the
	// transaction, if any.
	RejectionReason string

	// PaymentRef is the provider confirmation token recorded on completion.
	PaymentRef string

	// PayoutDestination is where a withdrawal was paid out (e.g. a UPI handle).
	PayoutDestination string
}

// Money bounds. Amounts carry at most AmountScale decimal places and stay
// below MaxAmount.
const AmountScale = 2

var MaxAmount = decimal.New(1, 12)

// ValidateAmount rejects non-positive amounts, amounts finer than
// AmountScale and amounts of MaxAmount or more. It only inspects the
// exponent before comparing, so oversized values never get expanded.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Validation("amount must be greater than zero")
	}
	if amount.Exponent() < -AmountScale {
		return apperr.Validation("amount must have at most %d decimal places", AmountScale)
	}
	if amount.Exponent() > MaxAmount.Exponent() || amount.GreaterThanOrEqual(MaxAmount) {
		return apperr.Validation("amount must be less than %s", MaxAmount)
	}
	return nil
}

// NewTransaction builds a pending transaction with empty vote sets.
func NewTransaction(groupID string, typ TransactionType, amount decimal.Decimal, description, createdBy string, now time.Time) (*Transaction, error) {
	if typ != Deposit && typ != Withdrawal {
		return nil, apperr.Validation("invalid transaction type %q", typ)
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if createdBy == "" {
		return nil, apperr.Validation("creator is required")
	}
	return &Transaction{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		Type:        typ,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		Status:      StatusPending,
		Approvals:   []string{},
		Rejections:  []string{},
	}, nil
}

// HasApproved reports whether memberID is in the approval set.
func (t *Transaction) HasApproved(memberID string) bool {
	return slices.Contains(t.Approvals, memberID)
}

// HasRejected reports whether memberID is in the rejection set.
func (t *Transaction) HasRejected(memberID string) bool {
	return slices.Contains(t.Rejections, memberID)
}

// IsPending reports whether votes may still be cast.
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// Clone returns a deep copy of t.
func (t *Transaction) Clone() *Transaction {
	c := *t
	c.Approvals = append([]string{}, t.Approvals...)
	c.Rejections = append([]string{}, t.Rejections...)
	c.ApprovedAt = cloneTime(t.ApprovedAt)
	c.RejectedAt = cloneTime(t.RejectedAt)
	c.PaidAt = cloneTime(t.PaidAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
