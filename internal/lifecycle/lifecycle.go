// Package lifecycle creates transactions and completes approved ones.
//
// Voting (pending -> approved/rejected) lives in package voting; this package
// owns the remaining edges: creation into pending and approved -> paid.
package lifecycle

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/calculator"
	"github.com/mmynk/groupwallet/internal/models"
)

var payoutPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)

// ValidatePayoutDestination checks a UPI-style handle such as "asha@oksbi".
func ValidatePayoutDestination(dest string) error {
	if !payoutPattern.MatchString(dest) {
		return apperr.Validation("invalid payout destination %q (expected handle@provider)", dest)
	}
	return nil
}

// Controller moves transactions through creation and completion.
type Controller struct {
	now func() time.Time
}

// New creates a controller stamping times with time.Now.
func New() *Controller {
	return &Controller{now: time.Now}
}

// WithClock returns a copy of c that uses now for timestamps.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	cp := *c
	cp.now = now
	return &cp
}

// CreateTransaction validates and appends a pending transaction to g.
// No balance check happens here, even for withdrawals.
func (c *Controller) CreateTransaction(g *models.Group, typ models.TransactionType, amount decimal.Decimal, description, creatorID string) (*models.Transaction, error) {
	if !g.HasMember(creatorID) {
		return nil, apperr.Forbidden("only group members can propose transactions")
	}
	t, err := models.NewTransaction(g.ID, typ, amount, description, creatorID, c.now())
	if err != nil {
		return nil, err
	}
	g.Transactions = append(g.Transactions, t)
	return t, nil
}

// CompletePayment records that the creator paid an approved deposit into
// the wallet. paymentRef is the payment provider's confirmation token.
func (c *Controller) CompletePayment(t *models.Transaction, requesterID, paymentRef string) error {
	if err := checkCompletable(t, models.Deposit, requesterID); err != nil {
		return err
	}
	paymentRef = strings.TrimSpace(paymentRef)
	if paymentRef == "" {
		return apperr.Validation("payment reference is required")
	}
	c.markPaid(t, paymentRef)
	return nil
}

// CompleteWithdrawal records that an approved withdrawal was paid out to
// dest. The wallet must hold at least the withdrawn amount.
func (c *Controller) CompleteWithdrawal(g *models.Group, t *models.Transaction, requesterID, dest, paymentRef string) error {
	if err := checkCompletable(t, models.Withdrawal, requesterID); err != nil {
		return err
	}
	dest = strings.TrimSpace(dest)
	if err := ValidatePayoutDestination(dest); err != nil {
		return err
	}
	if err := checkSufficient(g, t); err != nil {
		return err
	}
	t.PayoutDestination = dest
	c.markPaid(t, strings.TrimSpace(paymentRef))
	return nil
}

// CanComplete reports whether requesterID may complete t in g right now.
// Withdrawals also need the wallet to cover the amount.
func CanComplete(g *models.Group, t *models.Transaction, requesterID string) bool {
	if checkCompletable(t, t.Type, requesterID) != nil {
		return false
	}
	if t.Type == models.Withdrawal {
		return checkSufficient(g, t) == nil
	}
	return true
}

func checkCompletable(t *models.Transaction, want models.TransactionType, requesterID string) error {
	if t.Type != want {
		return apperr.InvalidState("transaction is a %s, not a %s", t.Type, want)
	}
	if t.Status != models.StatusApproved {
		return apperr.InvalidState("transaction is %s, only approved transactions can be completed", t.Status)
	}
	if t.CreatedBy != requesterID {
		return apperr.Forbidden("only the member who created the transaction can complete it")
	}
	return nil
}

func checkSufficient(g *models.Group, t *models.Transaction) error {
	if balance := calculator.ComputeBalance(g); balance.LessThan(t.Amount) {
		return apperr.InvalidState("insufficient balance: wallet holds %s, withdrawal needs %s", balance, t.Amount)
	}
	return nil
}

func (c *Controller) markPaid(t *models.Transaction, paymentRef string) {
	now := c.now()
	t.Status = models.StatusPaid
	t.PaidAt = &now
	t.PaymentRef = paymentRef
}
