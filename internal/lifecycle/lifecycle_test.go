package lifecycle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/calculator"
	"github.com/mmynk/groupwallet/internal/models"
	"github.com/mmynk/groupwallet/internal/voting"
)

var fixedNow = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func soloGroup(t *testing.T) *models.Group {
	t.Helper()
	owner, err := models.NewMember("owner", "Owner", "+911")
	require.NoError(t, err)
	g, err := models.NewGroup("Solo", "SOLO", 1, owner, nil, fixedNow)
	require.NoError(t, err)
	return g
}

func approve(t *testing.T, g *models.Group, tx *models.Transaction) {
	t.Helper()
	_, err := voting.NewEngine(nil).CastVote(tx, g, g.CreatedBy, voting.Approve, "")
	require.NoError(t, err)
}

func TestRoundTrip(t *testing.T) {
	g := soloGroup(t)
	c := New().WithClock(clock)

	tx, err := c.CreateTransaction(g, models.Deposit, decimal.NewFromInt(200), "seed money", "owner")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, tx.Status)
	assert.True(t, calculator.ComputeBalance(g).IsZero())

	approve(t, g, tx)
	assert.Equal(t, models.StatusApproved, tx.Status)
	assert.True(t, calculator.ComputeBalance(g).IsZero(), "approval alone must not move money")

	require.NoError(t, c.CompletePayment(tx, "owner", "pay_123"))
	assert.Equal(t, models.StatusPaid, tx.Status)
	assert.Equal(t, "pay_123", tx.PaymentRef)
	require.NotNil(t, tx.PaidAt)
	assert.Equal(t, fixedNow, *tx.PaidAt)
	assert.True(t, calculator.ComputeBalance(g).Equal(decimal.NewFromInt(200)))
}

func TestCreateTransaction_Validation(t *testing.T) {
	g := soloGroup(t)
	c := New()

	_, err := c.CreateTransaction(g, models.Deposit, decimal.Zero, "", "owner")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = c.CreateTransaction(g, models.TransactionType("gift"), decimal.NewFromInt(1), "", "owner")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = c.CreateTransaction(g, models.Deposit, decimal.NewFromInt(1), "", "stranger")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	assert.Empty(t, g.Transactions, "rejected input must never be stored")

	// Withdrawals larger than the balance may be proposed.
	_, err = c.CreateTransaction(g, models.Withdrawal, decimal.NewFromInt(1000), "", "owner")
	assert.NoError(t, err)
}

func TestCompletePayment_Guards(t *testing.T) {
	g := soloGroup(t)
	c := New()

	deposit, err := c.CreateTransaction(g, models.Deposit, decimal.NewFromInt(50), "", "owner")
	require.NoError(t, err)

	err = c.CompletePayment(deposit, "owner", "ref")
	assert.True(t, apperr.Is(err, apperr.KindInvalidState), "pending deposit: %v", err)

	approve(t, g, deposit)

	err = c.CompletePayment(deposit, "someone-else", "ref")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	err = c.CompletePayment(deposit, "owner", "  ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	withdrawal, err := c.CreateTransaction(g, models.Withdrawal, decimal.NewFromInt(10), "", "owner")
	require.NoError(t, err)
	approve(t, g, withdrawal)
	err = c.CompletePayment(withdrawal, "owner", "ref")
	assert.True(t, apperr.Is(err, apperr.KindInvalidState), "withdrawal via payment: %v", err)

	require.NoError(t, c.CompletePayment(deposit, "owner", "ref"))
	err = c.CompletePayment(deposit, "owner", "ref")
	assert.True(t, apperr.Is(err, apperr.KindInvalidState), "already paid: %v", err)
}

func TestCompleteWithdrawal(t *testing.T) {
	g := soloGroup(t)
	c := New().WithClock(clock)

	deposit, err := c.CreateTransaction(g, models.Deposit, decimal.NewFromInt(100), "", "owner")
	require.NoError(t, err)
	approve(t, g, deposit)
	require.NoError(t, c.CompletePayment(deposit, "owner", "dep_1"))

	big, err := c.CreateTransaction(g, models.Withdrawal, decimal.NewFromInt(150), "", "owner")
	require.NoError(t, err)
	approve(t, g, big)
	err = c.CompleteWithdrawal(g, big, "owner", "owner@oksbi", "wd_1")
	assert.True(t, apperr.Is(err, apperr.KindInvalidState), "insufficient balance: %v", err)
	assert.Equal(t, models.StatusApproved, big.Status)

	small, err := c.CreateTransaction(g, models.Withdrawal, decimal.NewFromInt(60), "", "owner")
	require.NoError(t, err)
	approve(t, g, small)

	err = c.CompleteWithdrawal(g, small, "owner", "not-a-handle", "wd_2")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, c.CompleteWithdrawal(g, small, "owner", "owner@oksbi", "wd_2"))
	assert.Equal(t, models.StatusPaid, small.Status)
	assert.Equal(t, "owner@oksbi", small.PayoutDestination)
	assert.True(t, calculator.ComputeBalance(g).Equal(decimal.NewFromInt(40)))
}

func TestValidatePayoutDestination(t *testing.T) {
	for _, ok := range []string{"asha@oksbi", "a.b-c_d@ybl"} {
		assert.NoError(t, ValidatePayoutDestination(ok), ok)
	}
	for _, bad := range []string{"", "a@b", "asha", "asha@ok1", "@oksbi"} {
		assert.Error(t, ValidatePayoutDestination(bad), bad)
	}
}

func TestCanComplete(t *testing.T) {
	g := soloGroup(t)
	c := New()
	tx, err := c.CreateTransaction(g, models.Deposit, decimal.NewFromInt(5), "", "owner")
	require.NoError(t, err)
	assert.False(t, CanComplete(g, tx, "owner"))
	approve(t, g, tx)
	assert.True(t, CanComplete(g, tx, "owner"))
	assert.False(t, CanComplete(g, tx, "other"))
}

func TestCanCompleteWithdrawalNeedsBalance(t *testing.T) {
	g := soloGroup(t)
	c := New()
	wd, err := c.CreateTransaction(g, models.Withdrawal, decimal.NewFromInt(30), "", "owner")
	require.NoError(t, err)
	approve(t, g, wd)
	assert.False(t, CanComplete(g, wd, "owner"), "empty wallet")

	dep, err := c.CreateTransaction(g, models.Deposit, decimal.NewFromInt(30), "", "owner")
	require.NoError(t, err)
	approve(t, g, dep)
	require.NoError(t, c.CompletePayment(dep, "owner", "pay-1"))
	assert.True(t, CanComplete(g, wd, "owner"))
}
