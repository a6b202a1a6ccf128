// Package storagetest holds behavior tests shared by every storage.Store
// implementation.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/models"
	"github.com/mmynk/groupwallet/internal/storage"
)

// Factory returns an empty store; cleanup is registered on t.
type Factory func(t *testing.T) storage.Store

// Run exercises the storage.Store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("CreateGroup and GetGroup round trip", func(t *testing.T) {
		s := newStore(t)
		g := sampleGroup(t, "ROUND")
		require.NoError(t, s.CreateGroup(ctx, g))

		got, err := s.GetGroup(ctx, g.ID)
		require.NoError(t, err)
		assertSameGroup(t, g, got)
	})

	t.Run("duplicate code is a conflict", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateGroup(ctx, sampleGroup(t, "DUP")))

		err := s.CreateGroup(ctx, sampleGroup(t, "DUP"))
		assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)
	})

	t.Run("missing group is not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetGroup(ctx, "nonexistent-id")
		assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)

		_, err = s.GetGroupByCode(ctx, "NOPE")
		assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)

		err = s.DeleteGroup(ctx, "nonexistent-id")
		assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)

		err = s.SaveGroup(ctx, sampleGroup(t, "GHOST"))
		assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)
	})

	t.Run("GetGroupByCode", func(t *testing.T) {
		s := newStore(t)
		g := sampleGroup(t, "JOINME")
		require.NoError(t, s.CreateGroup(ctx, g))

		got, err := s.GetGroupByCode(ctx, "JOINME")
		require.NoError(t, err)
		assert.Equal(t, g.ID, got.ID)
	})

	t.Run("SaveGroup persists members, transactions and votes", func(t *testing.T) {
		s := newStore(t)
		g := sampleGroup(t, "SAVE")
		require.NoError(t, s.CreateGroup(ctx, g))

		loaded, err := s.GetGroup(ctx, g.ID)
		require.NoError(t, err)

		carol, err := models.NewMember("carol", "Carol", "+913")
		require.NoError(t, err)
		carol.JoinedAt = at(5)
		require.NoError(t, loaded.AddMember(carol))
		require.NoError(t, loaded.SetApprovalThreshold(3))
		loaded.Name = "Renamed"

		tx := loaded.Transactions[0]
		tx.Rejections = append(tx.Rejections, "carol")
		paid, err := models.NewTransaction(loaded.ID, models.Withdrawal, decimal.RequireFromString("12.50"), "cab", "bob", at(6))
		require.NoError(t, err)
		paid.Approvals = []string{"alice", "bob"}
		paid.Status = models.StatusPaid
		approvedAt, paidAt := at(7), at(8)
		paid.ApprovedAt = &approvedAt
		paid.PaidAt = &paidAt
		paid.PaymentRef = "wd_1"
		paid.PayoutDestination = "bob@ybl"
		loaded.Transactions = append(loaded.Transactions, paid)

		require.NoError(t, s.SaveGroup(ctx, loaded))

		got, err := s.GetGroup(ctx, g.ID)
		require.NoError(t, err)
		assertSameGroup(t, loaded, got)
	})

	t.Run("returned groups are detached copies", func(t *testing.T) {
		s := newStore(t)
		g := sampleGroup(t, "DETACHED")
		require.NoError(t, s.CreateGroup(ctx, g))

		loaded, err := s.GetGroup(ctx, g.ID)
		require.NoError(t, err)
		loaded.Transactions[0].Approvals = append(loaded.Transactions[0].Approvals, "bob")

		again, err := s.GetGroup(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, again.Transactions[0].Approvals)
	})

	t.Run("DeleteGroup removes the aggregate and frees the code", func(t *testing.T) {
		s := newStore(t)
		g := sampleGroup(t, "GONE")
		require.NoError(t, s.CreateGroup(ctx, g))
		require.NoError(t, s.DeleteGroup(ctx, g.ID))

		_, err := s.GetGroup(ctx, g.ID)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))

		require.NoError(t, s.CreateGroup(ctx, sampleGroup(t, "GONE")))
	})

	t.Run("ListGroupsByPhone", func(t *testing.T) {
		s := newStore(t)
		first := sampleGroup(t, "FIRST")
		second := sampleGroup(t, "SECOND")
		second.CreatedAt = at(10)
		require.NoError(t, s.CreateGroup(ctx, second))
		require.NoError(t, s.CreateGroup(ctx, first))

		groups, err := s.ListGroupsByPhone(ctx, "+912")
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, first.ID, groups[0].ID)
		assert.Equal(t, second.ID, groups[1].ID)

		groups, err = s.ListGroupsByPhone(ctx, "+999")
		require.NoError(t, err)
		assert.Empty(t, groups)
	})
}

func at(minute int) time.Time {
	return time.Date(2025, 1, 1, 8, minute, 0, 0, time.UTC)
}

func sampleGroup(t *testing.T, code string) *models.Group {
	t.Helper()
	alice, err := models.NewMember("alice", "Alice", "+911")
	require.NoError(t, err)
	bob, err := models.NewMember("bob", "Bob", "+912")
	require.NoError(t, err)

	g, err := models.NewGroup("Flatmates", code, 2, alice, []models.Member{bob}, at(0))
	require.NoError(t, err)

	tx, err := models.NewTransaction(g.ID, models.Deposit, decimal.NewFromInt(200), "rent", "alice", at(1))
	require.NoError(t, err)
	tx.Approvals = append(tx.Approvals, "alice")
	g.Transactions = append(g.Transactions, tx)
	return g
}

func assertSameGroup(t *testing.T, want, got *models.Group) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Code, got.Code)
	assert.Equal(t, want.ApprovalThreshold, got.ApprovalThreshold)
	assert.Equal(t, want.CreatedBy, got.CreatedBy)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %v, got %v", want.CreatedAt, got.CreatedAt)

	require.Len(t, got.Members, len(want.Members))
	for i, m := range want.Members {
		g := got.Members[i]
		assert.Equal(t, m.ID, g.ID)
		assert.Equal(t, m.Name, g.Name)
		assert.Equal(t, m.Phone, g.Phone)
		assert.Equal(t, m.IsAdmin, g.IsAdmin)
		assert.True(t, m.JoinedAt.Equal(g.JoinedAt), "member %s joined_at", m.ID)
	}

	require.Len(t, got.Transactions, len(want.Transactions))
	for i, w := range want.Transactions {
		g := got.Transactions[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.GroupID, g.GroupID)
		assert.Equal(t, w.Type, g.Type)
		assert.True(t, w.Amount.Equal(g.Amount), "amount: want %s, got %s", w.Amount, g.Amount)
		assert.Equal(t, w.Description, g.Description)
		assert.Equal(t, w.CreatedBy, g.CreatedBy)
		assert.Equal(t, w.Status, g.Status)
		assert.Equal(t, w.Approvals, g.Approvals)
		assert.Equal(t, w.Rejections, g.Rejections)
		assertSameTime(t, w.ApprovedAt, g.ApprovedAt)
		assertSameTime(t, w.RejectedAt, g.RejectedAt)
		assertSameTime(t, w.PaidAt, g.PaidAt)
		assert.Equal(t, w.RejectionReason, g.RejectionReason)
		assert.Equal(t, w.PaymentRef, g.PaymentRef)
		assert.Equal(t, w.PayoutDestination, g.PayoutDestination)
	}
}

func assertSameTime(t *testing.T, want, got *time.Time) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %v, got %v", *want, *got)
}
