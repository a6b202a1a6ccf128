package admin

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/models"
)

func group(t *testing.T, members int) *models.Group {
	t.Helper()
	admin, err := models.NewMember("admin", "Admin", "+9100")
	require.NoError(t, err)
	g, err := models.NewGroup("Club", "CLUB", 1, admin, nil, time.Now())
	require.NoError(t, err)
	for i := 1; i < members; i++ {
		m, err := models.NewMember(string(rune('a'+i)), "", "+91"+string(rune('a'+i)))
		require.NoError(t, err)
		require.NoError(t, Join(g, m))
	}
	return g
}

func TestUpdateApprovalThreshold(t *testing.T) {
	g := group(t, 3)

	err := UpdateApprovalThreshold(g, 2, "b")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	for _, bad := range []int{0, -1, 4} {
		err := UpdateApprovalThreshold(g, bad, "admin")
		assert.True(t, apperr.Is(err, apperr.KindValidation), "threshold %d", bad)
	}
	for _, ok := range []int{1, 2, 3} {
		require.NoError(t, UpdateApprovalThreshold(g, ok, "admin"))
		assert.Equal(t, ok, g.ApprovalThreshold)
	}
}

func TestCheckDeletable(t *testing.T) {
	g := group(t, 2)

	assert.True(t, apperr.Is(CheckDeletable(g, "b"), apperr.KindForbidden))
	assert.NoError(t, CheckDeletable(g, "admin"))

	g.Transactions = append(g.Transactions, &models.Transaction{
		Type: models.Deposit, Amount: decimal.NewFromInt(25), Status: models.StatusPaid,
	})
	assert.True(t, apperr.Is(CheckDeletable(g, "admin"), apperr.KindInvalidState))

	g.Transactions = append(g.Transactions, &models.Transaction{
		Type: models.Withdrawal, Amount: decimal.NewFromInt(25), Status: models.StatusPaid,
	})
	assert.NoError(t, CheckDeletable(g, "admin"))
}

func TestJoin(t *testing.T) {
	g := group(t, 1)

	m, err := models.NewMember("zed", "Zed", "+9177")
	require.NoError(t, err)
	m.IsAdmin = true
	require.NoError(t, Join(g, m))

	joined, ok := g.Member("zed")
	require.True(t, ok)
	assert.False(t, joined.IsAdmin, "joining never grants admin")

	again, err := models.NewMember("zed-2", "Zed", "+9177")
	require.NoError(t, err)
	assert.True(t, apperr.Is(Join(g, again), apperr.KindConflict))
}

func TestRename(t *testing.T) {
	g := group(t, 2)
	assert.True(t, apperr.Is(Rename(g, "New", "b"), apperr.KindForbidden))
	assert.True(t, apperr.Is(Rename(g, " ", "admin"), apperr.KindValidation))
	require.NoError(t, Rename(g, "New", "admin"))
	assert.Equal(t, "New", g.Name)
}
