package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupwallet/internal/apperr"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func member(t *testing.T, id, phone string) Member {
	t.Helper()
	m, err := NewMember(id, id, phone)
	require.NoError(t, err)
	return m
}

func TestNewGroup(t *testing.T) {
	alice := member(t, "alice", "+9110000001")
	bob := member(t, "bob", "+9110000002")

	t.Run("creator becomes admin and first member", func(t *testing.T) {
		g, err := NewGroup("Trip", "TRIP1", 1, alice, []Member{bob}, now)
		require.NoError(t, err)

		assert.NotEmpty(t, g.ID)
		assert.Equal(t, "alice", g.CreatedBy)
		require.Len(t, g.Members, 2)
		assert.Equal(t, "alice", g.Members[0].ID)
		assert.True(t, g.Members[0].IsAdmin)
		assert.False(t, g.Members[1].IsAdmin)
		assert.NotNil(t, g.Transactions)
		assert.True(t, g.IsAdmin("alice"))
		assert.False(t, g.IsAdmin("bob"))
	})

	t.Run("creator listed in initial members is not duplicated", func(t *testing.T) {
		g, err := NewGroup("Trip", "TRIP1", 1, alice, []Member{alice, bob}, now)
		require.NoError(t, err)
		assert.Len(t, g.Members, 2)
	})

	t.Run("zero threshold defaults and is capped by member count", func(t *testing.T) {
		g, err := NewGroup("Solo", "SOLO", 0, alice, nil, now)
		require.NoError(t, err)
		assert.Equal(t, 1, g.ApprovalThreshold)

		g, err = NewGroup("Pair", "PAIR", 0, alice, []Member{bob}, now)
		require.NoError(t, err)
		assert.Equal(t, DefaultApprovalThreshold, g.ApprovalThreshold)
	})

	tests := []struct {
		name      string
		groupName string
		code      string
		threshold int
		initial   []Member
	}{
		{"empty name", " ", "C", 1, nil},
		{"empty code", "G", "", 1, nil},
		{"negative threshold", "G", "C", -1, nil},
		{"threshold above members", "G", "C", 3, []Member{bob}},
		{"duplicate phone", "G", "C", 1, []Member{{ID: "carol", Phone: bob.Phone}, bob}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGroup(tt.groupName, tt.code, tt.threshold, alice, tt.initial, now)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestGroupAddMember(t *testing.T) {
	g, err := NewGroup("Trip", "TRIP1", 1, member(t, "alice", "+911"), nil, now)
	require.NoError(t, err)

	require.NoError(t, g.AddMember(member(t, "bob", "+912")))
	assert.True(t, g.HasMember("bob"))
	assert.True(t, g.HasPhone("+912"))

	err = g.AddMember(member(t, "bob2", "+912"))
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	err = g.AddMember(Member{ID: "x"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGroupSetApprovalThreshold(t *testing.T) {
	g, err := NewGroup("Trip", "TRIP1", 1, member(t, "alice", "+911"), []Member{member(t, "bob", "+912")}, now)
	require.NoError(t, err)

	assert.Error(t, g.SetApprovalThreshold(0))
	assert.Error(t, g.SetApprovalThreshold(3))
	require.NoError(t, g.SetApprovalThreshold(2))
	assert.Equal(t, 2, g.ApprovalThreshold)
}

func TestNewTransaction(t *testing.T) {
	tx, err := NewTransaction("g1", Deposit, decimal.NewFromInt(200), " rent ", "alice", now)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, tx.Status)
	assert.Equal(t, "rent", tx.Description)
	assert.NotNil(t, tx.Approvals)
	assert.NotNil(t, tx.Rejections)
	assert.True(t, tx.IsPending())

	tests := []struct {
		name   string
		amount string
		ok     bool
	}{
		{"zero", "0", false},
		{"negative", "-5", false},
		{"two decimals", "12.75", true},
		{"trailing zero", "12.50", true},
		{"sub-cent", "0.001", false},
		{"tiny exponent", "1e-20000000", false},
		{"largest", "999999999999.99", true},
		{"at max", "1000000000000", false},
		{"huge exponent", "1e2000000000", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var amount decimal.Decimal
			require.NoError(t, amount.UnmarshalJSON([]byte(`"`+tt.amount+`"`)))
			_, err := NewTransaction("g1", Deposit, amount, "", "alice", now)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
			}
		})
	}

	_, err = NewTransaction("g1", TransactionType("transfer"), decimal.NewFromInt(1), "", "alice", now)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestParseTransactionType(t *testing.T) {
	typ, err := ParseTransactionType("Withdrawal")
	require.NoError(t, err)
	assert.Equal(t, Withdrawal, typ)

	_, err = ParseTransactionType("refund")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGroupCloneIsDeep(t *testing.T) {
	g, err := NewGroup("Trip", "TRIP1", 1, member(t, "alice", "+911"), nil, now)
	require.NoError(t, err)
	tx, err := NewTransaction(g.ID, Deposit, decimal.NewFromInt(10), "", "alice", now)
	require.NoError(t, err)
	g.Transactions = append(g.Transactions, tx)

	c := g.Clone()
	c.Transactions[0].Approvals = append(c.Transactions[0].Approvals, "alice")
	c.Members[0].Name = "changed"

	assert.Empty(t, g.Transactions[0].Approvals)
	assert.Equal(t, "alice", g.Members[0].Name)
}
