// Package calculator derives balances from a group's transaction history.
// Everything here is a pure function of the transactions passed in; results
// are never cached and must be recomputed after every mutation.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupwallet/internal/models"
)

// ComputeBalance returns the settled balance of g: paid deposits minus paid
// withdrawals. Approved but uncompleted transactions have not moved money
// and are ignored.
func ComputeBalance(g *models.Group) decimal.Decimal {
	return Balance(g.Transactions)
}

// Balance sums paid transactions: deposits add, withdrawals subtract.
func Balance(txs []*models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Status != models.StatusPaid {
			continue
		}
		switch t.Type {
		case models.Deposit:
			total = total.Add(t.Amount)
		case models.Withdrawal:
			total = total.Sub(t.Amount)
		}
	}
	return total
}

// Summary is the headline view of a group wallet.
type Summary struct {
	Balance decimal.Decimal

	// Pending is the number of transactions still collecting votes.
	Pending int

	// AwaitingCompletion is the number of approved transactions whose
	// payment or payout has not happened yet.
	AwaitingCompletion int
}

// Summarize computes the balance and open-work counters of g.
func Summarize(g *models.Group) Summary {
	s := Summary{Balance: ComputeBalance(g)}
	for _, t := range g.Transactions {
		switch t.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusApproved:
			s.AwaitingCompletion++
		}
	}
	return s
}
