package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupwallet/internal/models"
)

// MemberStatement summarizes one member's contributions to a group wallet.
type MemberStatement struct {
	MemberID string
	Name     string

	// Deposited and Withdrawn only count paid transactions.
	Deposited decimal.Decimal
	Withdrawn decimal.Decimal

	// Net = Deposited - Withdrawn. Positive means the member has put in
	// more than they took out.
	Net decimal.Decimal

	// Counts of transactions created by the member, by status.
	Pending  int
	Approved int
	Rejected int
	Paid     int
}

// MemberStatements returns one statement per member of g, in member order.
// Transactions created by someone who is no longer listed are ignored.
func MemberStatements(g *models.Group) []MemberStatement {
	statements := make([]MemberStatement, len(g.Members))
	index := make(map[string]int, len(g.Members))
	for i, m := range g.Members {
		statements[i] = MemberStatement{
			MemberID:  m.ID,
			Name:      m.Name,
			Deposited: decimal.Zero,
			Withdrawn: decimal.Zero,
		}
		index[m.ID] = i
	}

	for _, t := range g.Transactions {
		i, ok := index[t.CreatedBy]
		if !ok {
			continue
		}
		s := &statements[i]
		switch t.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusApproved:
			s.Approved++
		case models.StatusRejected:
			s.Rejected++
		case models.StatusPaid:
			s.Paid++
			if t.Type == models.Deposit {
				s.Deposited = s.Deposited.Add(t.Amount)
			} else {
				s.Withdrawn = s.Withdrawn.Add(t.Amount)
			}
		}
	}

	for i := range statements {
		statements[i].Net = statements[i].Deposited.Sub(statements[i].Withdrawn)
	}
	return statements
}
