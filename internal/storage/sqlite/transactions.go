package sqlite

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/models"
)

const (
	voteApprove = "approve"
	voteReject  = "reject"
)

func insertTransaction(ctx context.Context, tx *sql.Tx, groupID string, position int, t *models.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (
		    id, group_id, position, type, amount, description, created_by, created_at, status,
		    approved_at, rejected_at, paid_at, rejection_reason, payment_ref, payout_destination
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, groupID, position, string(t.Type), t.Amount.String(), t.Description, t.CreatedBy,
		toMillis(t.CreatedAt), string(t.Status),
		nullMillis(t.ApprovedAt), nullMillis(t.RejectedAt), nullMillis(t.PaidAt),
		t.RejectionReason, t.PaymentRef, t.PayoutDestination,
	)
	if err != nil {
		return apperr.Unavailable(err, "failed to insert transaction")
	}

	position = 0
	for _, vote := range []struct {
		kind string
		ids  []string
	}{{voteApprove, t.Approvals}, {voteReject, t.Rejections}} {
		for _, memberID := range vote.ids {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO votes (transaction_id, member_id, kind, position) VALUES (?, ?, ?, ?)",
				t.ID, memberID, vote.kind, position,
			)
			if isUniqueViolation(err) {
				return apperr.InvalidState("member %s voted both ways", memberID)
			}
			if err != nil {
				return apperr.Unavailable(err, "failed to insert vote")
			}
			position++
		}
	}
	return nil
}

func loadTransactions(ctx context.Context, tx *sql.Tx, groupID string) ([]*models.Transaction, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, group_id, type, amount, description, created_by, created_at, status,
		        approved_at, rejected_at, paid_at, rejection_reason, payment_ref, payout_destination
		 FROM transactions WHERE group_id = ? ORDER BY position`,
		groupID,
	)
	if err != nil {
		return nil, apperr.Unavailable(err, "failed to get transactions")
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	byID := make(map[string]*models.Transaction)
	for rows.Next() {
		t := &models.Transaction{Approvals: []string{}, Rejections: []string{}}
		var (
			typ, status, amount            string
			createdAt                      int64
			approvedAt, rejectedAt, paidAt sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.GroupID, &typ, &amount, &t.Description, &t.CreatedBy, &createdAt, &status,
			&approvedAt, &rejectedAt, &paidAt, &t.RejectionReason, &t.PaymentRef, &t.PayoutDestination); err != nil {
			return nil, apperr.Unavailable(err, "failed to scan transaction")
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, apperr.Unavailable(err, "corrupt amount %q on transaction %s", amount, t.ID)
		}
		t.Type = models.TransactionType(typ)
		t.Status = models.TransactionStatus(status)
		t.CreatedAt = fromMillis(createdAt)
		t.ApprovedAt = timeFromNull(approvedAt)
		t.RejectedAt = timeFromNull(rejectedAt)
		t.PaidAt = timeFromNull(paidAt)

		transactions = append(transactions, t)
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err, "failed to iterate transactions")
	}
	rows.Close()

	if len(transactions) == 0 {
		return transactions, nil
	}
	if err := loadVotes(ctx, tx, groupID, byID); err != nil {
		return nil, err
	}
	return transactions, nil
}

func loadVotes(ctx context.Context, tx *sql.Tx, groupID string, byID map[string]*models.Transaction) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT v.transaction_id, v.member_id, v.kind
		 FROM votes v JOIN transactions t ON t.id = v.transaction_id
		 WHERE t.group_id = ?
		 ORDER BY v.transaction_id, v.position`,
		groupID,
	)
	if err != nil {
		return apperr.Unavailable(err, "failed to get votes")
	}
	defer rows.Close()

	for rows.Next() {
		var transactionID, memberID, kind string
		if err := rows.Scan(&transactionID, &memberID, &kind); err != nil {
			return apperr.Unavailable(err, "failed to scan vote")
		}
		t, ok := byID[transactionID]
		if !ok {
			continue
		}
		switch kind {
		case voteApprove:
			t.Approvals = append(t.Approvals, memberID)
		case voteReject:
			t.Rejections = append(t.Rejections, memberID)
		}
	}
	if err := rows.Err(); err != nil {
		return apperr.Unavailable(err, "failed to iterate votes")
	}
	return nil
}
