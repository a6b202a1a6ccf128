package service

import (
	"github.com/mmynk/groupwallet/internal/calculator"
	"github.com/mmynk/groupwallet/internal/models"
	"github.com/mmynk/groupwallet/internal/voting"
	"github.com/mmynk/groupwallet/internal/wallet"
	pb "github.com/mmynk/groupwallet/pkg/walletrpc"
)

func toPBGroup(g *models.Group) *pb.Group {
	members := make([]*pb.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = &pb.Member{
			ID:       m.ID,
			Name:     m.Name,
			Phone:    m.Phone,
			IsAdmin:  m.ID == g.CreatedBy,
			JoinedAt: m.JoinedAt,
		}
	}
	transactions := make([]*pb.Transaction, len(g.Transactions))
	for i, t := range g.Transactions {
		transactions[i] = toPBTransaction(t)
	}
	return &pb.Group{
		ID:                g.ID,
		Name:              g.Name,
		Code:              g.Code,
		ApprovalThreshold: g.ApprovalThreshold,
		CreatedBy:         g.CreatedBy,
		CreatedAt:         g.CreatedAt,
		Members:           members,
		Transactions:      transactions,
		Summary:           toPBSummary(calculator.Summarize(g)),
	}
}

func toPBSummary(s calculator.Summary) *pb.GroupSummary {
	return &pb.GroupSummary{
		Balance:              s.Balance,
		PendingCount:         s.Pending,
		AwaitingPaymentCount: s.AwaitingCompletion,
	}
}

func toPBTransaction(t *models.Transaction) *pb.Transaction {
	return &pb.Transaction{
		ID:                t.ID,
		GroupID:           t.GroupID,
		Type:              string(t.Type),
		Amount:            t.Amount,
		Description:       t.Description,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		Status:            string(t.Status),
		Approvals:         append([]string{}, t.Approvals...),
		Rejections:        append([]string{}, t.Rejections...),
		ApprovedAt:        t.ApprovedAt,
		RejectedAt:        t.RejectedAt,
		PaidAt:            t.PaidAt,
		RejectionReason:   t.RejectionReason,
		PaymentRef:        t.PaymentRef,
		PayoutDestination: t.PayoutDestination,
	}
}

func toPBStatus(s voting.Status) *pb.ApprovalStatus {
	return &pb.ApprovalStatus{
		Approvals:    s.Approvals,
		Rejections:   s.Rejections,
		TotalMembers: s.TotalMembers,
		Required:     s.Required,
		IsApproved:   s.IsApproved,
		IsRejected:   s.IsRejected,
	}
}

func toPBStatement(s calculator.MemberStatement) *pb.MemberStatement {
	return &pb.MemberStatement{
		MemberID:  s.MemberID,
		Name:      s.Name,
		Deposited: s.Deposited,
		Withdrawn: s.Withdrawn,
		Net:       s.Net,
		Pending:   s.Pending,
		Approved:  s.Approved,
		Rejected:  s.Rejected,
		Paid:      s.Paid,
	}
}

func toPBPaymentDetails(d wallet.PaymentDetails) *pb.PaymentDetails {
	return &pb.PaymentDetails{
		GroupID:     d.GroupID,
		GroupName:   d.GroupName,
		Transaction: toPBTransaction(d.Transaction),
		CanComplete: d.CanComplete,
	}
}
