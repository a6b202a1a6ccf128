package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupwallet/internal/calculator"
	"github.com/mmynk/groupwallet/internal/middleware"
	"github.com/mmynk/groupwallet/internal/models"
	"github.com/mmynk/groupwallet/internal/voting"
	"github.com/mmynk/groupwallet/internal/wallet"
	pb "github.com/mmynk/groupwallet/pkg/walletrpc"
)

// TransactionService implements the Connect TransactionService
type TransactionService struct {
	pb.UnimplementedTransactionServiceHandler
	wallet *wallet.Manager
}

// NewTransactionService creates a new TransactionService backed by the wallet manager.
func NewTransactionService(manager *wallet.Manager) *TransactionService {
	return &TransactionService{wallet: manager}
}

// CreateTransaction proposes a deposit or withdrawal.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *connect.Request[pb.CreateTransactionRequest]) (*connect.Response[pb.CreateTransactionResponse], error) {
	slog.Info("CreateTransaction request received",
		"group_id", req.Msg.GroupID,
		"type", req.Msg.Type,
	)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}
	typ, err := models.ParseTransactionType(req.Msg.Type)
	if err != nil {
		return nil, fail("CreateTransaction", err, "group_id", req.Msg.GroupID)
	}
	// Checked before the amount is ever formatted.
	if err := models.ValidateAmount(req.Msg.Amount); err != nil {
		return nil, fail("CreateTransaction", err, "group_id", req.Msg.GroupID)
	}

	t, status, err := s.wallet.CreateTransaction(ctx, req.Msg.GroupID, middleware.GetMemberID(ctx), typ, req.Msg.Amount, req.Msg.Description)
	if err != nil {
		return nil, fail("CreateTransaction", err, "group_id", req.Msg.GroupID)
	}

	return connect.NewResponse(&pb.CreateTransactionResponse{
		Transaction: toPBTransaction(t),
		Status:      toPBStatus(status),
	}), nil
}

// ApproveTransaction records the caller's approval.
func (s *TransactionService) ApproveTransaction(ctx context.Context, req *connect.Request[pb.ApproveTransactionRequest]) (*connect.Response[pb.ApproveTransactionResponse], error) {
	t, status, err := s.vote(ctx, req.Msg.GroupID, req.Msg.TransactionID, voting.Approve, "")
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&pb.ApproveTransactionResponse{
		Transaction: toPBTransaction(t),
		Status:      toPBStatus(status),
	}), nil
}

// RejectTransaction records the caller's rejection.
func (s *TransactionService) RejectTransaction(ctx context.Context, req *connect.Request[pb.RejectTransactionRequest]) (*connect.Response[pb.RejectTransactionResponse], error) {
	t, status, err := s.vote(ctx, req.Msg.GroupID, req.Msg.TransactionID, voting.Reject, req.Msg.Reason)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&pb.RejectTransactionResponse{
		Transaction: toPBTransaction(t),
		Status:      toPBStatus(status),
	}), nil
}

func (s *TransactionService) vote(ctx context.Context, groupID, transactionID string, kind voting.Kind, reason string) (*models.Transaction, voting.Status, error) {
	memberID := middleware.GetMemberID(ctx)
	slog.Info("Vote request received",
		"group_id", groupID,
		"transaction_id", transactionID,
		"member_id", memberID,
		"kind", kind,
	)

	if err := requireField("group_id", groupID); err != nil {
		return nil, voting.Status{}, err
	}
	if err := requireField("transaction_id", transactionID); err != nil {
		return nil, voting.Status{}, err
	}

	t, status, err := s.wallet.Vote(ctx, groupID, transactionID, memberID, kind, reason)
	if err != nil {
		return nil, voting.Status{}, fail("Vote", err, "group_id", groupID, "transaction_id", transactionID, "kind", kind)
	}

	slog.Info("Vote successful",
		"transaction_id", t.ID,
		"status", t.Status,
		"approvals", status.Approvals,
		"rejections", status.Rejections,
	)
	return t, status, nil
}

// GetApprovalStatus returns the transaction's vote tally.
func (s *TransactionService) GetApprovalStatus(ctx context.Context, req *connect.Request[pb.GetApprovalStatusRequest]) (*connect.Response[pb.GetApprovalStatusResponse], error) {
	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := requireField("transaction_id", req.Msg.TransactionID); err != nil {
		return nil, err
	}

	t, status, err := s.wallet.ApprovalStatus(ctx, req.Msg.GroupID, req.Msg.TransactionID, middleware.GetMemberID(ctx))
	if err != nil {
		return nil, fail("GetApprovalStatus", err, "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)
	}

	return connect.NewResponse(&pb.GetApprovalStatusResponse{
		Transaction: toPBTransaction(t),
		Status:      toPBStatus(status),
	}), nil
}

// CompletePayment records that an approved deposit was paid in.
func (s *TransactionService) CompletePayment(ctx context.Context, req *connect.Request[pb.CompletePaymentRequest]) (*connect.Response[pb.CompletePaymentResponse], error) {
	slog.Info("CompletePayment request received", "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := requireField("transaction_id", req.Msg.TransactionID); err != nil {
		return nil, err
	}

	memberID := middleware.GetMemberID(ctx)
	t, g, err := s.wallet.CompletePayment(ctx, req.Msg.GroupID, req.Msg.TransactionID, memberID, req.Msg.PaymentRef)
	if err != nil {
		return nil, fail("CompletePayment", err, "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)
	}

	return connect.NewResponse(&pb.CompletePaymentResponse{
		Transaction: toPBTransaction(t),
		Summary:     toPBSummary(calculator.Summarize(g)),
	}), nil
}

// CompleteWithdrawal records that an approved withdrawal was paid out.
func (s *TransactionService) CompleteWithdrawal(ctx context.Context, req *connect.Request[pb.CompleteWithdrawalRequest]) (*connect.Response[pb.CompleteWithdrawalResponse], error) {
	slog.Info("CompleteWithdrawal request received", "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)

	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := requireField("transaction_id", req.Msg.TransactionID); err != nil {
		return nil, err
	}

	memberID := middleware.GetMemberID(ctx)
	t, g, err := s.wallet.CompleteWithdrawal(ctx, req.Msg.GroupID, req.Msg.TransactionID, memberID, req.Msg.PayoutDestination, req.Msg.PaymentRef)
	if err != nil {
		return nil, fail("CompleteWithdrawal", err, "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)
	}

	return connect.NewResponse(&pb.CompleteWithdrawalResponse{
		Transaction: toPBTransaction(t),
		Summary:     toPBSummary(calculator.Summarize(g)),
	}), nil
}

// GetPaymentDetails describes a transaction and whether the caller may complete it.
func (s *TransactionService) GetPaymentDetails(ctx context.Context, req *connect.Request[pb.GetPaymentDetailsRequest]) (*connect.Response[pb.GetPaymentDetailsResponse], error) {
	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := requireField("transaction_id", req.Msg.TransactionID); err != nil {
		return nil, err
	}

	details, err := s.wallet.PaymentDetails(ctx, req.Msg.GroupID, req.Msg.TransactionID, middleware.GetMemberID(ctx))
	if err != nil {
		return nil, fail("GetPaymentDetails", err, "group_id", req.Msg.GroupID, "transaction_id", req.Msg.TransactionID)
	}

	return connect.NewResponse(&pb.GetPaymentDetailsResponse{Details: toPBPaymentDetails(details)}), nil
}

// ListPendingPayments lists approved transactions the caller still has to complete.
func (s *TransactionService) ListPendingPayments(ctx context.Context, req *connect.Request[pb.ListPendingPaymentsRequest]) (*connect.Response[pb.ListPendingPaymentsResponse], error) {
	caller, err := callerFrom(ctx, "")
	if err != nil {
		return nil, err
	}

	pending, err := s.wallet.PendingPayments(ctx, caller)
	if err != nil {
		return nil, fail("ListPendingPayments", err, "member_id", caller.MemberID)
	}

	payments := make([]*pb.PaymentDetails, len(pending))
	for i, d := range pending {
		payments[i] = toPBPaymentDetails(d)
	}

	slog.Info("ListPendingPayments successful", "member_id", caller.MemberID, "count", len(payments))
	return connect.NewResponse(&pb.ListPendingPaymentsResponse{Payments: payments}), nil
}
