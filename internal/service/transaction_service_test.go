package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/auth"
	"github.com/mmynk/groupwallet/internal/middleware"
	"github.com/mmynk/groupwallet/internal/models"
	"github.com/mmynk/groupwallet/internal/storage"
	"github.com/mmynk/groupwallet/internal/storage/memory"
	"github.com/mmynk/groupwallet/internal/wallet"
	pb "github.com/mmynk/groupwallet/pkg/walletrpc"
)

func createTestTransaction(t *testing.T, c testClients, groupID string, by int, typ string, amount int64) *pb.Transaction {
	t.Helper()
	resp, err := c.transactions.CreateTransaction(context.Background(), as(by, &pb.CreateTransactionRequest{
		GroupID:     groupID,
		Type:        typ,
		Amount:      decimal.NewFromInt(amount),
		Description: "shared " + typ,
	}))
	require.NoError(t, err)
	return resp.Msg.Transaction
}

func approve(t *testing.T, c testClients, groupID, transactionID string, by int) *pb.ApproveTransactionResponse {
	t.Helper()
	resp, err := c.transactions.ApproveTransaction(context.Background(), as(by, &pb.ApproveTransactionRequest{
		GroupID:       groupID,
		TransactionID: transactionID,
	}))
	require.NoError(t, err)
	return resp.Msg
}

func TestCreateTransaction(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := createTestGroup(t, c, "TX", 3, 2)

	resp, err := c.transactions.CreateTransaction(ctx, as(2, &pb.CreateTransactionRequest{
		GroupID:     group.ID,
		Type:        "deposit",
		Amount:      decimal.RequireFromString("250.75"),
		Description: "hotel advance",
	}))
	require.NoError(t, err)

	tx := resp.Msg.Transaction
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "pending", tx.Status)
	assert.Equal(t, memberID(2), tx.CreatedBy)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("250.75")))
	assert.Empty(t, tx.Approvals)
	assert.Equal(t, 3, resp.Msg.Status.TotalMembers)
	assert.Equal(t, 2, resp.Msg.Status.Required)
}

func TestCreateTransaction_Invalid(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := createTestGroup(t, c, "TXBAD", 1, 1)

	tests := []struct {
		name string
		req  *pb.CreateTransactionRequest
		code connect.Code
	}{
		{"zero amount", &pb.CreateTransactionRequest{GroupID: group.ID, Type: "deposit", Amount: decimal.Zero}, connect.CodeInvalidArgument},
		{"negative amount", &pb.CreateTransactionRequest{GroupID: group.ID, Type: "withdrawal", Amount: decimal.NewFromInt(-5)}, connect.CodeInvalidArgument},
		{"sub-cent amount", &pb.CreateTransactionRequest{GroupID: group.ID, Type: "deposit", Amount: decimal.RequireFromString("0.001")}, connect.CodeInvalidArgument},
		{"amount too large", &pb.CreateTransactionRequest{GroupID: group.ID, Type: "deposit", Amount: decimal.New(1, 15)}, connect.CodeInvalidArgument},
		{"bad type", &pb.CreateTransactionRequest{GroupID: group.ID, Type: "loan", Amount: decimal.NewFromInt(5)}, connect.CodeInvalidArgument},
		{"missing group", &pb.CreateTransactionRequest{Type: "deposit", Amount: decimal.NewFromInt(5)}, connect.CodeInvalidArgument},
		{"unknown group", &pb.CreateTransactionRequest{GroupID: "nope", Type: "deposit", Amount: decimal.NewFromInt(5)}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.transactions.CreateTransaction(ctx, as(1, tt.req))
			assert.Equal(t, tt.code, connect.CodeOf(err))
		})
	}
}

func TestCreateTransaction_ExtremeExponent(t *testing.T) {
	c := setupTestServer(t)
	group := createTestGroup(t, c, "EXP", 1, 1)

	for _, amount := range []string{`"1e-20000000"`, `1e-2000000000`, `"1e2000000000"`} {
		body := `{"groupId":"` + group.ID + `","type":"deposit","amount":` + amount + `}`
		req, err := http.NewRequest(http.MethodPost, c.url+pb.TransactionServiceCreateTransactionProcedure, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.PhoneHeader, phone(1))

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, amount)
	}

	got, err := c.groups.GetGroup(context.Background(), as(1, &pb.GetGroupRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Empty(t, got.Msg.Group.Transactions)
}

func TestVoting(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := createTestGroup(t, c, "VOTE", 3, 2)
	tx := createTestTransaction(t, c, group.ID, 1, "deposit", 100)

	rejResp, err := c.transactions.RejectTransaction(ctx, as(2, &pb.RejectTransactionRequest{
		GroupID:       group.ID,
		TransactionID: tx.ID,
		Reason:        "not agreed",
	}))
	require.NoError(t, err)
	assert.Equal(t, "pending", rejResp.Msg.Transaction.Status)
	assert.Equal(t, []string{memberID(2)}, rejResp.Msg.Transaction.Rejections)

	// Changing stance moves the member between sets.
	msg := approve(t, c, group.ID, tx.ID, 2)
	assert.Equal(t, []string{memberID(2)}, msg.Transaction.Approvals)
	assert.Empty(t, msg.Transaction.Rejections)
	assert.Equal(t, "pending", msg.Transaction.Status)

	_, err = c.transactions.ApproveTransaction(ctx, as(2, &pb.ApproveTransactionRequest{GroupID: group.ID, TransactionID: tx.ID}))
	assert.Equal(t, connect.CodeAlreadyExists, connect.CodeOf(err))
	assert.Equal(t, "duplicate_vote", errorKind(err))

	msg = approve(t, c, group.ID, tx.ID, 3)
	assert.Equal(t, "approved", msg.Transaction.Status)
	assert.NotNil(t, msg.Transaction.ApprovedAt)
	assert.True(t, msg.Status.IsApproved)
	assert.Equal(t, 2, msg.Status.Approvals)

	_, err = c.transactions.RejectTransaction(ctx, as(1, &pb.RejectTransactionRequest{GroupID: group.ID, TransactionID: tx.ID}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	assert.Equal(t, "invalid_state", errorKind(err))

	status, err := c.transactions.GetApprovalStatus(ctx, as(1, &pb.GetApprovalStatusRequest{GroupID: group.ID, TransactionID: tx.ID}))
	require.NoError(t, err)
	assert.True(t, status.Msg.Status.IsApproved)
	assert.Equal(t, 3, status.Msg.Status.TotalMembers)
}

func TestVoting_FullRejection(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := createTestGroup(t, c, "REJ", 3, 2)
	tx := createTestTransaction(t, c, group.ID, 1, "withdrawal", 40)

	approve(t, c, group.ID, tx.ID, 1)
	_, err := c.transactions.RejectTransaction(ctx, as(2, &pb.RejectTransactionRequest{GroupID: group.ID, TransactionID: tx.ID}))
	require.NoError(t, err)
	resp, err := c.transactions.RejectTransaction(ctx, as(3, &pb.RejectTransactionRequest{
		GroupID:       group.ID,
		TransactionID: tx.ID,
		Reason:        "budget exceeded",
	}))
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.Msg.Transaction.Status)
	assert.Equal(t, "budget exceeded", resp.Msg.Transaction.RejectionReason)
	assert.NotNil(t, resp.Msg.Transaction.RejectedAt)
	assert.True(t, resp.Msg.Status.IsRejected)
}

func TestVoting_NonMember(t *testing.T) {
	c := setupTestServer(t)
	group := createTestGroup(t, c, "OUT", 2, 1)
	tx := createTestTransaction(t, c, group.ID, 1, "deposit", 10)

	_, err := c.transactions.ApproveTransaction(context.Background(), as(8, &pb.ApproveTransactionRequest{GroupID: group.ID, TransactionID: tx.ID}))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}

func TestPaymentRoundTrip(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := createTestGroup(t, c, "ROUND", 1, 1)

	tx := createTestTransaction(t, c, group.ID, 1, "deposit", 200)
	msg := approve(t, c, group.ID, tx.ID, 1)
	require.Equal(t, "approved", msg.Transaction.Status)

	pending, err := c.transactions.ListPendingPayments(ctx, as(1, &pb.ListPendingPaymentsRequest{}))
	require.NoError(t, err)
	require.Len(t, pending.Msg.Payments, 1)
	assert.Equal(t, tx.ID, pending.Msg.Payments[0].Transaction.ID)

	_, err = c.transactions.CompletePayment(ctx, as(1, &pb.CompletePaymentRequest{GroupID: group.ID, TransactionID: tx.ID}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err), "payment reference is required")

	paid, err := c.transactions.CompletePayment(ctx, as(1, &pb.CompletePaymentRequest{
		GroupID:       group.ID,
		TransactionID: tx.ID,
		PaymentRef:    "upi-txn-001",
	}))
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Msg.Transaction.Status)
	assert.Equal(t, "upi-txn-001", paid.Msg.Transaction.PaymentRef)
	assert.True(t, paid.Msg.Summary.Balance.Equal(decimal.NewFromInt(200)))

	_, err = c.transactions.CompletePayment(ctx, as(1, &pb.CompletePaymentRequest{GroupID: group.ID, TransactionID: tx.ID, PaymentRef: "again"}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	got, err := c.groups.GetGroup(ctx, as(1, &pb.GetGroupRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.True(t, got.Msg.Group.Summary.Balance.Equal(decimal.NewFromInt(200)))

	pending, err = c.transactions.ListPendingPayments(ctx, as(1, &pb.ListPendingPaymentsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, pending.Msg.Payments)

	// A funded group cannot be deleted.
	_, err = c.groups.DeleteGroup(ctx, as(1, &pb.DeleteGroupRequest{GroupID: group.ID}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
}

func TestCompleteWithdrawal(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	group := createTestGroup(t, c, "WD", 2, 1)

	dep := createTestTransaction(t, c, group.ID, 1, "deposit", 500)
	approve(t, c, group.ID, dep.ID, 2)
	_, err := c.transactions.CompletePayment(ctx, as(1, &pb.CompletePaymentRequest{GroupID: group.ID, TransactionID: dep.ID, PaymentRef: "p1"}))
	require.NoError(t, err)

	wd := createTestTransaction(t, c, group.ID, 2, "withdrawal", 120)
	approve(t, c, group.ID, wd.ID, 1)

	details, err := c.transactions.GetPaymentDetails(ctx, as(1, &pb.GetPaymentDetailsRequest{GroupID: group.ID, TransactionID: wd.ID}))
	require.NoError(t, err)
	assert.False(t, details.Msg.Details.CanComplete, "only the creator completes")

	details, err = c.transactions.GetPaymentDetails(ctx, as(2, &pb.GetPaymentDetailsRequest{GroupID: group.ID, TransactionID: wd.ID}))
	require.NoError(t, err)
	assert.True(t, details.Msg.Details.CanComplete)
	assert.Equal(t, "Goa Trip", details.Msg.Details.GroupName)

	_, err = c.transactions.CompleteWithdrawal(ctx, as(1, &pb.CompleteWithdrawalRequest{
		GroupID: group.ID, TransactionID: wd.ID, PayoutDestination: "asha@oksbi",
	}))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	_, err = c.transactions.CompleteWithdrawal(ctx, as(2, &pb.CompleteWithdrawalRequest{
		GroupID: group.ID, TransactionID: wd.ID, PayoutDestination: "@",
	}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	resp, err := c.transactions.CompleteWithdrawal(ctx, as(2, &pb.CompleteWithdrawalRequest{
		GroupID:           group.ID,
		TransactionID:     wd.ID,
		PayoutDestination: "ravi.k@okicici",
		PaymentRef:        "payout-77",
	}))
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Msg.Transaction.Status)
	assert.Equal(t, "ravi.k@okicici", resp.Msg.Transaction.PayoutDestination)
	assert.True(t, resp.Msg.Summary.Balance.Equal(decimal.NewFromInt(380)))

	statements, err := c.groups.GetMemberStatements(ctx, as(2, &pb.GetMemberStatementsRequest{GroupID: group.ID}))
	require.NoError(t, err)
	require.Len(t, statements.Msg.Statements, 2)
	assert.True(t, statements.Msg.Statements[0].Deposited.Equal(decimal.NewFromInt(500)))
	assert.True(t, statements.Msg.Statements[1].Withdrawn.Equal(decimal.NewFromInt(120)))
	assert.True(t, statements.Msg.Statements[1].Net.Equal(decimal.NewFromInt(-120)))
}

// brokenReadStore starts failing reads after the first save made once it
// is armed.
type brokenReadStore struct {
	storage.Store

	mu      sync.Mutex
	armed   bool
	failing bool
}

func (s *brokenReadStore) arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
}

func (s *brokenReadStore) SaveGroup(ctx context.Context, g *models.Group) error {
	err := s.Store.SaveGroup(ctx, g)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil && s.armed {
		s.failing = true
	}
	return err
}

func (s *brokenReadStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	s.mu.Lock()
	failing := s.failing
	s.mu.Unlock()
	if failing {
		return nil, apperr.Unavailable(errors.New("disk I/O error"), "failed to load group %s", groupID)
	}
	return s.Store.GetGroup(ctx, groupID)
}

func TestCompletePaymentSummaryComesFromSavedGroup(t *testing.T) {
	store := &brokenReadStore{Store: memory.New()}
	manager := wallet.New(store, nil)
	groups := NewGroupService(manager)
	transactions := NewTransactionService(manager)
	ctx := middleware.WithIdentity(context.Background(), auth.Identity{MemberID: memberID(1), Phone: phone(1)})

	created, err := groups.CreateGroup(ctx, connect.NewRequest(&pb.CreateGroupRequest{
		Name:              "Goa Trip",
		Code:              "SAVED",
		ApprovalThreshold: 1,
		CreatorName:       "Asha",
	}))
	require.NoError(t, err)
	groupID := created.Msg.Group.ID

	tx, err := transactions.CreateTransaction(ctx, connect.NewRequest(&pb.CreateTransactionRequest{
		GroupID: groupID,
		Type:    "deposit",
		Amount:  decimal.NewFromInt(200),
	}))
	require.NoError(t, err)
	txID := tx.Msg.Transaction.ID
	_, err = transactions.ApproveTransaction(ctx, connect.NewRequest(&pb.ApproveTransactionRequest{GroupID: groupID, TransactionID: txID}))
	require.NoError(t, err)

	store.arm()
	paid, err := transactions.CompletePayment(ctx, connect.NewRequest(&pb.CompletePaymentRequest{
		GroupID:       groupID,
		TransactionID: txID,
		PaymentRef:    "upi-txn-9",
	}))
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Msg.Transaction.Status)
	assert.True(t, paid.Msg.Summary.Balance.Equal(decimal.NewFromInt(200)))

	// Reads are failing now, so the summary above did not need one.
	_, err = groups.GetGroup(ctx, connect.NewRequest(&pb.GetGroupRequest{GroupID: groupID}))
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}
