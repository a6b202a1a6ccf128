package walletrpc

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member of a group.
type Member struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	IsAdmin  bool      `json:"isAdmin"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Transaction is a proposed or settled money movement.
type Transaction struct {
	ID                string          `json:"id"`
	GroupID           string          `json:"groupId"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	CreatedBy         string          `json:"createdBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	Status            string          `json:"status"`
	Approvals         []string        `json:"approvals"`
	Rejections        []string        `json:"rejections"`
	ApprovedAt        *time.Time      `json:"approvedAt,omitempty"`
	RejectedAt        *time.Time      `json:"rejectedAt,omitempty"`
	PaidAt            *time.Time      `json:"paidAt,omitempty"`
	RejectionReason   string          `json:"rejectionReason,omitempty"`
	PaymentRef        string          `json:"paymentRef,omitempty"`
	PayoutDestination string          `json:"payoutDestination,omitempty"`
}

// ApprovalStatus is the vote tally of a transaction.
type ApprovalStatus struct {
	Approvals    int  `json:"approvals"`
	Rejections   int  `json:"rejections"`
	TotalMembers int  `json:"totalMembers"`
	Required     int  `json:"required"`
	IsApproved   bool `json:"isApproved"`
	IsRejected   bool `json:"isRejected"`
}

// GroupSummary is the headline view of a wallet.
type GroupSummary struct {
	Balance              decimal.Decimal `json:"balance"`
	PendingCount         int             `json:"pendingCount"`
	AwaitingPaymentCount int             `json:"awaitingPaymentCount"`
}

// Group is a shared wallet with its members and transactions.
type Group struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Code              string         `json:"code"`
	ApprovalThreshold int            `json:"approvalThreshold"`
	CreatedBy         string         `json:"createdBy"`
	CreatedAt         time.Time      `json:"createdAt"`
	Members           []*Member      `json:"members"`
	Transactions      []*Transaction `json:"transactions"`
	Summary           *GroupSummary  `json:"summary"`
}

// MemberStatement is one member's contribution summary.
type MemberStatement struct {
	MemberID  string          `json:"memberId"`
	Name      string          `json:"name"`
	Deposited decimal.Decimal `json:"deposited"`
	Withdrawn decimal.Decimal `json:"withdrawn"`
	Net       decimal.Decimal `json:"net"`
	Pending   int             `json:"pending"`
	Approved  int             `json:"approved"`
	Rejected  int             `json:"rejected"`
	Paid      int             `json:"paid"`
}

// PaymentDetails describes a transaction for the member settling it.
type PaymentDetails struct {
	GroupID     string       `json:"groupId"`
	GroupName   string       `json:"groupName"`
	Transaction *Transaction `json:"transaction"`
	CanComplete bool         `json:"canComplete"`
}

// MemberInput names a person to add by phone.
type MemberInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// GroupService messages.

type CreateGroupRequest struct {
	Name              string         `json:"name"`
	Code              string         `json:"code"`
	ApprovalThreshold int            `json:"approvalThreshold"`
	CreatorName       string         `json:"creatorName"`
	Members           []*MemberInput `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type JoinGroupRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type JoinGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListMemberGroupsRequest struct{}

type ListMemberGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// UpdateGroupRequest is a partial update; nil fields are left unchanged.
type UpdateGroupRequest struct {
	GroupID string  `json:"groupId"`
	Name    *string `json:"name,omitempty"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type UpdateApprovalThresholdRequest struct {
	GroupID           string `json:"groupId"`
	ApprovalThreshold int    `json:"approvalThreshold"`
}

type UpdateApprovalThresholdResponse struct {
	Group *Group `json:"group"`
}

type GetMemberStatementsRequest struct {
	GroupID string `json:"groupId"`
}

type GetMemberStatementsResponse struct {
	Statements []*MemberStatement `json:"statements"`
}

// TransactionService messages.

type CreateTransactionRequest struct {
	GroupID     string          `json:"groupId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type CreateTransactionResponse struct {
	Transaction *Transaction    `json:"transaction"`
	Status      *ApprovalStatus `json:"status"`
}

type ApproveTransactionRequest struct {
	GroupID       string `json:"groupId"`
	TransactionID string `json:"transactionId"`
}

type ApproveTransactionResponse struct {
	Transaction *Transaction    `json:"transaction"`
	Status      *ApprovalStatus `json:"status"`
}

type RejectTransactionRequest struct {
	GroupID       string `json:"groupId"`
	TransactionID string `json:"transactionId"`
	Reason        string `json:"reason,omitempty"`
}

type RejectTransactionResponse struct {
	Transaction *Transaction    `json:"transaction"`
	Status      *ApprovalStatus `json:"status"`
}

type GetApprovalStatusRequest struct {
	GroupID       string `json:"groupId"`
	TransactionID string `json:"transactionId"`
}

type GetApprovalStatusResponse struct {
	Transaction *Transaction    `json:"transaction"`
	Status      *ApprovalStatus `json:"status"`
}

type CompletePaymentRequest struct {
	GroupID       string `json:"groupId"`
	TransactionID string `json:"transactionId"`
	PaymentRef    string `json:"paymentRef"`
}

type CompletePaymentResponse struct {
	Transaction *Transaction  `json:"transaction"`
	Summary     *GroupSummary `json:"summary"`
}

type CompleteWithdrawalRequest struct {
	GroupID           string `json:"groupId"`
	TransactionID     string `json:"transactionId"`
	PayoutDestination string `json:"payoutDestination"`
	PaymentRef        string `json:"paymentRef"`
}

type CompleteWithdrawalResponse struct {
	Transaction *Transaction  `json:"transaction"`
	Summary     *GroupSummary `json:"summary"`
}

type GetPaymentDetailsRequest struct {
	GroupID       string `json:"groupId"`
	TransactionID string `json:"transactionId"`
}

type GetPaymentDetailsResponse struct {
	Details *PaymentDetails `json:"details"`
}

type ListPendingPaymentsRequest struct{}

type ListPendingPaymentsResponse struct {
	Payments []*PaymentDetails `json:"payments"`
}

// AuthService messages.

type RequestCodeRequest struct {
	Phone string `json:"phone"`
}

type RequestCodeResponse struct {
	ExpiresInSeconds int64 `json:"expiresInSeconds"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type VerifyCodeResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	MemberID  string    `json:"memberId"`
	Phone     string    `json:"phone"`
}
