package walletrpc

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

// TransactionServiceName is the fully-qualified name of the TransactionService service.
const TransactionServiceName = "groupwallet.v1.TransactionService"

// Procedure paths of the TransactionService RPCs.
const (
	TransactionServiceCreateTransactionProcedure   = "/groupwallet.v1.TransactionService/CreateTransaction"
	TransactionServiceApproveTransactionProcedure  = "/groupwallet.v1.TransactionService/ApproveTransaction"
	TransactionServiceRejectTransactionProcedure   = "/groupwallet.v1.TransactionService/RejectTransaction"
	TransactionServiceGetApprovalStatusProcedure   = "/groupwallet.v1.TransactionService/GetApprovalStatus"
	TransactionServiceCompletePaymentProcedure     = "/groupwallet.v1.TransactionService/CompletePayment"
	TransactionServiceCompleteWithdrawalProcedure  = "/groupwallet.v1.TransactionService/CompleteWithdrawal"
	TransactionServiceGetPaymentDetailsProcedure   = "/groupwallet.v1.TransactionService/GetPaymentDetails"
	TransactionServiceListPendingPaymentsProcedure = "/groupwallet.v1.TransactionService/ListPendingPayments"
)

// TransactionServiceHandler is implemented by servers of TransactionService.
// It proposes transactions and records their votes and completion.
type TransactionServiceHandler interface {
	CreateTransaction(context.Context, *connect.Request[CreateTransactionRequest]) (*connect.Response[CreateTransactionResponse], error)
	ApproveTransaction(context.Context, *connect.Request[ApproveTransactionRequest]) (*connect.Response[ApproveTransactionResponse], error)
	RejectTransaction(context.Context, *connect.Request[RejectTransactionRequest]) (*connect.Response[RejectTransactionResponse], error)
	GetApprovalStatus(context.Context, *connect.Request[GetApprovalStatusRequest]) (*connect.Response[GetApprovalStatusResponse], error)
	CompletePayment(context.Context, *connect.Request[CompletePaymentRequest]) (*connect.Response[CompletePaymentResponse], error)
	CompleteWithdrawal(context.Context, *connect.Request[CompleteWithdrawalRequest]) (*connect.Response[CompleteWithdrawalResponse], error)
	GetPaymentDetails(context.Context, *connect.Request[GetPaymentDetailsRequest]) (*connect.Response[GetPaymentDetailsResponse], error)
	ListPendingPayments(context.Context, *connect.Request[ListPendingPaymentsRequest]) (*connect.Response[ListPendingPaymentsResponse], error)
}

// NewTransactionServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTransactionServiceHandler(svc TransactionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	createTransactionHandler := connect.NewUnaryHandler(TransactionServiceCreateTransactionProcedure, svc.CreateTransaction, opts...)
	approveTransactionHandler := connect.NewUnaryHandler(TransactionServiceApproveTransactionProcedure, svc.ApproveTransaction, opts...)
	rejectTransactionHandler := connect.NewUnaryHandler(TransactionServiceRejectTransactionProcedure, svc.RejectTransaction, opts...)
	getApprovalStatusHandler := connect.NewUnaryHandler(TransactionServiceGetApprovalStatusProcedure, svc.GetApprovalStatus, opts...)
	completePaymentHandler := connect.NewUnaryHandler(TransactionServiceCompletePaymentProcedure, svc.CompletePayment, opts...)
	completeWithdrawalHandler := connect.NewUnaryHandler(TransactionServiceCompleteWithdrawalProcedure, svc.CompleteWithdrawal, opts...)
	getPaymentDetailsHandler := connect.NewUnaryHandler(TransactionServiceGetPaymentDetailsProcedure, svc.GetPaymentDetails, opts...)
	listPendingPaymentsHandler := connect.NewUnaryHandler(TransactionServiceListPendingPaymentsProcedure, svc.ListPendingPayments, opts...)
	return "/" + TransactionServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TransactionServiceCreateTransactionProcedure:
			createTransactionHandler.ServeHTTP(w, r)
		case TransactionServiceApproveTransactionProcedure:
			approveTransactionHandler.ServeHTTP(w, r)
		case TransactionServiceRejectTransactionProcedure:
			rejectTransactionHandler.ServeHTTP(w, r)
		case TransactionServiceGetApprovalStatusProcedure:
			getApprovalStatusHandler.ServeHTTP(w, r)
		case TransactionServiceCompletePaymentProcedure:
			completePaymentHandler.ServeHTTP(w, r)
		case TransactionServiceCompleteWithdrawalProcedure:
			completeWithdrawalHandler.ServeHTTP(w, r)
		case TransactionServiceGetPaymentDetailsProcedure:
			getPaymentDetailsHandler.ServeHTTP(w, r)
		case TransactionServiceListPendingPaymentsProcedure:
			listPendingPaymentsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedTransactionServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTransactionServiceHandler struct{}

func (UnimplementedTransactionServiceHandler) CreateTransaction(context.Context, *connect.Request[CreateTransactionRequest]) (*connect.Response[CreateTransactionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.TransactionService.CreateTransaction is not implemented"))
}

func (UnimplementedTransactionServiceHandler) ApproveTransaction(context.Context, *connect.Request[ApproveTransactionRequest]) (*connect.Response[ApproveTransactionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.TransactionService.ApproveTransaction is not implemented"))
}

func (UnimplementedTransactionServiceHandler) RejectTransaction(context.Context, *connect.Request[RejectTransactionRequest]) (*connect.Response[RejectTransactionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.TransactionService.RejectTransaction is not implemented"))
}

func (UnimplementedTransactionServiceHandler) GetApprovalStatus(context.Context, *connect.Request[GetApprovalStatusRequest]) (*connect.Response[GetApprovalStatusResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.TransactionService.GetApprovalStatus is not implemented"))
}

func (UnimplementedTransactionServiceHandler) CompletePayment(context.Context, *connect.Request[CompletePaymentRequest]) (*connect.Response[CompletePaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.TransactionService.CompletePayment is not implemented"))
}

func (UnimplementedTransactionServiceHandler) CompleteWithdrawal(context.Context, *connect.Request[CompleteWithdrawalRequest]) (*connect.Response[CompleteWithdrawalResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.TransactionService.CompleteWithdrawal is not implemented"))
}

func (UnimplementedTransactionServiceHandler) GetPaymentDetails(context.Context, *connect.Request[GetPaymentDetailsRequest]) (*connect.Response[GetPaymentDetailsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.TransactionService.GetPaymentDetails is not implemented"))
}

func (UnimplementedTransactionServiceHandler) ListPendingPayments(context.Context, *connect.Request[ListPendingPaymentsRequest]) (*connect.Response[ListPendingPaymentsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.TransactionService.ListPendingPayments is not implemented"))
}

// TransactionServiceClient is a client for TransactionService.
type TransactionServiceClient interface {
	CreateTransaction(context.Context, *connect.Request[CreateTransactionRequest]) (*connect.Response[CreateTransactionResponse], error)
	ApproveTransaction(context.Context, *connect.Request[ApproveTransactionRequest]) (*connect.Response[ApproveTransactionResponse], error)
	RejectTransaction(context.Context, *connect.Request[RejectTransactionRequest]) (*connect.Response[RejectTransactionResponse], error)
	GetApprovalStatus(context.Context, *connect.Request[GetApprovalStatusRequest]) (*connect.Response[GetApprovalStatusResponse], error)
	CompletePayment(context.Context, *connect.Request[CompletePaymentRequest]) (*connect.Response[CompletePaymentResponse], error)
	CompleteWithdrawal(context.Context, *connect.Request[CompleteWithdrawalRequest]) (*connect.Response[CompleteWithdrawalResponse], error)
	GetPaymentDetails(context.Context, *connect.Request[GetPaymentDetailsRequest]) (*connect.Response[GetPaymentDetailsResponse], error)
	ListPendingPayments(context.Context, *connect.Request[ListPendingPaymentsRequest]) (*connect.Response[ListPendingPaymentsResponse], error)
}

// NewTransactionServiceClient constructs a client for TransactionService. baseURL is the server
// root, e.g. http://localhost:8080.
func NewTransactionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TransactionServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &transactionServiceClient{
		createTransaction:   connect.NewClient[CreateTransactionRequest, CreateTransactionResponse](httpClient, baseURL+TransactionServiceCreateTransactionProcedure, opts...),
		approveTransaction:  connect.NewClient[ApproveTransactionRequest, ApproveTransactionResponse](httpClient, baseURL+TransactionServiceApproveTransactionProcedure, opts...),
		rejectTransaction:   connect.NewClient[RejectTransactionRequest, RejectTransactionResponse](httpClient, baseURL+TransactionServiceRejectTransactionProcedure, opts...),
		getApprovalStatus:   connect.NewClient[GetApprovalStatusRequest, GetApprovalStatusResponse](httpClient, baseURL+TransactionServiceGetApprovalStatusProcedure, opts...),
		completePayment:     connect.NewClient[CompletePaymentRequest, CompletePaymentResponse](httpClient, baseURL+TransactionServiceCompletePaymentProcedure, opts...),
		completeWithdrawal:  connect.NewClient[CompleteWithdrawalRequest, CompleteWithdrawalResponse](httpClient, baseURL+TransactionServiceCompleteWithdrawalProcedure, opts...),
		getPaymentDetails:   connect.NewClient[GetPaymentDetailsRequest, GetPaymentDetailsResponse](httpClient, baseURL+TransactionServiceGetPaymentDetailsProcedure, opts...),
		listPendingPayments: connect.NewClient[ListPendingPaymentsRequest, ListPendingPaymentsResponse](httpClient, baseURL+TransactionServiceListPendingPaymentsProcedure, opts...),
	}
}

type transactionServiceClient struct {
	createTransaction   *connect.Client[CreateTransactionRequest, CreateTransactionResponse]
	approveTransaction  *connect.Client[ApproveTransactionRequest, ApproveTransactionResponse]
	rejectTransaction   *connect.Client[RejectTransactionRequest, RejectTransactionResponse]
	getApprovalStatus   *connect.Client[GetApprovalStatusRequest, GetApprovalStatusResponse]
	completePayment     *connect.Client[CompletePaymentRequest, CompletePaymentResponse]
	completeWithdrawal  *connect.Client[CompleteWithdrawalRequest, CompleteWithdrawalResponse]
	getPaymentDetails   *connect.Client[GetPaymentDetailsRequest, GetPaymentDetailsResponse]
	listPendingPayments *connect.Client[ListPendingPaymentsRequest, ListPendingPaymentsResponse]
}

func (c *transactionServiceClient) CreateTransaction(ctx context.Context, req *connect.Request[CreateTransactionRequest]) (*connect.Response[CreateTransactionResponse], error) {
	return c.createTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) ApproveTransaction(ctx context.Context, req *connect.Request[ApproveTransactionRequest]) (*connect.Response[ApproveTransactionResponse], error) {
	return c.approveTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) RejectTransaction(ctx context.Context, req *connect.Request[RejectTransactionRequest]) (*connect.Response[RejectTransactionResponse], error) {
	return c.rejectTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) GetApprovalStatus(ctx context.Context, req *connect.Request[GetApprovalStatusRequest]) (*connect.Response[GetApprovalStatusResponse], error) {
	return c.getApprovalStatus.CallUnary(ctx, req)
}

func (c *transactionServiceClient) CompletePayment(ctx context.Context, req *connect.Request[CompletePaymentRequest]) (*connect.Response[CompletePaymentResponse], error) {
	return c.completePayment.CallUnary(ctx, req)
}

func (c *transactionServiceClient) CompleteWithdrawal(ctx context.Context, req *connect.Request[CompleteWithdrawalRequest]) (*connect.Response[CompleteWithdrawalResponse], error) {
	return c.completeWithdrawal.CallUnary(ctx, req)
}

func (c *transactionServiceClient) GetPaymentDetails(ctx context.Context, req *connect.Request[GetPaymentDetailsRequest]) (*connect.Response[GetPaymentDetailsResponse], error) {
	return c.getPaymentDetails.CallUnary(ctx, req)
}

func (c *transactionServiceClient) ListPendingPayments(ctx context.Context, req *connect.Request[ListPendingPaymentsRequest]) (*connect.Response[ListPendingPaymentsResponse], error) {
	return c.listPendingPayments.CallUnary(ctx, req)
}
