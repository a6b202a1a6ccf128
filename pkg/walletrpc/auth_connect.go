package walletrpc

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "groupwallet.v1.AuthService"

// Procedure paths of the AuthService RPCs.
const (
	AuthServiceRequestCodeProcedure = "/groupwallet.v1.AuthService/RequestCode"
	AuthServiceVerifyCodeProcedure  = "/groupwallet.v1.AuthService/VerifyCode"
)

// AuthServiceHandler is implemented by servers of AuthService.
// It exchanges phone verification codes for session tokens.
type AuthServiceHandler interface {
	RequestCode(context.Context, *connect.Request[RequestCodeRequest]) (*connect.Response[RequestCodeResponse], error)
	VerifyCode(context.Context, *connect.Request[VerifyCodeRequest]) (*connect.Response[VerifyCodeResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	requestCodeHandler := connect.NewUnaryHandler(AuthServiceRequestCodeProcedure, svc.RequestCode, opts...)
	verifyCodeHandler := connect.NewUnaryHandler(AuthServiceVerifyCodeProcedure, svc.VerifyCode, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRequestCodeProcedure:
			requestCodeHandler.ServeHTTP(w, r)
		case AuthServiceVerifyCodeProcedure:
			verifyCodeHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) RequestCode(context.Context, *connect.Request[RequestCodeRequest]) (*connect.Response[RequestCodeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.AuthService.RequestCode is not implemented"))
}

func (UnimplementedAuthServiceHandler) VerifyCode(context.Context, *connect.Request[VerifyCodeRequest]) (*connect.Response[VerifyCodeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupwallet.v1.AuthService.VerifyCode is not implemented"))
}

// AuthServiceClient is a client for AuthService.
type AuthServiceClient interface {
	RequestCode(context.Context, *connect.Request[RequestCodeRequest]) (*connect.Response[RequestCodeResponse], error)
	VerifyCode(context.Context, *connect.Request[VerifyCodeRequest]) (*connect.Response[VerifyCodeResponse], error)
}

// NewAuthServiceClient constructs a client for AuthService. baseURL is the server
// root, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &authServiceClient{
		requestCode: connect.NewClient[RequestCodeRequest, RequestCodeResponse](httpClient, baseURL+AuthServiceRequestCodeProcedure, opts...),
		verifyCode:  connect.NewClient[VerifyCodeRequest, VerifyCodeResponse](httpClient, baseURL+AuthServiceVerifyCodeProcedure, opts...),
	}
}

type authServiceClient struct {
	requestCode *connect.Client[RequestCodeRequest, RequestCodeResponse]
	verifyCode  *connect.Client[VerifyCodeRequest, VerifyCodeResponse]
}

func (c *authServiceClient) RequestCode(ctx context.Context, req *connect.Request[RequestCodeRequest]) (*connect.Response[RequestCodeResponse], error) {
	return c.requestCode.CallUnary(ctx, req)
}

func (c *authServiceClient) VerifyCode(ctx context.Context, req *connect.Request[VerifyCodeRequest]) (*connect.Response[VerifyCodeResponse], error) {
	return c.verifyCode.CallUnary(ctx, req)
}
