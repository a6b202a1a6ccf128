package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/groupwallet/internal/auth"
	pb "github.com/mmynk/groupwallet/pkg/walletrpc"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	pb.UnimplementedAuthServiceHandler
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	codeTTL       time.Duration
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, codeTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		codeTTL:       codeTTL,
		logger:        logger,
	}
}

// RequestCode sends a one-time code to the phone.
func (s *AuthService) RequestCode(ctx context.Context, req *connect.Request[pb.RequestCodeRequest]) (*connect.Response[pb.RequestCodeResponse], error) {
	s.logger.Info("RequestCode request", "phone", req.Msg.Phone)

	if err := s.authenticator.RequestCode(ctx, req.Msg.Phone); err != nil {
		return nil, fail("RequestCode", err, "phone", req.Msg.Phone)
	}

	return connect.NewResponse(&pb.RequestCodeResponse{
		ExpiresInSeconds: int64(s.codeTTL / time.Second),
	}), nil
}

// VerifyCode exchanges a valid code for a session token.
func (s *AuthService) VerifyCode(ctx context.Context, req *connect.Request[pb.VerifyCodeRequest]) (*connect.Response[pb.VerifyCodeResponse], error) {
	s.logger.Info("VerifyCode request", "phone", req.Msg.Phone)

	if err := requireField("code", req.Msg.Code); err != nil {
		return nil, err
	}

	id, err := s.authenticator.VerifyCode(ctx, req.Msg.Phone, req.Msg.Code)
	if errors.Is(err, auth.ErrInvalidCode) {
		s.logger.Warn("Verification failed", "phone", req.Msg.Phone)
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if err != nil {
		return nil, fail("VerifyCode", err, "phone", req.Msg.Phone)
	}

	token, expiresAt, err := s.jwtManager.Generate(id)
	if err != nil {
		s.logger.Error("Failed to generate token", "member_id", id.MemberID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Member verified", "member_id", id.MemberID)
	return connect.NewResponse(&pb.VerifyCodeResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		MemberID:  id.MemberID,
		Phone:     id.Phone,
	}), nil
}
