package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupwallet/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// MemberIDKey is the context key for the authenticated member ID.
	MemberIDKey contextKey = "member_id"
	// PhoneKey is the context key for the authenticated member's phone.
	PhoneKey contextKey = "phone"
)

// PhoneHeader carries the caller's phone when token checks are disabled.
const PhoneHeader = "X-Wallet-Phone"

// GetMemberID extracts the member ID from the context.
// Returns empty string if not found.
func GetMemberID(ctx context.Context) string {
	memberID, _ := ctx.Value(MemberIDKey).(string)
	return memberID
}

// GetPhone extracts the member phone from the context.
// Returns empty string if not found.
func GetPhone(ctx context.Context) string {
	phone, _ := ctx.Value(PhoneKey).(string)
	return phone
}

// WithIdentity returns ctx carrying id.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	ctx = context.WithValue(ctx, MemberIDKey, id.MemberID)
	return context.WithValue(ctx, PhoneKey, id.Phone)
}

// RequireAuth returns an interceptor that validates the bearer token and
// adds the member ID and phone to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = WithIdentity(ctx, auth.Identity{MemberID: claims.MemberID, Phone: claims.Phone})
			return next(ctx, req)
		}
	}
}

// TrustPhoneHeader returns an interceptor that takes the caller's identity
// from PhoneHeader without any verification. Only for local development
// with AUTH_DISABLED=true.
func TrustPhoneHeader() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			raw := req.Header().Get(PhoneHeader)
			if raw == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, errors.New(PhoneHeader+" header required"))
			}
			phone, err := auth.NormalizePhone(raw)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = WithIdentity(ctx, auth.Identity{MemberID: auth.MemberID(phone), Phone: phone})
			return next(ctx, req)
		}
	}
}
