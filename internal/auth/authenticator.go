package auth

import (
	"context"
)

// Identity is the authenticated caller: a stable member ID bound to a phone.
type Identity struct {
	MemberID string
	Phone    string
}

// Authenticator proves control of a phone number. Implementations issue a
// one-time code out of band and later verify it.
type Authenticator interface {
	// RequestCode issues a fresh code for phone, replacing any outstanding one.
	RequestCode(ctx context.Context, phone string) error

	// VerifyCode consumes the outstanding code for phone. Returns
	// ErrInvalidCode if it does not match, has expired, or was already used.
	VerifyCode(ctx context.Context, phone, code string) (Identity, error)
}
