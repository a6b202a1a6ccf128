package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCode is returned for wrong, expired, exhausted or reused codes.
var ErrInvalidCode = errors.New("invalid or expired verification code")

const (
	codeDigits  = 6
	maxAttempts = 5
)

// Sender delivers a verification code to a phone.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender writes codes to the log. For development only.
type LogSender struct{}

// Send logs the code.
func (LogSender) Send(_ context.Context, phone, code string) error {
	slog.Info("Verification code issued", "phone", phone, "code", code)
	return nil
}

type pendingCode struct {
	hash      []byte
	expiresAt time.Time
	attempts  int
}

// OTPAuthenticator issues short-lived numeric codes, stored only as bcrypt
// hashes. Each code can be verified once.
type OTPAuthenticator struct {
	sender Sender
	ttl    time.Duration
	cost   int
	now    func() time.Time

	mu    sync.Mutex
	codes map[string]*pendingCode
}

var _ Authenticator = (*OTPAuthenticator)(nil)

// NewOTPAuthenticator returns an authenticator whose codes expire after ttl.
func NewOTPAuthenticator(sender Sender, ttl time.Duration) *OTPAuthenticator {
	return &OTPAuthenticator{
		sender: sender,
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		codes:  make(map[string]*pendingCode),
	}
}

// RequestCode generates, stores and sends a code for phone.
func (a *OTPAuthenticator) RequestCode(ctx context.Context, phone string) error {
	phone, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), a.cost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	a.mu.Lock()
	a.sweep()
	a.codes[phone] = &pendingCode{hash: hash, expiresAt: a.now().Add(a.ttl)}
	a.mu.Unlock()

	if err := a.sender.Send(ctx, phone, code); err != nil {
		a.mu.Lock()
		delete(a.codes, phone)
		a.mu.Unlock()
		return fmt.Errorf("failed to send code: %w", err)
	}
	return nil
}

// VerifyCode checks code against the outstanding code for phone.
func (a *OTPAuthenticator) VerifyCode(_ context.Context, phone, code string) (Identity, error) {
	phone, err := NormalizePhone(phone)
	if err != nil {
		return Identity{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	pending, ok := a.codes[phone]
	if !ok {
		return Identity{}, ErrInvalidCode
	}
	if !a.now().Before(pending.expiresAt) {
		delete(a.codes, phone)
		return Identity{}, ErrInvalidCode
	}
	if err := bcrypt.CompareHashAndPassword(pending.hash, []byte(code)); err != nil {
		pending.attempts++
		if pending.attempts >= maxAttempts {
			delete(a.codes, phone)
		}
		return Identity{}, ErrInvalidCode
	}

	delete(a.codes, phone)
	return Identity{MemberID: MemberID(phone), Phone: phone}, nil
}

// sweep drops expired codes. Caller holds a.mu.
func (a *OTPAuthenticator) sweep() {
	now := a.now()
	for phone, p := range a.codes {
		if !now.Before(p.expiresAt) {
			delete(a.codes, phone)
		}
	}
}

func generateCode() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
