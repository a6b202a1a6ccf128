package auth

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/groupwallet/internal/apperr"
)

// memberNamespace scopes the name-based UUIDs derived from phone numbers.
var memberNamespace = uuid.MustParse("6f1c2d4e-8a3b-5c7d-9e0f-1a2b3c4d5e6f")

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// NormalizePhone strips common separators and checks the result looks like
// a phone number: an optional leading + and 7 to 15 digits.
func NormalizePhone(raw string) (string, error) {
	phone := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if !phonePattern.MatchString(phone) {
		return "", apperr.Validation("invalid phone number %q", raw)
	}
	return phone, nil
}

// MemberID returns the stable member ID for a normalized phone. The same
// phone always maps to the same ID.
func MemberID(phone string) string {
	return uuid.NewSHA1(memberNamespace, []byte(phone)).String()
}
