package models

import (
	"strings"
	"time"

	"github.com/mmynk/groupwallet/internal/apperr"
)

// Member is a person belonging to a group, identified by the stable member
// ID issued by the identity provider.
type Member struct {
	// ID is the stable member identity.
	ID string

	// Name is the display name of the member.
	Name string

	// Phone is unique within a group's member list.
	Phone string

	// IsAdmin is true only for the group creator. Informational:
	// authorization checks use Group.CreatedBy.
	IsAdmin bool

	JoinedAt time.Time
}

// NewMember builds a non-admin member.
func NewMember(id, name, phone string) (Member, error) {
	m := Member{
		ID:    strings.TrimSpace(id),
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
	if err := m.validate(); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (m Member) validate() error {
	if m.ID == "" {
		return apperr.Validation("member id is required")
	}
	if m.Phone == "" {
		return apperr.Validation("member phone is required")
	}
	return nil
}
