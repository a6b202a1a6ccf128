// Package admin holds the group administration rules: who may change a
// group, how its threshold may move, when it may be deleted, and how
// members join.
package admin

import (
	"strings"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/calculator"
	"github.com/mmynk/groupwallet/internal/models"
)

// RequireAdmin fails with Forbidden unless requesterID administers g.
func RequireAdmin(g *models.Group, requesterID, action string) error {
	if !g.IsAdmin(requesterID) {
		return apperr.Forbidden("only the group admin can %s", action)
	}
	return nil
}

// UpdateApprovalThreshold sets a new threshold within [1, len(members)].
func UpdateApprovalThreshold(g *models.Group, threshold int, requesterID string) error {
	if err := RequireAdmin(g, requesterID, "change the approval threshold"); err != nil {
		return err
	}
	return g.SetApprovalThreshold(threshold)
}

// Rename changes the display name of the group.
func Rename(g *models.Group, name, requesterID string) error {
	if err := RequireAdmin(g, requesterID, "rename the group"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("group name is required")
	}
	g.Name = name
	return nil
}

// CheckDeletable reports whether requesterID may delete g now. A group can
// only be deleted by its admin once its balance is exactly zero.
func CheckDeletable(g *models.Group, requesterID string) error {
	if err := RequireAdmin(g, requesterID, "delete the group"); err != nil {
		return err
	}
	if balance := calculator.ComputeBalance(g); !balance.IsZero() {
		return apperr.InvalidState("balance must be zero to delete the group (current balance %s)", balance)
	}
	return nil
}

// Join adds m to g as a regular member.
func Join(g *models.Group, m models.Member) error {
	m.IsAdmin = false
	if g.HasPhone(m.Phone) {
		return apperr.Conflict("already a member of this group")
	}
	return g.AddMember(m)
}
