// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/groupwallet/internal/models"
)

// Store persists Group aggregates. A group is always loaded and saved whole,
// together with its members, transactions and votes.
//
// Implementations report missing groups with apperr.NotFound, duplicate join
// codes with apperr.Conflict, and any infrastructure failure with
// apperr.Unavailable.
//
// Returned groups are owned by the caller; mutating them has no effect until
// SaveGroup is called.
type Store interface {
	// CreateGroup persists a new group. Fails with Conflict if the code is taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupByCode retrieves a group by its join code.
	GetGroupByCode(ctx context.Context, code string) (*models.Group, error)

	// SaveGroup replaces the stored aggregate with group.
	SaveGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group and everything it owns.
	DeleteGroup(ctx context.Context, groupID string) error

	// ListGroupsByPhone returns the groups that have a member with phone,
	// oldest first.
	ListGroupsByPhone(ctx context.Context, phone string) ([]*models.Group, error)

	// Close releases any resources held by the store.
	Close() error
}
