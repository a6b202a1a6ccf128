package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/models"
)

// CreateGroup persists a new group aggregate.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Unavailable(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, code, approval_threshold, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.Code, group.ApprovalThreshold, group.CreatedBy, toMillis(group.CreatedAt),
	)
	if isUniqueViolation(err) {
		return apperr.Conflict("group code %s already exists", group.Code)
	}
	if err != nil {
		return apperr.Unavailable(err, "failed to insert group")
	}

	if err := writeChildren(ctx, tx, group); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperr.Unavailable(err, "failed to commit group")
	}
	return nil
}

// GetGroup retrieves a group by ID, including members, transactions and votes.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Unavailable(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	group, err := loadGroup(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	return group, tx.Commit()
}

// GetGroupByCode retrieves a group by its join code.
func (s *SQLiteStore) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM groups WHERE code = ?", code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no group with code %s", code)
	}
	if err != nil {
		return nil, apperr.Unavailable(err, "failed to look up group code")
	}
	return s.GetGroup(ctx, id)
}

// SaveGroup replaces the stored aggregate: the group row is updated and
// members, transactions and votes are rewritten in one transaction.
func (s *SQLiteStore) SaveGroup(ctx context.Context, group *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Unavailable(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE groups SET name = ?, approval_threshold = ? WHERE id = ?",
		group.Name, group.ApprovalThreshold, group.ID,
	)
	if err != nil {
		return apperr.Unavailable(err, "failed to update group")
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperr.Unavailable(err, "failed to update group")
	} else if n == 0 {
		return apperr.NotFound("group not found: %s", group.ID)
	}

	// Transactions cascade to votes.
	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE group_id = ?", group.ID); err != nil {
		return apperr.Unavailable(err, "failed to clear transactions")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM members WHERE group_id = ?", group.ID); err != nil {
		return apperr.Unavailable(err, "failed to clear members")
	}
	if err := writeChildren(ctx, tx, group); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperr.Unavailable(err, "failed to commit group")
	}
	return nil
}

// DeleteGroup removes a group; members, transactions and votes cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return apperr.Unavailable(err, "failed to delete group")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err, "failed to delete group")
	}
	if n == 0 {
		return apperr.NotFound("group not found: %s", groupID)
	}
	return nil
}

// ListGroupsByPhone retrieves every group with a member using phone.
func (s *SQLiteStore) ListGroupsByPhone(ctx context.Context, phone string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id FROM groups g
		 JOIN members m ON m.group_id = g.id
		 WHERE m.phone = ?
		 ORDER BY g.created_at, g.rowid`,
		phone,
	)
	if err != nil {
		return nil, apperr.Unavailable(err, "failed to list groups by phone")
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, apperr.Unavailable(err, "failed to scan group id")
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err, "failed to iterate groups")
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		g, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func loadGroup(ctx context.Context, tx *sql.Tx, groupID string) (*models.Group, error) {
	group := &models.Group{}
	var createdAt int64
	err := tx.QueryRowContext(ctx,
		`SELECT id, name, code, approval_threshold, created_by, created_at
		 FROM groups WHERE id = ?`,
		groupID,
	).Scan(&group.ID, &group.Name, &group.Code, &group.ApprovalThreshold, &group.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("group not found: %s", groupID)
	}
	if err != nil {
		return nil, apperr.Unavailable(err, "failed to get group")
	}
	group.CreatedAt = fromMillis(createdAt)

	if group.Members, err = loadMembers(ctx, tx, groupID); err != nil {
		return nil, err
	}
	if group.Transactions, err = loadTransactions(ctx, tx, groupID); err != nil {
		return nil, err
	}
	return group, nil
}

func loadMembers(ctx context.Context, tx *sql.Tx, groupID string) ([]models.Member, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, name, phone, is_admin, joined_at
		 FROM members WHERE group_id = ? ORDER BY position`,
		groupID,
	)
	if err != nil {
		return nil, apperr.Unavailable(err, "failed to get members")
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		var joinedAt int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.IsAdmin, &joinedAt); err != nil {
			return nil, apperr.Unavailable(err, "failed to scan member")
		}
		m.JoinedAt = fromMillis(joinedAt)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err, "failed to iterate members")
	}
	return members, nil
}

// writeChildren inserts members, transactions and votes of group.
func writeChildren(ctx context.Context, tx *sql.Tx, group *models.Group) error {
	for i, m := range group.Members {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO members (group_id, id, name, phone, is_admin, position, joined_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			group.ID, m.ID, m.Name, m.Phone, m.IsAdmin, i, toMillis(m.JoinedAt),
		)
		if isUniqueViolation(err) {
			return apperr.Conflict("phone %s is already a member of this group", m.Phone)
		}
		if err != nil {
			return apperr.Unavailable(err, "failed to insert member")
		}
	}
	for i, t := range group.Transactions {
		if err := insertTransaction(ctx, tx, group.ID, i, t); err != nil {
			return fmt.Errorf("transaction %s: %w", t.ID, err)
		}
	}
	return nil
}
