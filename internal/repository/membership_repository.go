package repository

import (
	"context"
	"fmt"

	"github.com/jengzang/tours-backend-go/internal/database"
)

// MembershipRepository reads and writes user group membership
type MembershipRepository struct {
	db *database.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *database.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// CreateGroup inserts a user group and returns its id
func (r *MembershipRepository) CreateGroup(ctx context.Context, name string) (int64, error) {
	var id int64
	query := r.db.Rebind("INSERT INTO user_groups (name) VALUES (?) RETURNING id")
	if err := r.db.QueryRowxContext(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create group %q: %w", name, err)
	}
	return id, nil
}

// AddMember adds a user to a group. Adding an existing member is a no-op.
func (r *MembershipRepository) AddMember(ctx context.Context, groupID int64, userID string) error {
	query := r.db.Rebind(`
		INSERT INTO user_group_members (group_id, user_id) VALUES (?, ?)
		ON CONFLICT (group_id, user_id) DO NOTHING`)
	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to add member to group %d: %w", groupID, err)
	}
	return nil
}

// IsGroupMember reports whether the user belongs to the group
func (r *MembershipRepository) IsGroupMember(ctx context.Context, groupID int64, userID string) (bool, error) {
	query := r.db.Rebind("SELECT COUNT(*) FROM user_group_members WHERE group_id = ? AND user_id = ?")

	var n int
	if err := r.db.GetContext(ctx, &n, query, groupID, userID); err != nil {
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return n > 0, nil
}

// IsProjectMember reports whether the user belongs to the group owning the project
func (r *MembershipRepository) IsProjectMember(ctx context.Context, projectID int64, userID string) (bool, error) {
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM projects p
		JOIN user_group_members m ON m.group_id = p.group_id
		WHERE p.id = ? AND m.user_id = ?`)

	var n int
	if err := r.db.GetContext(ctx, &n, query, projectID, userID); err != nil {
		return false, fmt.Errorf("failed to check project membership: %w", err)
	}
	return n > 0, nil
}
