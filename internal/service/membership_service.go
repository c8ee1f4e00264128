package service

import (
	"context"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/repository"
)

// MembershipChecker answers whether a principal may edit a project's content.
// Access is granted to members of the group owning the project.
type MembershipChecker struct {
	repo *repository.MembershipRepository
}

// NewMembershipChecker creates a new membership checker
func NewMembershipChecker(repo *repository.MembershipRepository) *MembershipChecker {
	return &MembershipChecker{repo: repo}
}

// CanEditProject reports whether userID belongs to the group owning the project
func (m *MembershipChecker) CanEditProject(ctx context.Context, userID string, projectID int64) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return m.repo.IsProjectMember(ctx, projectID, userID)
}

// RequireProject fails with a permission error unless userID may edit the project
func (m *MembershipChecker) RequireProject(ctx context.Context, userID string, projectID int64) error {
	ok, err := m.CanEditProject(ctx, userID, projectID)
	if err != nil {
		return apperr.Internal(err, "Failed to check permissions")
	}
	if !ok {
		return apperr.Permission("You are not a member of the group owning this project")
	}
	return nil
}

// RequireGroup fails with a permission error unless userID belongs to the group
func (m *MembershipChecker) RequireGroup(ctx context.Context, userID string, groupID int64) error {
	ok, err := m.repo.IsGroupMember(ctx, groupID, userID)
	if err != nil {
		return apperr.Internal(err, "Failed to check permissions")
	}
	if !ok {
		return apperr.Permission("You are not a member of this group")
	}
	return nil
}
