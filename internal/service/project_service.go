package service

import (
	"context"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/repository"
	"github.com/jengzang/tours-backend-go/internal/validation"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	repo    *repository.ProjectRepository
	members *MembershipChecker
}

// NewProjectService creates a new project service
func NewProjectService(repo *repository.ProjectRepository, members *MembershipChecker) *ProjectService {
	return &ProjectService{repo: repo, members: members}
}

// Create creates a project owned by one of the principal's groups
func (s *ProjectService) Create(ctx context.Context, userID string, req models.CreateProjectRequest) (*models.Project, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.members.RequireGroup(ctx, userID, req.GroupID); err != nil {
		return nil, err
	}

	project := &models.Project{
		GroupID:     req.GroupID,
		Title:       req.Title,
		Description: req.Description,
		Locales:     req.Locales,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, apperr.Internal(err, "Failed to create project")
	}
	return project, nil
}

// Get retrieves a project the principal can access
func (s *ProjectService) Get(ctx context.Context, userID string, id int64) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to get project")
	}
	if project == nil {
		return nil, apperr.NotFound("Project %d not found", id)
	}
	if err := s.members.RequireProject(ctx, userID, id); err != nil {
		return nil, err
	}
	return project, nil
}

// List retrieves the projects of the principal's groups
func (s *ProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to list projects")
	}
	return projects, nil
}
