package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/tours-backend-go/internal/database"
	"github.com/jengzang/tours-backend-go/internal/models"
)

var projectColumns = []string{
	"id", "group_id", "title", "description", "locales", "created_at", "updated_at",
}

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO projects (group_id, title, description, locales, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		p.GroupID, p.Title, p.Description, p.Locales, now, now,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// GetByID retrieves a project by ID, or nil if it does not exist
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := r.db.Rebind("SELECT " + columns("", projectColumns) + " FROM projects WHERE id = ?")

	var p models.Project
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// ListForUser retrieves the projects of every group the user belongs to
func (r *ProjectRepository) ListForUser(ctx context.Context, userID string) ([]models.Project, error) {
	query := r.db.Rebind("SELECT " + columns("p", projectColumns) +
		" FROM projects p JOIN user_group_members m ON m.group_id = p.group_id" +
		" WHERE m.user_id = ? ORDER BY p.id")

	projects := []models.Project{}
	if err := sqlx.SelectContext(ctx, r.db, &projects, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
