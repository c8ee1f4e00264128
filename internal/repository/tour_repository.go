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

var tourColumns = []string{
	"id", "project_id", "title", "description", "is_public",
	"bounding_box", "center", "distance_meters", "duration_minutes",
	"locales", "guided", "created_at", "updated_at",
}

const tourPOICount = "(SELECT COUNT(*) FROM pois p WHERE p.tour_id = t.id) AS total_pois"

// TourRepository handles database operations for tours
type TourRepository struct {
	db *database.DB
	q  Queryer
}

// NewTourRepository creates a new tour repository
func NewTourRepository(db *database.DB) *TourRepository {
	return &TourRepository{db: db, q: db}
}

// WithTx returns a repository bound to tx
func (r *TourRepository) WithTx(tx *sqlx.Tx) *TourRepository {
	return &TourRepository{db: r.db, q: tx}
}

// Create inserts a tour; derived geometry starts empty
func (r *TourRepository) Create(ctx context.Context, t *models.Tour) error {
	now := time.Now().UTC()
	query := r.q.Rebind(`
		INSERT INTO tours (
			project_id, title, description, is_public, distance_meters,
			duration_minutes, locales, guided, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.q.QueryRowxContext(ctx, query,
		t.ProjectID, t.Title, t.Description, t.IsPublic, t.DistanceMeters,
		t.DurationMinutes, t.Locales, t.Guided, now, now,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}

	t.BoundingBox, t.Center = nil, nil
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

// GetByID retrieves a tour by ID, or nil if it does not exist
func (r *TourRepository) GetByID(ctx context.Context, id int64) (*models.Tour, error) {
	query := r.q.Rebind("SELECT " + columns("", tourColumns) + " FROM tours WHERE id = ?")

	var t models.Tour
	err := sqlx.GetContext(ctx, r.q, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}
	return &t, nil
}

// Lock takes the exclusive per-tour lock held until the transaction ends.
// It reports false when the tour no longer exists. Must run inside a transaction.
func (r *TourRepository) Lock(ctx context.Context, id int64) (bool, error) {
	query := r.q.Rebind("SELECT id FROM tours WHERE id = ?" + r.db.LockClause())

	var locked int64
	err := r.q.QueryRowxContext(ctx, query, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to lock tour %d: %w", id, err)
	}
	return true, nil
}

// Update writes the client-editable fields of a tour
func (r *TourRepository) Update(ctx context.Context, t *models.Tour) error {
	t.UpdatedAt = time.Now().UTC()
	query := r.q.Rebind(`
		UPDATE tours SET
			title = ?, description = ?, is_public = ?, distance_meters = ?,
			duration_minutes = ?, locales = ?, guided = ?, updated_at = ?
		WHERE id = ?`)

	_, err := r.q.ExecContext(ctx, query,
		t.Title, t.Description, t.IsPublic, t.DistanceMeters,
		t.DurationMinutes, t.Locales, t.Guided, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tour: %w", err)
	}
	return nil
}

// UpdateGeometry overwrites the derived bounding box and center
func (r *TourRepository) UpdateGeometry(ctx context.Context, id int64, g models.TourGeometry) error {
	query := r.q.Rebind("UPDATE tours SET bounding_box = ?, center = ?, updated_at = ? WHERE id = ?")

	if _, err := r.q.ExecContext(ctx, query, g.BoundingBox, g.Center, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to update tour geometry: %w", err)
	}
	return nil
}

// Delete removes a tour
func (r *TourRepository) Delete(ctx context.Context, id int64) error {
	query := r.q.Rebind("DELETE FROM tours WHERE id = ?")
	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	return nil
}

// ListForUser retrieves tours of projects whose group the user belongs to
func (r *TourRepository) ListForUser(ctx context.Context, userID string, filter models.TourFilter) ([]models.TourSummary, int64, error) {
	where := " FROM tours t" +
		" JOIN projects pr ON pr.id = t.project_id" +
		" JOIN user_group_members m ON m.group_id = pr.group_id" +
		" WHERE m.user_id = ?"
	args := []interface{}{userID}
	if filter.ProjectID > 0 {
		where += " AND t.project_id = ?"
		args = append(args, filter.ProjectID)
	}

	var total int64
	if err := sqlx.GetContext(ctx, r.q, &total, r.q.Rebind("SELECT COUNT(*)"+where), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count tours: %w", err)
	}

	query := "SELECT " + columns("t", tourColumns) + ", " + tourPOICount + where +
		" ORDER BY t.id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, filter.Offset())

	tours := []models.TourSummary{}
	if err := sqlx.SelectContext(ctx, r.q, &tours, r.q.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query tours: %w", err)
	}
	return tours, total, nil
}

// ListPublic retrieves all public tours
func (r *TourRepository) ListPublic(ctx context.Context) ([]models.TourSummary, error) {
	query := "SELECT " + columns("t", tourColumns) + ", " + tourPOICount +
		" FROM tours t WHERE t.is_public = ? ORDER BY t.id DESC"

	tours := []models.TourSummary{}
	if err := sqlx.SelectContext(ctx, r.q, &tours, r.q.Rebind(query), true); err != nil {
		return nil, fmt.Errorf("failed to query public tours: %w", err)
	}
	return tours, nil
}
