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

var poiColumns = []string{
	"id", "tour_id", "title", "description", "coordinates", "radius",
	"external_links", "order_index", "created_at", "updated_at",
}

// POIRepository handles database operations for points of interest
type POIRepository struct {
	db *database.DB
	q  Queryer
}

// NewPOIRepository creates a new POI repository
func NewPOIRepository(db *database.DB) *POIRepository {
	return &POIRepository{db: db, q: db}
}

// WithTx returns a repository bound to tx
func (r *POIRepository) WithTx(tx *sqlx.Tx) *POIRepository {
	return &POIRepository{db: r.db, q: tx}
}

// MaxOrder returns the highest order in the tour, or 0 when it has no POIs
func (r *POIRepository) MaxOrder(ctx context.Context, tourID int64) (int, error) {
	query := r.q.Rebind("SELECT COALESCE(MAX(order_index), 0) FROM pois WHERE tour_id = ?")

	var maxOrder int
	if err := sqlx.GetContext(ctx, r.q, &maxOrder, query, tourID); err != nil {
		return 0, fmt.Errorf("failed to read max order of tour %d: %w", tourID, err)
	}
	return maxOrder, nil
}

// Create inserts a POI with the order already assigned
func (r *POIRepository) Create(ctx context.Context, p *models.POI) error {
	now := time.Now().UTC()
	query := r.q.Rebind(`
		INSERT INTO pois (
			tour_id, title, description, coordinates, radius,
			external_links, order_index, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.q.QueryRowxContext(ctx, query,
		p.TourID, p.Title, p.Description, p.Coordinates, p.Radius,
		p.ExternalLinks, p.Order, now, now,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create poi: %w", err)
	}

	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// GetByID retrieves a POI by ID, or nil if it does not exist
func (r *POIRepository) GetByID(ctx context.Context, id int64) (*models.POI, error) {
	query := r.q.Rebind("SELECT " + columns("", poiColumns) + " FROM pois WHERE id = ?")

	var p models.POI
	err := sqlx.GetContext(ctx, r.q, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poi: %w", err)
	}
	return &p, nil
}

// ListByTour retrieves the POIs of a tour sorted by order
func (r *POIRepository) ListByTour(ctx context.Context, tourID int64) ([]models.POI, error) {
	query := r.q.Rebind("SELECT " + columns("", poiColumns) + " FROM pois WHERE tour_id = ? ORDER BY order_index, id")

	pois := []models.POI{}
	if err := sqlx.SelectContext(ctx, r.q, &pois, query, tourID); err != nil {
		return nil, fmt.Errorf("failed to list pois of tour %d: %w", tourID, err)
	}
	return pois, nil
}

// IDsByTour returns the ids of all POIs in a tour
func (r *POIRepository) IDsByTour(ctx context.Context, tourID int64) ([]int64, error) {
	query := r.q.Rebind("SELECT id FROM pois WHERE tour_id = ? ORDER BY order_index")

	ids := []int64{}
	if err := sqlx.SelectContext(ctx, r.q, &ids, query, tourID); err != nil {
		return nil, fmt.Errorf("failed to list poi ids of tour %d: %w", tourID, err)
	}
	return ids, nil
}

// CoordinatesByTour returns the coordinates of the POIs in a tour that have them
func (r *POIRepository) CoordinatesByTour(ctx context.Context, tourID int64) ([]models.Coordinates, error) {
	query := r.q.Rebind("SELECT coordinates FROM pois WHERE tour_id = ? AND coordinates IS NOT NULL")

	coords := []models.Coordinates{}
	if err := sqlx.SelectContext(ctx, r.q, &coords, query, tourID); err != nil {
		return nil, fmt.Errorf("failed to read coordinates of tour %d: %w", tourID, err)
	}
	return coords, nil
}

// Orders returns the id/order pairs of a tour sorted by order
func (r *POIRepository) Orders(ctx context.Context, tourID int64) ([]models.POIOrder, error) {
	query := r.q.Rebind("SELECT id, order_index FROM pois WHERE tour_id = ? ORDER BY order_index")

	orders := []models.POIOrder{}
	if err := sqlx.SelectContext(ctx, r.q, &orders, query, tourID); err != nil {
		return nil, fmt.Errorf("failed to read orders of tour %d: %w", tourID, err)
	}
	return orders, nil
}

// Update writes the client-editable fields of a POI. Tour and order are untouched.
func (r *POIRepository) Update(ctx context.Context, p *models.POI) error {
	p.UpdatedAt = time.Now().UTC()
	query := r.q.Rebind(`
		UPDATE pois SET
			title = ?, description = ?, coordinates = ?, radius = ?,
			external_links = ?, updated_at = ?
		WHERE id = ? AND tour_id = ?`)

	_, err := r.q.ExecContext(ctx, query,
		p.Title, p.Description, p.Coordinates, p.Radius,
		p.ExternalLinks, p.UpdatedAt, p.ID, p.TourID,
	)
	if err != nil {
		return fmt.Errorf("failed to update poi: %w", err)
	}
	return nil
}

// Delete removes a POI and reports whether a row was deleted
func (r *POIRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := r.q.Rebind("DELETE FROM pois WHERE id = ?")

	res, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete poi: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

// CloseGap decrements the order of every POI in the tour placed after the
// given order, in a single statement
func (r *POIRepository) CloseGap(ctx context.Context, tourID int64, after int) (int64, error) {
	query := r.q.Rebind("UPDATE pois SET order_index = order_index - 1 WHERE tour_id = ? AND order_index > ?")

	res, err := r.q.ExecContext(ctx, query, tourID, after)
	if err != nil {
		return 0, fmt.Errorf("failed to renumber pois of tour %d: %w", tourID, err)
	}
	return res.RowsAffected()
}

// SetOrder assigns an order to one POI, scoped to its tour
func (r *POIRepository) SetOrder(ctx context.Context, tourID, id int64, order int) error {
	query := r.q.Rebind("UPDATE pois SET order_index = ? WHERE id = ? AND tour_id = ?")

	res, err := r.q.ExecContext(ctx, query, order, id, tourID)
	if err != nil {
		return fmt.Errorf("failed to set order of poi %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("poi %d is not in tour %d", id, tourID)
	}
	return nil
}

// CountByTour returns the number of POIs in a tour
func (r *POIRepository) CountByTour(ctx context.Context, tourID int64) (int, error) {
	query := r.q.Rebind("SELECT COUNT(*) FROM pois WHERE tour_id = ?")

	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, query, tourID); err != nil {
		return 0, fmt.Errorf("failed to count pois of tour %d: %w", tourID, err)
	}
	return n, nil
}
