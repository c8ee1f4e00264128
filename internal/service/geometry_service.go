package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/tours-backend-go/internal/metrics"
	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/repository"
	"github.com/jengzang/tours-backend-go/internal/spatial"
)

// TourGeometryUpdater keeps a tour's bounding box and center in line with
// the coordinates of its POIs
type TourGeometryUpdater struct {
	tours *repository.TourRepository
	pois  *repository.POIRepository
}

// NewTourGeometryUpdater creates a new geometry updater
func NewTourGeometryUpdater(tours *repository.TourRepository, pois *repository.POIRepository) *TourGeometryUpdater {
	return &TourGeometryUpdater{tours: tours, pois: pois}
}

// Recompute aggregates the coordinates of every POI in the tour and writes
// the result onto the tour, clearing both fields when no POI has coordinates.
func (u *TourGeometryUpdater) Recompute(ctx context.Context, tx *sqlx.Tx, tourID int64) (models.TourGeometry, error) {
	coords, err := u.pois.WithTx(tx).CoordinatesByTour(ctx, tourID)
	if err != nil {
		return models.TourGeometry{}, err
	}

	geometry := ComputeGeometry(coords)
	if err := u.tours.WithTx(tx).UpdateGeometry(ctx, tourID, geometry); err != nil {
		return models.TourGeometry{}, fmt.Errorf("failed to recompute geometry of tour %d: %w", tourID, err)
	}

	metrics.GeometryRecomputes.Inc()
	return geometry, nil
}

// HandleChange is the ChangeNotifier subscriber; it recomputes on every POI change
func (u *TourGeometryUpdater) HandleChange(ctx context.Context, tx *sqlx.Tx, ev ChangeEvent) error {
	if !ev.Kind.AffectsPOIs() {
		return nil
	}
	_, err := u.Recompute(ctx, tx, ev.TourID)
	return err
}

// ComputeGeometry returns the bounding box and center of the given coordinates.
// Both are nil when coords holds no valid point.
func ComputeGeometry(coords []models.Coordinates) models.TourGeometry {
	points := make([]spatial.Point, len(coords))
	for i, c := range coords {
		points[i] = spatial.Point{Lat: c.Lat, Lon: c.Long}
	}

	summary, ok := spatial.Summarize(points)
	if !ok {
		return models.TourGeometry{}
	}

	return models.TourGeometry{
		BoundingBox: &models.BoundingBox{
			{Lat: summary.Bounds.Min.Lat, Long: summary.Bounds.Min.Lon},
			{Lat: summary.Bounds.Max.Lat, Long: summary.Bounds.Max.Lon},
		},
		Center: &models.Coordinates{Lat: summary.Center.Lat, Long: summary.Center.Lon},
	}
}
