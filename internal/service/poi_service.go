package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/database"
	"github.com/jengzang/tours-backend-go/internal/logging"
	"github.com/jengzang/tours-backend-go/internal/metrics"
	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/repository"
	"github.com/jengzang/tours-backend-go/internal/validation"
)

// POIService handles POI lifecycle and keeps the order of POIs within a
// tour dense (1..N). Every mutation takes the tour lock first.
type POIService struct {
	db       *database.DB
	tours    *repository.TourRepository
	pois     *repository.POIRepository
	members  *MembershipChecker
	notifier *ChangeNotifier
}

// NewPOIService creates a new POI service
func NewPOIService(
	db *database.DB,
	tours *repository.TourRepository,
	pois *repository.POIRepository,
	members *MembershipChecker,
	notifier *ChangeNotifier,
) *POIService {
	return &POIService{
		db:       db,
		tours:    tours,
		pois:     pois,
		members:  members,
		notifier: notifier,
	}
}

// lockTour takes the exclusive lock on a tour for the rest of tx
func lockTour(ctx context.Context, tours *repository.TourRepository, tourID int64, op string) error {
	start := time.Now()
	ok, err := tours.Lock(ctx, tourID)
	metrics.TourLockWait.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Tour %d not found", tourID)
	}
	return nil
}

// authorizeTour loads a tour and checks the principal may edit it.
// It runs before any transaction so rejected requests have no side effects.
func authorizeTour(ctx context.Context, tours *repository.TourRepository, members *MembershipChecker, userID string, tourID int64) (*models.Tour, error) {
	tour, err := tours.GetByID(ctx, tourID)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to get tour")
	}
	if tour == nil {
		return nil, apperr.NotFound("Tour %d not found", tourID)
	}
	if err := members.RequireProject(ctx, userID, tour.ProjectID); err != nil {
		return nil, err
	}
	return tour, nil
}

// Create appends a POI to its tour with order max+1
func (s *POIService) Create(ctx context.Context, userID string, req models.CreatePOIRequest) (*models.POI, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := authorizeTour(ctx, s.tours, s.members, userID, req.TourID); err != nil {
		return nil, err
	}

	poi := &models.POI{
		TourID:        req.TourID,
		Title:         req.Title,
		Description:   req.Description,
		Coordinates:   req.Coordinates,
		Radius:        models.DefaultPOIRadius,
		ExternalLinks: req.ExternalLinks,
	}
	if req.Radius != nil {
		poi.Radius = *req.Radius
	}

	var ev ChangeEvent
	err := s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := lockTour(ctx, s.tours.WithTx(tx), req.TourID, "create"); err != nil {
			return err
		}

		pois := s.pois.WithTx(tx)
		maxOrder, err := pois.MaxOrder(ctx, req.TourID)
		if err != nil {
			return err
		}
		poi.Order = maxOrder + 1

		if err := pois.Create(ctx, poi); err != nil {
			return err
		}

		ev = ChangeEvent{Kind: POICreated, TourID: poi.TourID, POIID: poi.ID}
		return s.notifier.Publish(ctx, tx, ev)
	})
	if err != nil {
		return nil, wrapInternal(err, "Failed to create POI")
	}

	s.notifier.Committed(ctx, ev)
	logging.Ctx(ctx).Info().Int64("tour_id", poi.TourID).Int64("poi_id", poi.ID).Int("order", poi.Order).Msg("POI created")
	return poi, nil
}

// Get retrieves a POI visible to the principal
func (s *POIService) Get(ctx context.Context, userID string, id int64) (*models.POI, error) {
	poi, err := s.pois.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to get POI")
	}
	if poi == nil {
		return nil, apperr.NotFound("POI %d not found", id)
	}
	if _, err := authorizeTour(ctx, s.tours, s.members, userID, poi.TourID); err != nil {
		return nil, err
	}
	return poi, nil
}

// Update edits a POI's content. Any edit triggers a geometry recompute,
// whether or not coordinates changed.
func (s *POIService) Update(ctx context.Context, userID string, id int64, req models.UpdatePOIRequest) (*models.POI, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var (
		poi *models.POI
		ev  ChangeEvent
	)
	err = s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := lockTour(ctx, s.tours.WithTx(tx), existing.TourID, "update"); err != nil {
			return err
		}

		pois := s.pois.WithTx(tx)
		current, err := pois.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperr.NotFound("POI %d not found", id)
		}
		applyPOIUpdate(current, req)

		if err := pois.Update(ctx, current); err != nil {
			return err
		}

		poi = current
		ev = ChangeEvent{Kind: POIUpdated, TourID: current.TourID, POIID: current.ID}
		return s.notifier.Publish(ctx, tx, ev)
	})
	if err != nil {
		return nil, wrapInternal(err, "Failed to update POI")
	}

	s.notifier.Committed(ctx, ev)
	return poi, nil
}

func applyPOIUpdate(p *models.POI, req models.UpdatePOIRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Coordinates.Set {
		p.Coordinates = req.Coordinates.Value
	}
	if req.Radius != nil {
		p.Radius = *req.Radius
	}
	if req.ExternalLinks != nil {
		p.ExternalLinks = *req.ExternalLinks
	}
}

// Delete removes a POI and closes the gap it leaves in the tour's order
func (s *POIService) Delete(ctx context.Context, userID string, id int64) error {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	var ev ChangeEvent
	err = s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := lockTour(ctx, s.tours.WithTx(tx), existing.TourID, "delete"); err != nil {
			return err
		}

		// the order may have moved while we waited for the lock
		pois := s.pois.WithTx(tx)
		current, err := pois.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperr.NotFound("POI %d not found", id)
		}

		if _, err := pois.Delete(ctx, id); err != nil {
			return err
		}
		if _, err := pois.CloseGap(ctx, current.TourID, current.Order); err != nil {
			return err
		}

		ev = ChangeEvent{Kind: POIDeleted, TourID: current.TourID, POIID: id}
		return s.notifier.Publish(ctx, tx, ev)
	})
	if err != nil {
		return wrapInternal(err, "Failed to delete POI")
	}

	s.notifier.Committed(ctx, ev)
	logging.Ctx(ctx).Info().Int64("tour_id", existing.TourID).Int64("poi_id", id).Msg("POI deleted")
	return nil
}

// Reorder sets the order of every POI in the tour to its 1-based position in ids
func (s *POIService) Reorder(ctx context.Context, userID string, tourID int64, req models.ReorderRequest) ([]models.POIOrder, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := authorizeTour(ctx, s.tours, s.members, userID, tourID); err != nil {
		return nil, err
	}

	var (
		orders []models.POIOrder
		ev     ChangeEvent
	)
	err := s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := lockTour(ctx, s.tours.WithTx(tx), tourID, "reorder"); err != nil {
			return err
		}

		var err error
		orders, err = s.reorderLocked(ctx, tx, tourID, req.POIs)
		if err != nil {
			return err
		}

		ev = ChangeEvent{Kind: POIsReordered, TourID: tourID}
		return s.notifier.Publish(ctx, tx, ev)
	})
	if err != nil {
		return nil, wrapInternal(err, "Failed to reorder POIs")
	}

	s.notifier.Committed(ctx, ev)
	return orders, nil
}

// reorderLocked validates and applies a permutation. The caller holds the
// tour lock in tx and publishes the change.
func (s *POIService) reorderLocked(ctx context.Context, tx *sqlx.Tx, tourID int64, ids []int64) ([]models.POIOrder, error) {
	pois := s.pois.WithTx(tx)

	current, err := pois.IDsByTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := ValidateReorder(current, ids); err != nil {
		return nil, err
	}

	orders := make([]models.POIOrder, len(ids))
	for i, id := range ids {
		if err := pois.SetOrder(ctx, tourID, id, i+1); err != nil {
			return nil, err
		}
		orders[i] = models.POIOrder{ID: id, Order: i + 1}
	}
	return orders, nil
}

// wrapInternal passes application errors through and wraps anything else
func wrapInternal(err error, message string) error {
	if appErr := apperr.As(err); appErr.Kind != apperr.KindInternal {
		return appErr
	}
	return apperr.Internal(err, message)
}
