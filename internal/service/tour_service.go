package service

import (
	"context"
	"math"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/cache"
	"github.com/jengzang/tours-backend-go/internal/database"
	"github.com/jengzang/tours-backend-go/internal/logging"
	"github.com/jengzang/tours-backend-go/internal/metrics"
	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/repository"
	"github.com/jengzang/tours-backend-go/internal/spatial"
	"github.com/jengzang/tours-backend-go/internal/validation"
)

// TourService handles business logic for tours
type TourService struct {
	db       *database.DB
	tours    *repository.TourRepository
	projects *repository.ProjectRepository
	pois     *repository.POIRepository
	poiSvc   *POIService
	members  *MembershipChecker
	notifier *ChangeNotifier
	cache    cache.TourCache
}

// NewTourService creates a new tour service
func NewTourService(
	db *database.DB,
	tours *repository.TourRepository,
	projects *repository.ProjectRepository,
	pois *repository.POIRepository,
	poiSvc *POIService,
	members *MembershipChecker,
	notifier *ChangeNotifier,
	tourCache cache.TourCache,
) *TourService {
	return &TourService{
		db:       db,
		tours:    tours,
		projects: projects,
		pois:     pois,
		poiSvc:   poiSvc,
		members:  members,
		notifier: notifier,
		cache:    tourCache,
	}
}

// Create creates a tour under a project. Geometry starts empty.
func (s *TourService) Create(ctx context.Context, userID string, req models.CreateTourRequest) (*models.Tour, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to get project")
	}
	if project == nil {
		return nil, apperr.NotFound("Project %d not found", req.ProjectID)
	}
	if err := s.members.RequireProject(ctx, userID, project.ID); err != nil {
		return nil, err
	}

	tour := &models.Tour{
		ProjectID:       project.ID,
		Title:           req.Title,
		Description:     req.Description,
		IsPublic:        req.IsPublic,
		DistanceMeters:  req.DistanceMeters,
		DurationMinutes: req.DurationMinutes,
		Locales:         req.Locales,
		Guided:          req.Guided,
	}
	if len(tour.Locales) == 0 {
		tour.Locales = project.Locales
	}

	if err := s.tours.Create(ctx, tour); err != nil {
		return nil, apperr.Internal(err, "Failed to create tour")
	}

	logging.Ctx(ctx).Info().Int64("tour_id", tour.ID).Int64("project_id", project.ID).Msg("Tour created")
	return tour, nil
}

// Get retrieves a tour with its POIs in order
func (s *TourService) Get(ctx context.Context, userID string, id int64) (*models.TourDetail, error) {
	tour, err := authorizeTour(ctx, s.tours, s.members, userID, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, tour)
}

func (s *TourService) detail(ctx context.Context, tour *models.Tour) (*models.TourDetail, error) {
	pois, err := s.pois.ListByTour(ctx, tour.ID)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to get tour POIs")
	}
	return &models.TourDetail{Tour: *tour, TotalPOIs: len(pois), POIs: pois}, nil
}

// List retrieves the tours of the principal's groups with pagination
func (s *TourService) List(ctx context.Context, userID string, filter models.TourFilter) (*models.TourListResponse, error) {
	filter.Normalize()

	tours, total, err := s.tours.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to list tours")
	}

	return &models.TourListResponse{
		Data:       tours,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

// Update edits a tour. When req.POIs is present the POIs are reordered in
// the same transaction; a rejected permutation leaves the tour untouched.
func (s *TourService) Update(ctx context.Context, userID string, id int64, req models.UpdateTourRequest) (*models.TourDetail, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	existing, err := authorizeTour(ctx, s.tours, s.members, userID, id)
	if err != nil {
		return nil, err
	}

	var inherited models.Locales
	if req.Locales != nil && len(*req.Locales) == 0 {
		project, err := s.projects.GetByID(ctx, existing.ProjectID)
		if err != nil {
			return nil, apperr.Internal(err, "Failed to get project")
		}
		if project != nil {
			inherited = project.Locales
		}
	}

	var (
		tour   *models.Tour
		events []ChangeEvent
	)
	err = s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		events = events[:0]

		tours := s.tours.WithTx(tx)
		if err := lockTour(ctx, tours, id, "update_tour"); err != nil {
			return err
		}

		current, err := tours.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperr.NotFound("Tour %d not found", id)
		}
		applyTourUpdate(current, req, inherited)
		if err := tours.Update(ctx, current); err != nil {
			return err
		}

		ev := ChangeEvent{Kind: TourUpdated, TourID: id}
		if err := s.notifier.Publish(ctx, tx, ev); err != nil {
			return err
		}
		events = append(events, ev)

		if req.POIs != nil {
			if _, err := s.poiSvc.reorderLocked(ctx, tx, id, req.POIs); err != nil {
				return err
			}
			ev := ChangeEvent{Kind: POIsReordered, TourID: id}
			if err := s.notifier.Publish(ctx, tx, ev); err != nil {
				return err
			}
			events = append(events, ev)
		}

		// re-read so the returned geometry reflects the recompute
		tour, err = tours.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, wrapInternal(err, "Failed to update tour")
	}

	s.notifier.Committed(ctx, events...)
	return s.detail(ctx, tour)
}

func applyTourUpdate(t *models.Tour, req models.UpdateTourRequest, inherited models.Locales) {
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.IsPublic != nil {
		t.IsPublic = *req.IsPublic
	}
	if req.DistanceMeters != nil {
		t.DistanceMeters = req.DistanceMeters
	}
	if req.DurationMinutes != nil {
		t.DurationMinutes = req.DurationMinutes
	}
	if req.Guided != nil {
		t.Guided = *req.Guided
	}
	if req.Locales != nil {
		t.Locales = *req.Locales
		if len(t.Locales) == 0 && inherited != nil {
			t.Locales = inherited
		}
	}
}

// Delete removes a tour. Public tours and tours that still have POIs are refused.
func (s *TourService) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := authorizeTour(ctx, s.tours, s.members, userID, id); err != nil {
		return err
	}

	ev := ChangeEvent{Kind: TourDeleted, TourID: id}
	err := s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		tours := s.tours.WithTx(tx)
		if err := lockTour(ctx, tours, id, "delete_tour"); err != nil {
			return err
		}

		current, err := tours.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperr.NotFound("Tour %d not found", id)
		}
		if current.IsPublic {
			return apperr.Validation("Cannot delete a public tour.")
		}

		n, err := s.pois.WithTx(tx).CountByTour(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Validation("Cannot delete a tour with POIs.")
		}

		if err := tours.Delete(ctx, id); err != nil {
			return err
		}
		return s.notifier.Publish(ctx, tx, ev)
	})
	if err != nil {
		return wrapInternal(err, "Failed to delete tour")
	}

	s.notifier.Committed(ctx, ev)
	logging.Ctx(ctx).Info().Int64("tour_id", id).Msg("Tour deleted")
	return nil
}

// Published returns a public tour with its POIs, served from the cache when possible
func (s *TourService) Published(ctx context.Context, id int64) (*models.TourDetail, error) {
	cached, ok, err := s.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.PublishedCacheResults.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Warn().Err(err).Int64("tour_id", id).Msg("published tour cache read failed")
	case ok:
		metrics.PublishedCacheResults.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.PublishedCacheResults.WithLabelValues("miss").Inc()
	}

	tour, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to get tour")
	}
	if tour == nil || !tour.IsPublic {
		return nil, apperr.NotFound("Tour %d not found", id)
	}

	detail, err := s.detail(ctx, tour)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, detail); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("tour_id", id).Msg("published tour cache write failed")
	}
	return detail, nil
}

// InvalidatePublished is the post-commit hook dropping a changed tour from the cache
func (s *TourService) InvalidatePublished(ctx context.Context, ev ChangeEvent) {
	if err := s.cache.Invalidate(ctx, ev.TourID); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("tour_id", ev.TourID).Msg("published tour cache invalidation failed")
	}
}

// ListPublic lists public tours. When the filter carries a point the tours
// are ordered by distance from it to their center; tours without a center
// come last.
func (s *TourService) ListPublic(ctx context.Context, filter models.PublicTourFilter) (*models.PublicTourListResponse, error) {
	if err := validation.Struct(filter); err != nil {
		return nil, err
	}
	filter.Normalize()

	summaries, err := s.tours.ListPublic(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to list public tours")
	}

	tours := make([]models.PublicTour, len(summaries))
	for i, t := range summaries {
		tours[i] = models.PublicTour{TourSummary: t}
	}

	if filter.Lat != nil && filter.Long != nil {
		origin := spatial.Point{Lat: *filter.Lat, Lon: *filter.Long}
		for i := range tours {
			if c := tours[i].Center; c != nil {
				d := origin.DistanceTo(spatial.Point{Lat: c.Lat, Lon: c.Long})
				tours[i].DistanceFromMeters = &d
			}
		}
		sort.SliceStable(tours, func(i, j int) bool {
			di, dj := tours[i].DistanceFromMeters, tours[j].DistanceFromMeters
			if di == nil || dj == nil {
				return di != nil && dj == nil
			}
			return *di < *dj
		})
	}

	total := int64(len(tours))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(tours) {
		start = len(tours)
	}
	end := start + filter.PageSize
	if end > len(tours) {
		end = len(tours)
	}

	return &models.PublicTourListResponse{
		Data:       tours[start:end],
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

func totalPages(total int64, pageSize int) int {
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
