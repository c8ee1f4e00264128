package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jengzang/tours-backend-go/internal/database"
	"github.com/jengzang/tours-backend-go/internal/database/dbtest"
	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/repository"
)

const (
	editor   = "editor-1"
	outsider = "outsider-1"
)

type fixture struct {
	db       *database.DB
	tourRepo *repository.TourRepository
	poiRepo  *repository.POIRepository
	members  *repository.MembershipRepository
	notifier *ChangeNotifier
	cache    *memoryCache
	tours    *TourService
	pois     *POIService
	projects *ProjectService

	groupID   int64
	projectID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := dbtest.Open(t)

	f := &fixture{
		db:       db,
		tourRepo: repository.NewTourRepository(db),
		poiRepo:  repository.NewPOIRepository(db),
		members:  repository.NewMembershipRepository(db),
		notifier: NewChangeNotifier(),
		cache:    newMemoryCache(),
	}
	projectRepo := repository.NewProjectRepository(db)
	checker := NewMembershipChecker(f.members)

	f.pois = NewPOIService(db, f.tourRepo, f.poiRepo, checker, f.notifier)
	f.tours = NewTourService(db, f.tourRepo, projectRepo, f.poiRepo, f.pois, checker, f.notifier, f.cache)
	f.projects = NewProjectService(projectRepo, checker)

	f.notifier.Subscribe(NewTourGeometryUpdater(f.tourRepo, f.poiRepo).HandleChange)
	f.notifier.OnCommitted(f.tours.InvalidatePublished)

	var err error
	f.groupID, err = f.members.CreateGroup(ctx, "editors")
	require.NoError(t, err)
	require.NoError(t, f.members.AddMember(ctx, f.groupID, editor))

	project, err := f.projects.Create(ctx, editor, models.CreateProjectRequest{
		GroupID: f.groupID,
		Title:   "Athens",
		Locales: models.Locales{"en", "el"},
	})
	require.NoError(t, err)
	f.projectID = project.ID

	return f
}

func (f *fixture) newTour(t *testing.T, title string) int64 {
	t.Helper()
	tour, err := f.tours.Create(context.Background(), editor, models.CreateTourRequest{
		ProjectID: f.projectID,
		Title:     text(title),
	})
	require.NoError(t, err)
	return tour.ID
}

func (f *fixture) addPOI(t *testing.T, tourID int64, title string, coords *models.Coordinates) *models.POI {
	t.Helper()
	poi, err := f.pois.Create(context.Background(), editor, models.CreatePOIRequest{
		TourID:      tourID,
		Title:       text(title),
		Coordinates: coords,
	})
	require.NoError(t, err)
	return poi
}

// listPOIs returns the POIs of a tour sorted by order
func (f *fixture) listPOIs(t *testing.T, tourID int64) []models.POI {
	t.Helper()
	pois, err := f.poiRepo.ListByTour(context.Background(), tourID)
	require.NoError(t, err)
	return pois
}

func (f *fixture) tour(t *testing.T, tourID int64) *models.Tour {
	t.Helper()
	tour, err := f.tourRepo.GetByID(context.Background(), tourID)
	require.NoError(t, err)
	require.NotNil(t, tour)
	return tour
}

func text(s string) models.Multilingual {
	return models.Multilingual{"en": s}
}

func titles(pois []models.POI) []string {
	out := make([]string, len(pois))
	for i, p := range pois {
		out[i], _ = p.Title["en"].(string)
	}
	return out
}

func orders(pois []models.POI) []int {
	out := make([]int, len(pois))
	for i, p := range pois {
		out[i] = p.Order
	}
	return out
}

func at(lat, long float64) *models.Coordinates {
	return &models.Coordinates{Lat: lat, Long: long}
}

// memoryCache is an in-process TourCache recording invalidations
type memoryCache struct {
	mu          sync.Mutex
	tours       map[int64]*models.TourDetail
	invalidated []int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{tours: make(map[int64]*models.TourDetail)}
}

func (c *memoryCache) Get(_ context.Context, id int64) (*models.TourDetail, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tours[id]
	return t, ok, nil
}

func (c *memoryCache) Set(_ context.Context, t *models.TourDetail) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tours[t.ID] = t
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tours, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func (c *memoryCache) cached(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tours[id]
	return ok
}
