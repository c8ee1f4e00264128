package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/models"
)

func TestCreateTourInheritsProjectLocales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inherited, err := f.tours.Create(ctx, editor, models.CreateTourRequest{ProjectID: f.projectID, Title: text("a")})
	require.NoError(t, err)
	assert.Equal(t, models.Locales{"en", "el"}, inherited.Locales)

	own, err := f.tours.Create(ctx, editor, models.CreateTourRequest{
		ProjectID: f.projectID,
		Title:     text("b"),
		Locales:   models.Locales{"de"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Locales{"de"}, own.Locales)

	_, err = f.tours.Create(ctx, outsider, models.CreateTourRequest{ProjectID: f.projectID, Title: text("c")})
	assert.True(t, apperr.IsKind(err, apperr.KindPermission))

	_, err = f.tours.Create(ctx, editor, models.CreateTourRequest{ProjectID: 404, Title: text("d")})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateTourWithReorder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tourID := f.newTour(t, "Walk")
	a := f.addPOI(t, tourID, "A", at(1, 1))
	b := f.addPOI(t, tourID, "B", at(3, 3))

	public := true
	empty := models.Locales{}
	detail, err := f.tours.Update(ctx, editor, tourID, models.UpdateTourRequest{
		IsPublic: &public,
		Locales:  &empty,
		POIs:     []int64{b.ID, a.ID},
	})
	require.NoError(t, err)

	assert.True(t, detail.IsPublic)
	assert.Equal(t, models.Locales{"en", "el"}, detail.Locales)
	assert.Equal(t, []string{"B", "A"}, titles(detail.POIs))
	require.NotNil(t, detail.Center)
	assert.Equal(t, models.Coordinates{Lat: 2, Long: 2}, *detail.Center)
}

func TestUpdateTourRejectedReorderRollsBackFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tourID := f.newTour(t, "Walk")
	a := f.addPOI(t, tourID, "A", nil)
	f.addPOI(t, tourID, "B", nil)

	guided := true
	_, err := f.tours.Update(ctx, editor, tourID, models.UpdateTourRequest{
		Guided: &guided,
		POIs:   []int64{a.ID},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	assert.False(t, f.tour(t, tourID).Guided)
	assert.Equal(t, []string{"A", "B"}, titles(f.listPOIs(t, tourID)))
}

func TestDeleteTourRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	withPOIs := f.newTour(t, "Busy")
	f.addPOI(t, withPOIs, "A", nil)
	err := f.tours.Delete(ctx, editor, withPOIs)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete a tour with POIs.", apperr.As(err).Message)

	public := f.newTour(t, "Published")
	yes := true
	_, err = f.tours.Update(ctx, editor, public, models.UpdateTourRequest{IsPublic: &yes})
	require.NoError(t, err)
	err = f.tours.Delete(ctx, editor, public)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete a public tour.", apperr.As(err).Message)

	empty := f.newTour(t, "Empty")
	require.NoError(t, f.tours.Delete(ctx, editor, empty))
	_, err = f.tours.Get(ctx, editor, empty)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListToursForMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.newTour(t, "First")
	f.newTour(t, "Second")
	f.addPOI(t, first, "A", nil)

	result, err := f.tours.List(ctx, editor, models.TourFilter{ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Data, 2)
	assert.Equal(t, first, result.Data[1].ID)
	assert.Equal(t, 1, result.Data[1].TotalPOIs)

	result, err = f.tours.List(ctx, outsider, models.TourFilter{})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Data)
}

func TestPublishedTourIsCachedAndInvalidated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tourID := f.newTour(t, "Open")

	_, err := f.tours.Published(ctx, tourID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "private tours are hidden")

	yes := true
	_, err = f.tours.Update(ctx, editor, tourID, models.UpdateTourRequest{IsPublic: &yes})
	require.NoError(t, err)

	detail, err := f.tours.Published(ctx, tourID)
	require.NoError(t, err)
	assert.Zero(t, detail.TotalPOIs)
	assert.True(t, f.cache.cached(tourID))

	f.addPOI(t, tourID, "A", at(5, 5))
	assert.False(t, f.cache.cached(tourID))

	detail, err = f.tours.Published(ctx, tourID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.TotalPOIs)
	require.NotNil(t, detail.Center)
	assert.Equal(t, models.Coordinates{Lat: 5, Long: 5}, *detail.Center)
}

func TestListPublicOrdersByDistance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	yes := true

	publish := func(title string, coords *models.Coordinates) int64 {
		id := f.newTour(t, title)
		if coords != nil {
			f.addPOI(t, id, title, coords)
		}
		_, err := f.tours.Update(ctx, editor, id, models.UpdateTourRequest{IsPublic: &yes})
		require.NoError(t, err)
		return id
	}
	far := publish("far", at(48.8566, 2.3522))
	nowhere := publish("nowhere", nil)
	near := publish("near", at(37.98, 23.72))
	f.newTour(t, "private")

	lat, long := 37.97, 23.73
	result, err := f.tours.ListPublic(ctx, models.PublicTourFilter{Lat: &lat, Long: &long})
	require.NoError(t, err)
	require.Len(t, result.Data, 3)

	assert.Equal(t, []int64{near, far, nowhere}, []int64{result.Data[0].ID, result.Data[1].ID, result.Data[2].ID})
	require.NotNil(t, result.Data[0].DistanceFromMeters)
	assert.Less(t, *result.Data[0].DistanceFromMeters, 2000.0)
	assert.Nil(t, result.Data[2].DistanceFromMeters)

	bad := 123.0
	_, err = f.tours.ListPublic(ctx, models.PublicTourFilter{Lat: &bad, Long: &long})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
