package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/models"
)

func TestStructAcceptsValidInput(t *testing.T) {
	radius := 0
	err := Struct(models.CreatePOIRequest{
		TourID:      1,
		Title:       models.Multilingual{"en": "Gate"},
		Coordinates: &models.Coordinates{Lat: -90, Long: 180},
		Radius:      &radius,
	})
	assert.NoError(t, err)
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	err := Struct(models.CreatePOIRequest{
		Coordinates: &models.Coordinates{Lat: 12, Long: -181},
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	fields, ok := appErr.Details["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "is required", fields["tour"])
	assert.Equal(t, "is required", fields["title"])
	assert.Equal(t, "must be a longitude between -180 and 180", fields["coordinates.long"])
	assert.NotContains(t, fields, "coordinates.lat")
}

func TestStructNullableCoordinates(t *testing.T) {
	err := Struct(models.UpdatePOIRequest{
		Coordinates: models.NullableCoordinates{Set: true, Value: &models.Coordinates{Lat: 91}},
	})
	require.Error(t, err)
	assert.Contains(t, apperr.As(err).Message, "lat")

	assert.NoError(t, Struct(models.UpdatePOIRequest{Coordinates: models.NullableCoordinates{Set: true}}))
}

func TestStructQueryFilter(t *testing.T) {
	lat, long := 95.0, 10.0
	err := Struct(models.PublicTourFilter{Lat: &lat, Long: &long})
	require.Error(t, err)
	fields := apperr.As(err).Details["fields"].(map[string]interface{})
	assert.Contains(t, fields, "lat")

	assert.NoError(t, Struct(models.PublicTourFilter{}))
}
