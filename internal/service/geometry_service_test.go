package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/tours-backend-go/internal/models"
)

func TestComputeGeometry(t *testing.T) {
	g := ComputeGeometry([]models.Coordinates{
		{Lat: 37.9838, Long: 23.7275},
		{Lat: 37.9840, Long: 23.7280},
	})
	require.NotNil(t, g.BoundingBox)
	require.NotNil(t, g.Center)

	assert.Equal(t, models.BoundingBox{
		{Lat: 37.9838, Long: 23.7275},
		{Lat: 37.9840, Long: 23.7280},
	}, *g.BoundingBox)
	assert.InDelta(t, 37.9839, g.Center.Lat, 1e-9)
	assert.InDelta(t, 23.72775, g.Center.Long, 1e-9)
}

func TestComputeGeometryEmpty(t *testing.T) {
	assert.Equal(t, models.TourGeometry{}, ComputeGeometry(nil))

	// out-of-range coordinates never contribute
	assert.Equal(t, models.TourGeometry{}, ComputeGeometry([]models.Coordinates{{Lat: 120, Long: 0}}))
}

func TestComputeGeometryIsRepeatable(t *testing.T) {
	coords := []models.Coordinates{
		{Lat: 37.97182, Long: 23.72613},
		{Lat: 37.97583, Long: 23.73411},
		{Lat: 37.96911, Long: 23.72011},
	}
	reversed := []models.Coordinates{coords[2], coords[1], coords[0]}

	assert.Equal(t, ComputeGeometry(coords), ComputeGeometry(reversed))
}
