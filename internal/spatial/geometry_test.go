package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeTwoPoints(t *testing.T) {
	summary, ok := Summarize([]Point{
		{Lat: 37.9838, Lon: 23.7275},
		{Lat: 37.9840, Lon: 23.7280},
	})
	require.True(t, ok)

	assert.Equal(t, Point{Lat: 37.9838, Lon: 23.7275}, summary.Bounds.Min)
	assert.Equal(t, Point{Lat: 37.9840, Lon: 23.7280}, summary.Bounds.Max)
	assert.InDelta(t, 37.9839, summary.Center.Lat, 1e-9)
	assert.InDelta(t, 23.72775, summary.Center.Lon, 1e-9)
	assert.Equal(t, 2, summary.Count)
}

func TestSummarizeAxesAreIndependent(t *testing.T) {
	// northwest and southeast corners: the box takes min/max per axis
	summary, ok := Summarize([]Point{
		{Lat: 10, Lon: -5},
		{Lat: -3, Lon: 8},
		{Lat: 4, Lon: 1},
	})
	require.True(t, ok)

	assert.Equal(t, Point{Lat: -3, Lon: -5}, summary.Bounds.Min)
	assert.Equal(t, Point{Lat: 10, Lon: 8}, summary.Bounds.Max)
	assert.InDelta(t, 11.0/3, summary.Center.Lat, 1e-12)
	assert.InDelta(t, 4.0/3, summary.Center.Lon, 1e-12)
}

func TestSummarizeEmpty(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)

	_, ok = Summarize([]Point{})
	assert.False(t, ok)
}

func TestSummarizeSkipsInvalidPoints(t *testing.T) {
	summary, ok := Summarize([]Point{
		{Lat: 91, Lon: 0},
		{Lat: 0, Lon: 181},
		{Lat: math.NaN(), Lon: 1},
		{Lat: 1, Lon: 2},
	})
	require.True(t, ok)
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, Point{Lat: 1, Lon: 2}, summary.Center)

	_, ok = Summarize([]Point{{Lat: -90.5, Lon: 0}})
	assert.False(t, ok)
}

func TestSummarizeIsOrderIndependent(t *testing.T) {
	points := []Point{
		{Lat: 37.97182, Lon: 23.72613},
		{Lat: 37.97583, Lon: 23.73411},
		{Lat: 37.97151, Lon: 23.72570},
		{Lat: 37.98011, Lon: 23.73321},
		{Lat: 37.96911, Lon: 23.72011},
	}
	want, ok := Summarize(points)
	require.True(t, ok)

	reversed := make([]Point, len(points))
	for i, p := range points {
		reversed[len(points)-1-i] = p
	}
	got, ok := Summarize(reversed)
	require.True(t, ok)

	// bit-for-bit equal, not just close
	assert.Equal(t, want, got)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	points := []Point{{Lat: 5, Lon: 5}, {Lat: 1, Lon: 1}}
	_, _ = Summarize(points)
	assert.Equal(t, []Point{{Lat: 5, Lon: 5}, {Lat: 1, Lon: 1}}, points)
}

func TestHaversineDistance(t *testing.T) {
	// one degree of latitude along a meridian
	d := HaversineDistance(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 1)

	assert.Zero(t, Point{Lat: 10, Lon: 10}.DistanceTo(Point{Lat: 10, Lon: 10}))
}
