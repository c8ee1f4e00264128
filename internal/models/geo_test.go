package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourGeometryJSONShape(t *testing.T) {
	bbox := BoundingBox{{Lat: 37.9838, Long: 23.7275}, {Lat: 37.984, Long: 23.728}}
	tour := Tour{ID: 1, BoundingBox: &bbox, Center: &Coordinates{Lat: 37.9839, Long: 23.72775}}

	raw, err := json.Marshal(tour)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, []interface{}{
		map[string]interface{}{"lat": 37.9838, "long": 23.7275},
		map[string]interface{}{"lat": 37.984, "long": 23.728},
	}, decoded["bounding_box"])
	assert.Equal(t, map[string]interface{}{"lat": 37.9839, "long": 23.72775}, decoded["center"])
}

func TestEmptyGeometryIsNull(t *testing.T) {
	raw, err := json.Marshal(Tour{ID: 1})
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"bounding_box":null`)
	assert.Contains(t, string(raw), `"center":null`)
}

func TestBoundingBoxScan(t *testing.T) {
	var b BoundingBox
	require.NoError(t, b.Scan([]byte(`[{"lat":1,"long":2},{"lat":3,"long":4}]`)))

	assert.Equal(t, Coordinates{Lat: 1, Long: 2}, b.SouthWest())
	assert.Equal(t, Coordinates{Lat: 3, Long: 4}, b.NorthEast())
}

func TestScanRejectsUnknownType(t *testing.T) {
	var c Coordinates
	assert.Error(t, c.Scan(42))
}

func TestLocalesNilStoresEmptyArray(t *testing.T) {
	v, err := Locales(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var l Locales
	require.NoError(t, l.Scan("[\"en\",\"el\"]"))
	assert.Equal(t, Locales{"en", "el"}, l)
}
