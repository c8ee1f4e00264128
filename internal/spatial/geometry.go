package spatial

import (
	"sort"

	"github.com/golang/geo/s2"
)

// Point represents a 2D point with latitude and longitude in degrees
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point lies within [-90,90] x [-180,180]
func (p Point) Valid() bool {
	return s2.LatLngFromDegrees(p.Lat, p.Lon).IsValid()
}

// Bounds is an axis-aligned box; Min is the southwest corner, Max the northeast
type Bounds struct {
	Min Point
	Max Point
}

// Summary is the extent and center of a point set
type Summary struct {
	Bounds Bounds
	Center Point
	Count  int
}

// Summarize computes the bounding box and centroid of the valid points.
// ok is false when no valid point remains.
//
// Min and max are taken per axis independently, so a set straddling the
// antimeridian gets a box spanning the whole longitude range. The center is
// a planar mean of degrees and is only meaningful at city or regional scale.
func Summarize(points []Point) (summary Summary, ok bool) {
	valid := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Valid() {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return Summary{}, false
	}

	// Fixed summation order keeps the mean bit-identical for any input order.
	sort.Slice(valid, func(i, j int) bool {
		if valid[i].Lat != valid[j].Lat {
			return valid[i].Lat < valid[j].Lat
		}
		return valid[i].Lon < valid[j].Lon
	})

	minLat, minLon, maxLat, maxLon := BoundingBox(valid)
	return Summary{
		Bounds: Bounds{
			Min: Point{Lat: minLat, Lon: minLon},
			Max: Point{Lat: maxLat, Lon: maxLon},
		},
		Center: Centroid(valid),
		Count:  len(valid),
	}, true
}

// Centroid calculates the arithmetic mean of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, minLon, maxLat, maxLon
}
