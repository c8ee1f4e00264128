package models

import "time"

// Tour is an ordered walk of POIs belonging to a project
type Tour struct {
	ID        int64 `json:"id" db:"id"`
	ProjectID int64 `json:"project" db:"project_id"`

	Title       Multilingual `json:"title" db:"title"`
	Description Multilingual `json:"description" db:"description"`
	IsPublic    bool         `json:"is_public" db:"is_public"`

	// Derived from the tour's POIs; never written from client input
	BoundingBox *BoundingBox `json:"bounding_box" db:"bounding_box"`
	Center      *Coordinates `json:"center" db:"center"`

	DistanceMeters  *int    `json:"distance_meters" db:"distance_meters"`
	DurationMinutes *int    `json:"duration_minutes" db:"duration_minutes"`
	Locales         Locales `json:"locales" db:"locales"`
	Guided          bool    `json:"guided" db:"guided"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TourDetail is a tour with its POIs in order
type TourDetail struct {
	Tour
	TotalPOIs int   `json:"total_pois"`
	POIs      []POI `json:"pois"`
}

// TourSummary is a tour row as listed, with its POI count
type TourSummary struct {
	Tour
	TotalPOIs int `json:"total_pois" db:"total_pois"`
}

// PublicTour is a public tour annotated with its distance from a query point
type PublicTour struct {
	TourSummary
	DistanceFromMeters *float64 `json:"distance_from_meters,omitempty"`
}

// TourGeometry is the derived geometry of a tour
type TourGeometry struct {
	BoundingBox *BoundingBox `json:"bounding_box"`
	Center      *Coordinates `json:"center"`
}

// POIOrder is the position assigned to one POI
type POIOrder struct {
	ID    int64 `json:"id" db:"id"`
	Order int   `json:"order" db:"order_index"`
}
