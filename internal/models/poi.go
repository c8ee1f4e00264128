package models

import "time"

// DefaultPOIRadius is the trigger radius in meters when none is given
const DefaultPOIRadius = 20

// POI is a located stop within a tour. Order is dense per tour: 1..N.
type POI struct {
	ID     int64 `json:"id" db:"id"`
	TourID int64 `json:"tour" db:"tour_id"`

	Title         Multilingual  `json:"title" db:"title"`
	Description   Multilingual  `json:"description" db:"description"`
	Coordinates   *Coordinates  `json:"coordinates" db:"coordinates"`
	Radius        int           `json:"radius" db:"radius"`
	ExternalLinks ExternalLinks `json:"external_links" db:"external_links"`
	Order         int           `json:"order" db:"order_index"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
