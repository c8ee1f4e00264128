package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// CreateProjectRequest is the body of POST /api/projects
type CreateProjectRequest struct {
	GroupID     int64   `json:"group" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	Locales     Locales `json:"locales" validate:"dive,required"`
}

// CreateTourRequest is the body of POST /api/tours.
// An empty locale list inherits the project's locales.
type CreateTourRequest struct {
	ProjectID       int64        `json:"project" validate:"required,gt=0"`
	Title           Multilingual `json:"title" validate:"required"`
	Description     Multilingual `json:"description"`
	IsPublic        bool         `json:"is_public"`
	DistanceMeters  *int         `json:"distance_meters" validate:"omitempty,min=0"`
	DurationMinutes *int         `json:"duration_minutes" validate:"omitempty,min=0"`
	Locales         Locales      `json:"locales" validate:"dive,required"`
	Guided          bool         `json:"guided"`
}

// UpdateTourRequest is the body of PATCH /api/tours/:id. Absent fields are
// left unchanged. When POIs is present it must list every POI of the tour
// exactly once, in the new order.
type UpdateTourRequest struct {
	Title           *Multilingual `json:"title" validate:"omitempty,min=1"`
	Description     *Multilingual `json:"description"`
	IsPublic        *bool         `json:"is_public"`
	DistanceMeters  *int          `json:"distance_meters" validate:"omitempty,min=0"`
	DurationMinutes *int          `json:"duration_minutes" validate:"omitempty,min=0"`
	Locales         *Locales      `json:"locales" validate:"omitempty,dive,required"`
	Guided          *bool         `json:"guided"`
	POIs            []int64       `json:"pois"`
}

// ReorderRequest is the body of PUT /api/tours/:id/pois/order
type ReorderRequest struct {
	POIs []int64 `json:"pois" validate:"required"`
}

// CreatePOIRequest is the body of POST /api/pois
type CreatePOIRequest struct {
	TourID        int64         `json:"tour" validate:"required,gt=0"`
	Title         Multilingual  `json:"title" validate:"required"`
	Description   Multilingual  `json:"description"`
	Coordinates   *Coordinates  `json:"coordinates"`
	Radius        *int          `json:"radius" validate:"omitempty,min=0"`
	ExternalLinks ExternalLinks `json:"external_links"`
}

// UpdatePOIRequest is the body of PATCH /api/pois/:id. Tour and order are
// not editable here.
type UpdatePOIRequest struct {
	Title         *Multilingual       `json:"title" validate:"omitempty,min=1"`
	Description   *Multilingual       `json:"description"`
	Coordinates   NullableCoordinates `json:"coordinates"`
	Radius        *int                `json:"radius" validate:"omitempty,min=0"`
	ExternalLinks *ExternalLinks      `json:"external_links"`
}

// NullableCoordinates distinguishes an absent field from an explicit null
type NullableCoordinates struct {
	Set   bool
	Value *Coordinates
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NullableCoordinates) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var c Coordinates
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	n.Value = &c
	return nil
}
