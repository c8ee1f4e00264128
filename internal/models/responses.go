package models

// TourListResponse represents a paginated list of tours
type TourListResponse struct {
	Data       []TourSummary `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// PublicTourListResponse represents a paginated list of public tours
type PublicTourListResponse struct {
	Data       []PublicTour `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

// ReorderResponse lists the order assigned to every POI of a tour
type ReorderResponse struct {
	TourID int64      `json:"tour"`
	POIs   []POIOrder `json:"pois"`
}
