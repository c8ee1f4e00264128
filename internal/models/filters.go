package models

// TourFilter represents filter parameters for listing a member's tours
type TourFilter struct {
	ProjectID int64 `form:"project_id"`
	Page      int   `form:"page"`
	PageSize  int   `form:"pageSize"`
}

// PublicTourFilter represents filter parameters for the public tour listing.
// When both Lat and Long are set tours are ordered by distance to their center.
type PublicTourFilter struct {
	Lat      *float64 `form:"lat" validate:"omitempty,latitude"`
	Long     *float64 `form:"long" validate:"omitempty,longitude"`
	Page     int      `form:"page"`
	PageSize int      `form:"pageSize"`
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}
	if pageSize > 1000 {
		pageSize = 1000
	}
	return page, pageSize
}

// Normalize clamps pagination values
func (f *TourFilter) Normalize() {
	f.Page, f.PageSize = normalizePage(f.Page, f.PageSize)
}

// Normalize clamps pagination values
func (f *PublicTourFilter) Normalize() {
	f.Page, f.PageSize = normalizePage(f.Page, f.PageSize)
}

// Offset returns the row offset for the current page
func (f TourFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
