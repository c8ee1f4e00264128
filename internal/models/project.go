package models

import "time"

// Project groups tours under a user group
type Project struct {
	ID          int64     `json:"id" db:"id"`
	GroupID     int64     `json:"group" db:"group_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Locales     Locales   `json:"locales" db:"locales"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
