package models

import "time"

// Location is a geocoded address registered by a user. The address and
// coordinates come from the external place lookup at creation time; PlaceID
// is the provider's reference and is unique per user.
type Location struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	PlaceID   string    `db:"place_id" json:"place_id"`
	Address   string    `db:"address" json:"address"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
