package models

import "time"

// Truck represents a delivery truck owned by a user.
// Plates are stored uppercase and are unique across the fleet.
type Truck struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Year      string    `db:"year" json:"year"`
	Color     string    `db:"color" json:"color"`
	Plates    string    `db:"plates" json:"plates"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
