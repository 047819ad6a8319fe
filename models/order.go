package models

import (
	"strings"
	"time"
)

// OrderStatus represents the current progress of an order.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusCompleted OrderStatus = "completed"
)

// orderTransitions is the exhaustive table of permitted status moves.
// completed is terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:   {OrderStatusInTransit},
	OrderStatusInTransit: {OrderStatusCompleted},
	OrderStatusCompleted: {},
}

// Valid reports whether s is one of the defined statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is permitted.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus normalizes raw client input ("In Transit", "in-transit")
// into an OrderStatus. The second return value is false for unknown values.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, " ", "_")
	norm = strings.ReplaceAll(norm, "-", "_")
	s := OrderStatus(norm)
	return s, s.Valid()
}

// Order represents a shipment tying an owner, a truck and two locations
// together with a lifecycle status. The pointer fields are populated only
// when a caller asks for expanded references.
type Order struct {
	ID        int64       `db:"id" json:"id"`
	UserID    int64       `db:"user_id" json:"user_id"`
	TruckID   int64       `db:"truck_id" json:"truck_id"`
	PickupID  int64       `db:"pickup_id" json:"pickup_id"`
	DropoffID int64       `db:"dropoff_id" json:"dropoff_id"`
	Status    OrderStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`

	User    *User     `json:"user,omitempty"`
	Truck   *Truck    `json:"truck,omitempty"`
	Pickup  *Location `json:"pickup,omitempty"`
	Dropoff *Location `json:"dropoff,omitempty"`
}

// OrderStatusCount is one row of the per-status aggregation.
type OrderStatusCount struct {
	Status OrderStatus `db:"status" json:"status"`
	Total  int64       `db:"total" json:"total"`
}
