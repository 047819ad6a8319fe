package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"truckfleet/models"
)

// OrderFilter represents the optional list filters. Nil fields are skipped.
type OrderFilter struct {
	Status  *models.OrderStatus
	TruckID *int64
	UserID  *int64
}

func (f OrderFilter) where() (string, []any) {
	var parts []string
	var args []any
	if f.Status != nil {
		parts = append(parts, "o.status = ?")
		args = append(args, string(*f.Status))
	}
	if f.TruckID != nil {
		parts = append(parts, "o.truck_id = ?")
		args = append(args, *f.TruckID)
	}
	if f.UserID != nil {
		parts = append(parts, "o.user_id = ?")
		args = append(args, *f.UserID)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// List returns a page of orders matching the filter, ordered by creation
// time descending with the autoincrement id as a stable tie-break.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter, limit, offset int, expand bool) ([]models.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	where, args := f.where()
	args = append(args, limit, offset)

	if expand {
		rows, err := r.db.QueryContext(ctx,
			expandedOrderQuery+where+` ORDER BY o.created_at DESC, o.id DESC LIMIT ? OFFSET ?`, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		var out []models.Order
		for rows.Next() {
			o, err := scanExpandedOrder(rows)
			if err != nil {
				return nil, err
			}
			out = append(out, *o)
		}
		return out, rows.Err()
	}

	query := `SELECT o.id, o.user_id, o.truck_id, o.pickup_id, o.dropoff_id, o.status, o.created_at, o.updated_at FROM orders o` +
		where + ` ORDER BY o.created_at DESC, o.id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		var o models.Order
		var status string
		if err := rows.Scan(&o.ID, &o.UserID, &o.TruckID, &o.PickupID, &o.DropoffID, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Status = models.OrderStatus(status)
		out = append(out, o)
	}
	return out, rows.Err()
}

// Count returns the number of orders matching the filter.
func (r *OrderRepository) Count(ctx context.Context, f OrderFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	where, args := f.where()
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders o`+where, args...).Scan(&total)
	return total, err
}

// CountByStatus aggregates order counts grouped by status, ordered
// alphabetically by status name. A non-nil userID scopes the aggregation to
// that owner's orders. Statuses with zero orders are absent.
func (r *OrderRepository) CountByStatus(ctx context.Context, userID *int64) ([]models.OrderStatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT status, COUNT(*) AS total FROM orders`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	query += ` GROUP BY status ORDER BY status ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OrderStatusCount
	for rows.Next() {
		var c models.OrderStatusCount
		var status string
		if err := rows.Scan(&status, &c.Total); err != nil {
			return nil, err
		}
		c.Status = models.OrderStatus(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

// expandedOrderQuery joins the referenced user, truck and both locations so
// a single round trip resolves everything the expand flag needs.
const expandedOrderQuery = `
SELECT o.id, o.user_id, o.truck_id, o.pickup_id, o.dropoff_id, o.status, o.created_at, o.updated_at,
       u.id, u.name, u.email, u.role, u.created_at, u.updated_at,
       t.id, t.user_id, t.year, t.color, t.plates, t.created_at, t.updated_at,
       p.id, p.user_id, p.place_id, p.address, p.latitude, p.longitude, p.created_at, p.updated_at,
       d.id, d.user_id, d.place_id, d.address, d.latitude, d.longitude, d.created_at, d.updated_at
FROM orders o
JOIN users u ON u.id = o.user_id
JOIN trucks t ON t.id = o.truck_id
JOIN locations p ON p.id = o.pickup_id
JOIN locations d ON d.id = o.dropoff_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpandedOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var status string
	var u models.User
	var t models.Truck
	var p, d models.Location
	err := row.Scan(
		&o.ID, &o.UserID, &o.TruckID, &o.PickupID, &o.DropoffID, &status, &o.CreatedAt, &o.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		&t.ID, &t.UserID, &t.Year, &t.Color, &t.Plates, &t.CreatedAt, &t.UpdatedAt,
		&p.ID, &p.UserID, &p.PlaceID, &p.Address, &p.Latitude, &p.Longitude, &p.CreatedAt, &p.UpdatedAt,
		&d.ID, &d.UserID, &d.PlaceID, &d.Address, &d.Latitude, &d.Longitude, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	o.User = &u
	o.Truck = &t
	o.Pickup = &p
	o.Dropoff = &d
	return &o, nil
}

var _ rowScanner = (*sql.Row)(nil)
var _ rowScanner = (*sql.Rows)(nil)
