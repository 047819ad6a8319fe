package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"truckfleet/models"
)

// OrderRepository is the core repository for Order entities. It handles
// CRUD, the conditional status update, filtered listing and the per-status
// aggregation (see order_query.go).
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, user_id, truck_id, pickup_id, dropoff_id, status, created_at, updated_at`

// Create inserts a new order. Status defaults to 'created' if empty;
// reference existence is the service's job, the CHECK constraint on status
// is the last line of defense for the enum invariant.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o == nil {
		return nil, errors.New("order is nil")
	}
	if o.Status == "" {
		o.Status = models.OrderStatusCreated
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (user_id, truck_id, pickup_id, dropoff_id, status, created_at, updated_at) VALUES (?,?,?,?,?,?,?)`,
		o.UserID, o.TruckID, o.PickupID, o.DropoffID, string(o.Status), ts, ts)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	created, err := r.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("created order not found: id=%d", id)
	}
	return created, nil
}

// GetByID fetches an order by its ID. With expand, the user, truck and
// location references are resolved into full records.
func (r *OrderRepository) GetByID(ctx context.Context, id int64, expand bool) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if expand {
		row := r.db.QueryRowContext(ctx, expandedOrderQuery+` WHERE o.id = ?`, id)
		o, err := scanExpandedOrder(row)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return o, err
	}

	var o models.Order
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.UserID, &o.TruckID, &o.PickupID, &o.DropoffID, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	return &o, nil
}

// OrderRefsUpdate carries the mutable reference fields for a partial order
// update. Status is deliberately absent: status changes go exclusively
// through UpdateStatusFrom.
type OrderRefsUpdate struct {
	TruckID   *int64
	PickupID  *int64
	DropoffID *int64
}

// UpdateRefs applies a partial reference update.
func (r *OrderRepository) UpdateRefs(ctx context.Context, id int64, upd OrderRefsUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var set []string
	var args []any
	if upd.TruckID != nil {
		set = append(set, "truck_id = ?")
		args = append(args, *upd.TruckID)
	}
	if upd.PickupID != nil {
		set = append(set, "pickup_id = ?")
		args = append(args, *upd.PickupID)
	}
	if upd.DropoffID != nil {
		set = append(set, "dropoff_id = ?")
		args = append(args, *upd.DropoffID)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = ?")
	args = append(args, now(), id)

	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id = ?`, joinSet(set))
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// UpdateStatusFrom moves the order's status from an expected current value
// to a new one as a single conditional update, and reports whether a row
// changed. Zero rows means the order vanished or its status moved
// concurrently; the caller re-fetches to disambiguate.
func (r *OrderRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(to), now(), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes an order by ID and reports whether a row was deleted.
func (r *OrderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
