package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"truckfleet/apperr"
	"truckfleet/models"
)

type TruckRepository struct {
	db *sql.DB
}

func NewTruckRepository(db *sql.DB) *TruckRepository {
	return &TruckRepository{db: db}
}

const truckColumns = `id, user_id, year, color, plates, created_at, updated_at`

// Create inserts a new truck. Duplicate plates surface as a domain conflict.
func (r *TruckRepository) Create(ctx context.Context, t *models.Truck) (*models.Truck, error) {
	if t == nil {
		return nil, errors.New("truck is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO trucks (user_id, year, color, plates, created_at, updated_at) VALUES (?,?,?,?,?,?)`,
		t.UserID, t.Year, t.Color, t.Plates, ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflictf("plates already exist")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	created := *t
	created.ID = id
	created.CreatedAt = ts
	created.UpdatedAt = ts
	return &created, nil
}

func (r *TruckRepository) GetByID(ctx context.Context, id int64) (*models.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t models.Truck
	err := r.db.QueryRowContext(ctx, `SELECT `+truckColumns+` FROM trucks WHERE id = ?`, id).
		Scan(&t.ID, &t.UserID, &t.Year, &t.Color, &t.Plates, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// List returns a page of trucks ordered most recent first. A non-nil userID
// scopes the result to that owner.
func (r *TruckRepository) List(ctx context.Context, userID *int64, limit, offset int) ([]models.Truck, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT ` + truckColumns + ` FROM trucks`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Truck
	for rows.Next() {
		var t models.Truck
		if err := rows.Scan(&t.ID, &t.UserID, &t.Year, &t.Color, &t.Plates, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TruckRepository) Count(ctx context.Context, userID *int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT COUNT(*) FROM trucks`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

// TruckUpdate carries the mutable fields for a partial truck update.
type TruckUpdate struct {
	Year   *string
	Color  *string
	Plates *string
}

// Update applies a partial update and returns the updated record, or nil
// when the id does not resolve.
func (r *TruckRepository) Update(ctx context.Context, id int64, upd TruckUpdate) (*models.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var set []string
	var args []any
	if upd.Year != nil {
		set = append(set, "year = ?")
		args = append(args, *upd.Year)
	}
	if upd.Color != nil {
		set = append(set, "color = ?")
		args = append(args, *upd.Color)
	}
	if upd.Plates != nil {
		set = append(set, "plates = ?")
		args = append(args, *upd.Plates)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set = append(set, "updated_at = ?")
	args = append(args, now(), id)

	query := fmt.Sprintf(`UPDATE trucks SET %s WHERE id = ?`, joinSet(set))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflictf("plates already exist")
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes a truck by ID and reports whether a row was deleted.
func (r *TruckRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM trucks WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperr.Conflictf("truck is referenced by existing orders")
		}
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *TruckRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM trucks WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
