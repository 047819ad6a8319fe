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

type LocationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, user_id, place_id, address, latitude, longitude, created_at, updated_at`

// Create inserts a new location. The unique (user_id, place_id) index means
// a concurrent duplicate surfaces as a domain conflict.
func (r *LocationRepository) Create(ctx context.Context, l *models.Location) (*models.Location, error) {
	if l == nil {
		return nil, errors.New("location is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (user_id, place_id, address, latitude, longitude, created_at, updated_at) VALUES (?,?,?,?,?,?,?)`,
		l.UserID, l.PlaceID, l.Address, l.Latitude, l.Longitude, ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflictf("location already exists for this user")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	created := *l
	created.ID = id
	created.CreatedAt = ts
	created.UpdatedAt = ts
	return &created, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var l models.Location
	err := r.db.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = ?`, id).
		Scan(&l.ID, &l.UserID, &l.PlaceID, &l.Address, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// GetByUserAndPlace finds a user's location for a place reference. A
// non-zero excludeID skips that row (used when updating a location to a
// place id that may already belong to another of the user's locations).
func (r *LocationRepository) GetByUserAndPlace(ctx context.Context, userID int64, placeID string, excludeID int64) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT ` + locationColumns + ` FROM locations WHERE user_id = ? AND place_id = ?`
	args := []any{userID, placeID}
	if excludeID > 0 {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	var l models.Location
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&l.ID, &l.UserID, &l.PlaceID, &l.Address, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// ListByUser returns a page of the user's locations, most recent first.
func (r *LocationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Location, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.UserID, &l.PlaceID, &l.Address, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LocationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations WHERE user_id = ?`, userID).Scan(&total)
	return total, err
}

// LocationUpdate carries the mutable fields for a partial location update.
// When the place reference changes the service re-resolves the address and
// coordinates and supplies all four fields.
type LocationUpdate struct {
	PlaceID   *string
	Address   *string
	Latitude  *float64
	Longitude *float64
}

// Update applies a partial update scoped to the owner and returns the
// updated record, or nil when no row matches (absent or not owned).
func (r *LocationRepository) Update(ctx context.Context, id, userID int64, upd LocationUpdate) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var set []string
	var args []any
	if upd.PlaceID != nil {
		set = append(set, "place_id = ?")
		args = append(args, *upd.PlaceID)
	}
	if upd.Address != nil {
		set = append(set, "address = ?")
		args = append(args, *upd.Address)
	}
	if upd.Latitude != nil {
		set = append(set, "latitude = ?")
		args = append(args, *upd.Latitude)
	}
	if upd.Longitude != nil {
		set = append(set, "longitude = ?")
		args = append(args, *upd.Longitude)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set = append(set, "updated_at = ?")
	args = append(args, now(), id, userID)

	query := fmt.Sprintf(`UPDATE locations SET %s WHERE id = ? AND user_id = ?`, joinSet(set))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflictf("location already exists for this user")
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// DeleteByUser removes a location owned by the given user and reports
// whether a row was deleted.
func (r *LocationRepository) DeleteByUser(ctx context.Context, id, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperr.Conflictf("location is referenced by existing orders")
		}
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *LocationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM locations WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
