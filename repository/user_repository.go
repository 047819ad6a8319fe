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

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, role, created_at, updated_at`

// Create inserts a new user. Role defaults to 'user'. A duplicate email
// surfaces as a domain conflict.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, role, created_at, updated_at) VALUES (?,?,?,?,?,?)`,
		name, email, passwordHash, string(models.RoleUser), ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflictf("email already in use")
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Name: name, Email: email, Role: models.RoleUser, CreatedAt: ts, UpdatedAt: ts}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, _, err := r.GetByEmailWithHash(ctx, email)
	return u, err
}

// GetByEmailWithHash returns the user along with the stored password hash.
// Only the login path should care about the hash.
func (r *UserRepository) GetByEmailWithHash(ctx context.Context, email string) (*models.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, hash, nil
}

// List returns a page of users. A non-empty search matches name or email
// case-insensitively.
func (r *UserRepository) List(ctx context.Context, search string, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if search != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR email LIKE ? COLLATE NOCASE`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context, search string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT COUNT(*) FROM users`
	var args []any
	if search != "" {
		query += ` WHERE name LIKE ? COLLATE NOCASE OR email LIKE ? COLLATE NOCASE`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

// UserUpdate carries the mutable fields for a partial user update. Nil
// means "leave unchanged".
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *models.UserRole
}

// Update applies a partial update and returns the updated record, or nil
// when the id does not resolve.
func (r *UserRepository) Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var set []string
	var args []any
	if upd.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		set = append(set, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.PasswordHash != nil {
		set = append(set, "password_hash = ?")
		args = append(args, *upd.PasswordHash)
	}
	if upd.Role != nil {
		set = append(set, "role = ?")
		args = append(args, string(*upd.Role))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set = append(set, "updated_at = ?")
	args = append(args, now(), id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, joinSet(set))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflictf("email already in use")
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user by ID and reports whether a row was deleted.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperr.Conflictf("user still owns trucks, locations or orders")
		}
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
