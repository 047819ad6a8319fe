// Package repository implements persistence for users, trucks, locations and
// orders over database/sql with SQLite.
package repository

import (
	"errors"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err is a storage-level uniqueness
// conflict. Callers translate it into a domain conflict error so raw driver
// errors never leak to the API.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// isForeignKeyViolation reports whether err is a referential-integrity
// failure, e.g. deleting a truck that orders still reference.
func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// now returns the timestamp written for created_at/updated_at. UTC keeps
// the stored text form sortable.
func now() time.Time {
	return time.Now().UTC()
}

func joinSet(parts []string) string {
	return strings.Join(parts, ", ")
}
