package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"truckfleet/internal/auth"
	"truckfleet/internal/db"
	"truckfleet/models"
	"truckfleet/repository"
)

// Secret is the JWT secret used throughout the tests.
const Secret = "test-secret"

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The name keeps shared-cache databases of different tests apart; the DB is
// closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SeedUser inserts a user with the given role and returns it.
func SeedUser(t *testing.T, d *sql.DB, name, email string, role models.UserRole) *models.User {
	t.Helper()
	users := repository.NewUserRepository(d)
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := users.Create(context.Background(), name, email, hash)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if role != models.RoleUser {
		upd, err := users.Update(context.Background(), u.ID, repository.UserUpdate{Role: &role})
		if err != nil {
			t.Fatalf("seed user role: %v", err)
		}
		u = upd
	}
	return u
}

// SeedTruck inserts a truck owned by the given user.
func SeedTruck(t *testing.T, d *sql.DB, userID int64, plates string) *models.Truck {
	t.Helper()
	trucks := repository.NewTruckRepository(d)
	tr, err := trucks.Create(context.Background(), &models.Truck{
		UserID: userID,
		Year:   "2020",
		Color:  "white",
		Plates: plates,
	})
	if err != nil {
		t.Fatalf("seed truck: %v", err)
	}
	return tr
}

// SeedLocation inserts a location owned by the given user.
func SeedLocation(t *testing.T, d *sql.DB, userID int64, placeID string) *models.Location {
	t.Helper()
	locations := repository.NewLocationRepository(d)
	l, err := locations.Create(context.Background(), &models.Location{
		UserID:    userID,
		PlaceID:   placeID,
		Address:   "123 Test St",
		Latitude:  19.43,
		Longitude: -99.13,
	})
	if err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return l
}

// Token returns a signed JWT for the given user.
func Token(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := auth.IssueToken(Secret, time.Hour, u)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// Principal returns the auth principal for a seeded user.
func Principal(u *models.User) *auth.Principal {
	return &auth.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}
