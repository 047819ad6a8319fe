package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckfleet/apperr"
	"truckfleet/internal/geocode"
	"truckfleet/internal/service"
	"truckfleet/internal/testutil"
	"truckfleet/models"
	"truckfleet/repository"
)

// stubResolver resolves any place id deterministically, and counts calls so
// tests can assert the provider is not hit on early failures.
type stubResolver struct {
	calls int
	fail  bool
}

func (r *stubResolver) Resolve(_ context.Context, placeID string) (*geocode.Place, error) {
	r.calls++
	if r.fail {
		return nil, apperr.Invalidf("could not resolve place id (NOT_FOUND)")
	}
	return &geocode.Place{
		Address:   "Resolved " + placeID,
		Latitude:  19.43,
		Longitude: -99.13,
	}, nil
}

func newLocationEnv(t *testing.T, dbName string) (*service.LocationService, *stubResolver, *models.User) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, dbName)
	owner := testutil.SeedUser(t, d, "Owner", fmt.Sprintf("%s@example.com", dbName), models.RoleUser)
	resolver := &stubResolver{}
	svc := service.NewLocationService(repository.NewLocationRepository(d), resolver)
	return svc, resolver, owner
}

func TestLocationService_Create(t *testing.T) {
	svc, resolver, owner := newLocationEnv(t, "svc_loc_create")
	ctx := context.Background()
	p := testutil.Principal(owner)

	l, err := svc.Create(ctx, p, "place-abc")
	require.NoError(t, err)
	assert.Equal(t, "place-abc", l.PlaceID)
	assert.Equal(t, "Resolved place-abc", l.Address)
	assert.Equal(t, 19.43, l.Latitude)

	// Too-short place ids are rejected before the provider is called.
	calls := resolver.calls
	_, err = svc.Create(ctx, p, "  ab ")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Equal(t, calls, resolver.calls)

	// Registering the same place again conflicts, also without a lookup.
	_, err = svc.Create(ctx, p, "place-abc")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, calls, resolver.calls)

	// Provider failures propagate as validation errors.
	resolver.fail = true
	_, err = svc.Create(ctx, p, "place-xyz")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestLocationService_GetIsOwnerPrivate(t *testing.T) {
	svc, _, owner := newLocationEnv(t, "svc_loc_get")
	ctx := context.Background()

	l, err := svc.Create(ctx, testutil.Principal(owner), "place-abc")
	require.NoError(t, err)

	// Someone else's location reads as not-found, not forbidden: its
	// existence is not disclosed.
	stranger := &models.User{ID: owner.ID + 100, Email: "x@example.com", Role: models.RoleUser}
	_, err = svc.Get(ctx, testutil.Principal(stranger), l.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	got, err := svc.Get(ctx, testutil.Principal(owner), l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
}

func TestLocationService_Update(t *testing.T) {
	svc, resolver, owner := newLocationEnv(t, "svc_loc_update")
	ctx := context.Background()
	p := testutil.Principal(owner)

	l, err := svc.Create(ctx, p, "place-abc")
	require.NoError(t, err)
	other, err := svc.Create(ctx, p, "place-def")
	require.NoError(t, err)

	// Address-only update touches nothing else.
	addr := "Custom Address 1"
	got, err := svc.Update(ctx, p, l.ID, service.UpdateLocationInput{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Custom Address 1", got.Address)
	assert.Equal(t, "place-abc", got.PlaceID)

	// A new place id re-resolves address and coordinates.
	newPlace := "place-new"
	got, err = svc.Update(ctx, p, l.ID, service.UpdateLocationInput{PlaceID: &newPlace})
	require.NoError(t, err)
	assert.Equal(t, "place-new", got.PlaceID)
	assert.Equal(t, "Resolved place-new", got.Address)

	// Moving onto another of the user's places conflicts.
	taken := other.PlaceID
	_, err = svc.Update(ctx, p, l.ID, service.UpdateLocationInput{PlaceID: &taken})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Re-submitting the current place id is a no-op conflict-wise: the row
	// itself is excluded from the duplicate check.
	same := "place-new"
	got, err = svc.Update(ctx, p, l.ID, service.UpdateLocationInput{PlaceID: &same})
	require.NoError(t, err)
	assert.Equal(t, "place-new", got.PlaceID)

	// An empty update just returns the current record without a lookup.
	calls := resolver.calls
	got, err = svc.Update(ctx, p, l.ID, service.UpdateLocationInput{})
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, calls, resolver.calls)
}

func TestLocationService_Remove(t *testing.T) {
	svc, _, owner := newLocationEnv(t, "svc_loc_remove")
	ctx := context.Background()
	p := testutil.Principal(owner)

	l, err := svc.Create(ctx, p, "place-abc")
	require.NoError(t, err)

	// Only the owner can remove; for anyone else the location does not exist.
	stranger := &models.User{ID: owner.ID + 100, Email: "x@example.com", Role: models.RoleUser}
	err = svc.Remove(ctx, testutil.Principal(stranger), l.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, svc.Remove(ctx, p, l.ID))
	err = svc.Remove(ctx, p, l.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
