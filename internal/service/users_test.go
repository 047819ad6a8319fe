package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckfleet/apperr"
	"truckfleet/internal/service"
	"truckfleet/internal/testutil"
	"truckfleet/models"
	"truckfleet/repository"
)

func TestUserService_ListIsAdminOnly(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "svc_users_list")
	svc := service.NewUserService(repository.NewUserRepository(d))
	ctx := context.Background()

	user := testutil.SeedUser(t, d, "Plain", "plain@example.com", models.RoleUser)
	admin := testutil.SeedUser(t, d, "Admin", "admin@example.com", models.RoleAdmin)

	_, err := svc.List(ctx, testutil.Principal(user), "", 1, 10)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	page, err := svc.List(ctx, testutil.Principal(admin), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.List(ctx, testutil.Principal(admin), "plain", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, user.ID, page.Items[0].ID)
}

func TestUserService_SelfOrAdminGates(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "svc_users_gates")
	svc := service.NewUserService(repository.NewUserRepository(d))
	ctx := context.Background()

	alice := testutil.SeedUser(t, d, "Alice", "alice@example.com", models.RoleUser)
	bob := testutil.SeedUser(t, d, "Bob", "bob@example.com", models.RoleUser)
	admin := testutil.SeedUser(t, d, "Admin", "admin@example.com", models.RoleAdmin)

	// Reading someone else's account is forbidden; self and admin pass.
	_, err := svc.Get(ctx, testutil.Principal(alice), bob.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, err = svc.Get(ctx, testutil.Principal(alice), alice.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, testutil.Principal(admin), bob.ID)
	require.NoError(t, err)

	// Role changes are admin-only, even on one's own account.
	adminRole := models.RoleAdmin
	_, err = svc.Update(ctx, testutil.Principal(alice), alice.ID, service.UpdateUserInput{Role: &adminRole})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	promoted, err := svc.Update(ctx, testutil.Principal(admin), alice.ID, service.UpdateUserInput{Role: &adminRole})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	// Removing someone else's account is forbidden; self-removal works.
	err = svc.Remove(ctx, testutil.Principal(bob), alice.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	require.NoError(t, svc.Remove(ctx, testutil.Principal(bob), bob.ID))
	_, err = svc.Get(ctx, testutil.Principal(admin), bob.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUserService_UpdateEmailAndPassword(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "svc_users_update")
	users := repository.NewUserRepository(d)
	svc := service.NewUserService(users)
	ctx := context.Background()

	alice := testutil.SeedUser(t, d, "Alice", "alice@example.com", models.RoleUser)
	testutil.SeedUser(t, d, "Bob", "bob@example.com", models.RoleUser)
	p := testutil.Principal(alice)

	// Emails normalize to lowercase; re-submitting your own email is fine.
	email := "  ALICE@Example.com "
	got, err := svc.Update(ctx, p, alice.ID, service.UpdateUserInput{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	// Taking another account's email conflicts.
	taken := "Bob@example.com"
	_, err = svc.Update(ctx, p, alice.ID, service.UpdateUserInput{Email: &taken})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// A password update stores a fresh hash, never the plain text.
	pass := "new-password-1"
	_, err = svc.Update(ctx, p, alice.ID, service.UpdateUserInput{Password: &pass})
	require.NoError(t, err)
	_, hash, err := users.GetByEmailWithHash(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, pass, hash)
	assert.NotEmpty(t, hash)
}
