package repository

import (
	"context"
	"database/sql"
	"testing"

	"truckfleet/apperr"
	"truckfleet/internal/db"
	"truckfleet/models"
)

type orderFixtures struct {
	owner   *models.User
	other   *models.User
	truck   *models.Truck
	pickup  *models.Location
	dropoff *models.Location
}

func seedOrderFixtures(t *testing.T, d *sql.DB) orderFixtures {
	t.Helper()
	ctx := context.Background()

	users := NewUserRepository(d)
	trucks := NewTruckRepository(d)
	locations := NewLocationRepository(d)

	owner, err := users.Create(ctx, "Owner", "owner@example.com", "hash")
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	other, err := users.Create(ctx, "Other", "other@example.com", "hash")
	if err != nil {
		t.Fatalf("seed other: %v", err)
	}
	truck, err := trucks.Create(ctx, &models.Truck{UserID: owner.ID, Year: "2020", Color: "white", Plates: "FLT-001"})
	if err != nil {
		t.Fatalf("seed truck: %v", err)
	}
	pickup, err := locations.Create(ctx, &models.Location{UserID: owner.ID, PlaceID: "pickup-place", Address: "1 Pickup Rd", Latitude: 19.43, Longitude: -99.13})
	if err != nil {
		t.Fatalf("seed pickup: %v", err)
	}
	dropoff, err := locations.Create(ctx, &models.Location{UserID: owner.ID, PlaceID: "dropoff-place", Address: "2 Dropoff Rd", Latitude: 19.50, Longitude: -99.20})
	if err != nil {
		t.Fatalf("seed dropoff: %v", err)
	}
	return orderFixtures{owner: owner, other: other, truck: truck, pickup: pickup, dropoff: dropoff}
}

func TestOrderRepository_CreateGetExpandDelete(t *testing.T) {
	d, err := db.Open("file:orderrepo1?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	fx := seedOrderFixtures(t, d)
	repo := NewOrderRepository(d)
	ctx := context.Background()

	o, err := repo.Create(ctx, &models.Order{
		UserID:    fx.owner.ID,
		TruckID:   fx.truck.ID,
		PickupID:  fx.pickup.ID,
		DropoffID: fx.dropoff.ID,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.ID == 0 || o.Status != models.OrderStatusCreated {
		t.Fatalf("unexpected created order: %+v", o)
	}

	// Plain fetch leaves references unexpanded
	g, err := repo.GetByID(ctx, o.ID, false)
	if err != nil || g == nil {
		t.Fatalf("get: %v %+v", err, g)
	}
	if g.Truck != nil || g.User != nil {
		t.Fatalf("expected unexpanded order, got: %+v", g)
	}

	// Expanded fetch joins all four references
	e, err := repo.GetByID(ctx, o.ID, true)
	if err != nil || e == nil {
		t.Fatalf("get expanded: %v %+v", err, e)
	}
	if e.User == nil || e.User.ID != fx.owner.ID {
		t.Fatalf("expected expanded user, got: %+v", e.User)
	}
	if e.Truck == nil || e.Truck.Plates != "FLT-001" {
		t.Fatalf("expected expanded truck, got: %+v", e.Truck)
	}
	if e.Pickup == nil || e.Pickup.Address != "1 Pickup Rd" {
		t.Fatalf("expected expanded pickup, got: %+v", e.Pickup)
	}
	if e.Dropoff == nil || e.Dropoff.PlaceID != "dropoff-place" {
		t.Fatalf("expected expanded dropoff, got: %+v", e.Dropoff)
	}

	// Referenced trucks and locations cannot be deleted out from under the
	// order.
	if _, err := NewTruckRepository(d).Delete(ctx, fx.truck.ID); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict deleting referenced truck, got: %v", err)
	}
	if _, err := NewLocationRepository(d).DeleteByUser(ctx, fx.pickup.ID, fx.owner.ID); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict deleting referenced location, got: %v", err)
	}

	deleted, err := repo.Delete(ctx, o.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: %v %v", deleted, err)
	}
	gone, err := repo.GetByID(ctx, o.ID, false)
	if err != nil || gone != nil {
		t.Fatalf("expected order gone, got: %+v err=%v", gone, err)
	}
}

func TestOrderRepository_StatusCASAndFilters(t *testing.T) {
	d, err := db.Open("file:orderrepo2?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	fx := seedOrderFixtures(t, d)
	repo := NewOrderRepository(d)
	ctx := context.Background()

	mk := func(userID int64) *models.Order {
		o, err := repo.Create(ctx, &models.Order{
			UserID:    userID,
			TruckID:   fx.truck.ID,
			PickupID:  fx.pickup.ID,
			DropoffID: fx.dropoff.ID,
		})
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		return o
	}
	o1 := mk(fx.owner.ID)
	mk(fx.owner.ID)
	o3 := mk(fx.other.ID)

	// Conditional status update only fires when the current status matches
	moved, err := repo.UpdateStatusFrom(ctx, o1.ID, models.OrderStatusCreated, models.OrderStatusInTransit)
	if err != nil || !moved {
		t.Fatalf("expected status move, got: %v %v", moved, err)
	}
	moved, err = repo.UpdateStatusFrom(ctx, o1.ID, models.OrderStatusCreated, models.OrderStatusInTransit)
	if err != nil || moved {
		t.Fatalf("expected stale move to match no row, got: %v %v", moved, err)
	}
	g, err := repo.GetByID(ctx, o1.ID, false)
	if err != nil || g == nil || g.Status != models.OrderStatusInTransit {
		t.Fatalf("get after move: %v %+v", err, g)
	}

	// Status filter
	status := models.OrderStatusCreated
	created, err := repo.List(ctx, OrderFilter{Status: &status}, 10, 0, false)
	if err != nil || len(created) != 2 {
		t.Fatalf("list by status: %v %+v", err, created)
	}

	// Owner filter
	mine, err := repo.List(ctx, OrderFilter{UserID: &fx.owner.ID}, 10, 0, false)
	if err != nil || len(mine) != 2 {
		t.Fatalf("list by user: %v %+v", err, mine)
	}
	for _, o := range mine {
		if o.UserID != fx.owner.ID {
			t.Fatalf("foreign order in owner list: %+v", o)
		}
	}

	// Truck filter with count
	n, err := repo.Count(ctx, OrderFilter{TruckID: &fx.truck.ID})
	if err != nil || n != 3 {
		t.Fatalf("count by truck: %v n=%d", err, n)
	}

	// Newest first
	all, err := repo.List(ctx, OrderFilter{}, 10, 0, false)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v %+v", err, all)
	}
	if all[0].ID != o3.ID || all[2].ID != o1.ID {
		t.Fatalf("expected newest first, got ids: %d %d %d", all[0].ID, all[1].ID, all[2].ID)
	}

	// Aggregation is grouped and sorted by status
	counts, err := repo.CountByStatus(ctx, nil)
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	if len(counts) != 2 ||
		counts[0].Status != models.OrderStatusCreated || counts[0].Total != 2 ||
		counts[1].Status != models.OrderStatusInTransit || counts[1].Total != 1 {
		t.Fatalf("unexpected status counts: %+v", counts)
	}
	ownerCounts, err := repo.CountByStatus(ctx, &fx.other.ID)
	if err != nil || len(ownerCounts) != 1 || ownerCounts[0].Total != 1 {
		t.Fatalf("unexpected scoped counts: %v %+v", err, ownerCounts)
	}

	// Reference update keeps status untouched
	newTruck := fx.truck.ID
	if err := repo.UpdateRefs(ctx, o1.ID, OrderRefsUpdate{TruckID: &newTruck}); err != nil {
		t.Fatalf("update refs: %v", err)
	}
	g, err = repo.GetByID(ctx, o1.ID, false)
	if err != nil || g == nil || g.Status != models.OrderStatusInTransit {
		t.Fatalf("status changed by ref update: %v %+v", err, g)
	}
}
