package service

import (
	"context"

	"truckfleet/apperr"
	"truckfleet/internal/auth"
	"truckfleet/models"
	"truckfleet/repository"
)

// OrderService owns the order lifecycle: creation with referential
// existence checks, ownership/role-based authorization, and the status
// state machine.
type OrderService struct {
	orders    repository.OrderRepositoryI
	trucks    repository.TruckRepositoryI
	locations repository.LocationRepositoryI
}

func NewOrderService(orders repository.OrderRepositoryI, trucks repository.TruckRepositoryI, locations repository.LocationRepositoryI) *OrderService {
	return &OrderService{orders: orders, trucks: trucks, locations: locations}
}

// CreateOrderInput is the validated input for Create. A non-nil Status must
// be "created": the state machine is the only way to reach later states.
type CreateOrderInput struct {
	TruckID   int64
	PickupID  int64
	DropoffID int64
	Status    *models.OrderStatus
}

// Create persists a new order owned by the principal after checking every
// referenced entity exists. Each check fails independently with an error
// naming the specific entity.
func (s *OrderService) Create(ctx context.Context, p *auth.Principal, in CreateOrderInput) (*models.Order, error) {
	if in.Status != nil && *in.Status != models.OrderStatusCreated {
		return nil, apperr.Invalidf("initial status must be %q", models.OrderStatusCreated)
	}
	if err := s.ensureTruck(ctx, in.TruckID); err != nil {
		return nil, err
	}
	if err := s.ensureLocation(ctx, in.PickupID, "Pickup location"); err != nil {
		return nil, err
	}
	if err := s.ensureLocation(ctx, in.DropoffID, "Dropoff location"); err != nil {
		return nil, err
	}

	return s.orders.Create(ctx, &models.Order{
		UserID:    p.ID,
		TruckID:   in.TruckID,
		PickupID:  in.PickupID,
		DropoffID: in.DropoffID,
		Status:    models.OrderStatusCreated,
	})
}

// ListOrdersQuery carries the list filters and pagination.
type ListOrdersQuery struct {
	Status  *models.OrderStatus
	TruckID *int64
	UserID  *int64 // owner filter; honored for admins only
	Page    int
	Limit   int
	Expand  bool
}

// List returns a page of orders, most recent first. Non-admin principals
// are always scoped to their own orders regardless of the owner filter;
// admins see all orders unless they filter by owner.
func (s *OrderService) List(ctx context.Context, p *auth.Principal, q ListOrdersQuery) (*Page[models.Order], error) {
	filter := repository.OrderFilter{Status: q.Status, TruckID: q.TruckID}
	if p.IsAdmin() {
		filter.UserID = q.UserID
	} else {
		filter.UserID = &p.ID
	}

	page, limit := normalizePaging(q.Page, q.Limit)
	items, err := s.orders.List(ctx, filter, limit, (page-1)*limit, q.Expand)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newPage(items, page, limit, total), nil
}

// Get fetches a single order. A nil principal skips the authorization
// check (internal/unauthenticated lookups).
func (s *OrderService) Get(ctx context.Context, p *auth.Principal, id int64, expand bool) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, id, expand)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("Order")
	}
	if p != nil {
		if err := ensureOwnershipOrAdmin(p, o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// UpdateOrderInput carries the mutable reference fields. Status is not
// accepted here; status changes go exclusively through ChangeStatus.
type UpdateOrderInput struct {
	TruckID   *int64
	PickupID  *int64
	DropoffID *int64
}

// UpdateRefs reassigns the truck and/or locations of an order. Each
// supplied reference is existence-checked exactly like Create.
func (s *OrderService) UpdateRefs(ctx context.Context, p *auth.Principal, id int64, in UpdateOrderInput) (*models.Order, error) {
	o, err := s.Get(ctx, p, id, false)
	if err != nil {
		return nil, err
	}
	if in.TruckID != nil {
		if err := s.ensureTruck(ctx, *in.TruckID); err != nil {
			return nil, err
		}
	}
	if in.PickupID != nil {
		if err := s.ensureLocation(ctx, *in.PickupID, "Pickup location"); err != nil {
			return nil, err
		}
	}
	if in.DropoffID != nil {
		if err := s.ensureLocation(ctx, *in.DropoffID, "Dropoff location"); err != nil {
			return nil, err
		}
	}
	upd := repository.OrderRefsUpdate{TruckID: in.TruckID, PickupID: in.PickupID, DropoffID: in.DropoffID}
	if err := s.orders.UpdateRefs(ctx, o.ID, upd); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, o.ID, false)
}

// ChangeStatus applies the transition table and persists the new status as
// a conditional update so two concurrent transitions cannot both win.
func (s *OrderService) ChangeStatus(ctx context.Context, p *auth.Principal, id int64, next models.OrderStatus) (*models.Order, error) {
	o, err := s.Get(ctx, p, id, false)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, apperr.InvalidTransition(string(o.Status), string(next))
	}

	moved, err := s.orders.UpdateStatusFrom(ctx, o.ID, o.Status, next)
	if err != nil {
		return nil, err
	}
	if !moved {
		// The conditional update lost: the row is gone or its status moved
		// under us. Re-fetch to tell the two apart.
		current, err := s.orders.GetByID(ctx, o.ID, false)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, apperr.NotFound("Order")
		}
		if current.Status != o.Status {
			return nil, apperr.Conflictf("order status changed concurrently (now %s)", current.Status)
		}
		return nil, apperr.InvalidTransition(string(current.Status), string(next))
	}
	return s.orders.GetByID(ctx, o.ID, false)
}

// Remove physically deletes an order.
func (s *OrderService) Remove(ctx context.Context, p *auth.Principal, id int64) error {
	o, err := s.Get(ctx, p, id, false)
	if err != nil {
		return err
	}
	deleted, err := s.orders.Delete(ctx, o.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Order")
	}
	return nil
}

// StatsByStatus aggregates order counts per status, alphabetically ordered.
// Admins aggregate across all orders; everyone else only their own.
func (s *OrderService) StatsByStatus(ctx context.Context, p *auth.Principal) ([]models.OrderStatusCount, error) {
	var owner *int64
	if !p.IsAdmin() {
		owner = &p.ID
	}
	counts, err := s.orders.CountByStatus(ctx, owner)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []models.OrderStatusCount{}
	}
	return counts, nil
}

func (s *OrderService) ensureTruck(ctx context.Context, id int64) error {
	ok, err := s.trucks.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Truck")
	}
	return nil
}

func (s *OrderService) ensureLocation(ctx context.Context, id int64, label string) error {
	ok, err := s.locations.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(label)
	}
	return nil
}

// ensureOwnershipOrAdmin is the authorization predicate gating single-order
// reads and mutations: the owner or an admin may act, nobody else.
func ensureOwnershipOrAdmin(p *auth.Principal, o *models.Order) error {
	if p.ID == o.UserID || p.IsAdmin() {
		return nil
	}
	return apperr.Forbidden("you do not have permission over this order")
}
