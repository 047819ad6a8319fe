package service

import (
	"context"
	"strings"

	"truckfleet/apperr"
	"truckfleet/internal/auth"
	"truckfleet/models"
	"truckfleet/repository"
)

// TruckService exposes CRUD over trucks. Trucks belong to the creating
// user; mutations require ownership or admin, listing is owner-scoped for
// non-admins.
type TruckService struct {
	trucks repository.TruckRepositoryI
}

func NewTruckService(trucks repository.TruckRepositoryI) *TruckService {
	return &TruckService{trucks: trucks}
}

// CreateTruckInput is the validated input for Create.
type CreateTruckInput struct {
	Year   string
	Color  string
	Plates string
}

func (s *TruckService) Create(ctx context.Context, p *auth.Principal, in CreateTruckInput) (*models.Truck, error) {
	return s.trucks.Create(ctx, &models.Truck{
		UserID: p.ID,
		Year:   strings.TrimSpace(in.Year),
		Color:  strings.TrimSpace(in.Color),
		Plates: normalizePlates(in.Plates),
	})
}

func (s *TruckService) List(ctx context.Context, p *auth.Principal, page, limit int) (*Page[models.Truck], error) {
	var owner *int64
	if !p.IsAdmin() {
		owner = &p.ID
	}
	page, limit = normalizePaging(page, limit)
	items, err := s.trucks.List(ctx, owner, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.trucks.Count(ctx, owner)
	if err != nil {
		return nil, err
	}
	return newPage(items, page, limit, total), nil
}

func (s *TruckService) Get(ctx context.Context, p *auth.Principal, id int64) (*models.Truck, error) {
	t, err := s.trucks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("Truck")
	}
	if t.UserID != p.ID && !p.IsAdmin() {
		return nil, apperr.Forbidden("you do not have permission over this truck")
	}
	return t, nil
}

// UpdateTruckInput carries the mutable truck fields.
type UpdateTruckInput struct {
	Year   *string
	Color  *string
	Plates *string
}

func (s *TruckService) Update(ctx context.Context, p *auth.Principal, id int64, in UpdateTruckInput) (*models.Truck, error) {
	if _, err := s.Get(ctx, p, id); err != nil {
		return nil, err
	}
	upd := repository.TruckUpdate{Year: in.Year, Color: in.Color}
	if in.Plates != nil {
		plates := normalizePlates(*in.Plates)
		upd.Plates = &plates
	}
	t, err := s.trucks.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("Truck")
	}
	return t, nil
}

func (s *TruckService) Remove(ctx context.Context, p *auth.Principal, id int64) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}
	deleted, err := s.trucks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Truck")
	}
	return nil
}

func normalizePlates(plates string) string {
	return strings.ToUpper(strings.TrimSpace(plates))
}
