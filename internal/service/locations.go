package service

import (
	"context"
	"strings"

	"truckfleet/apperr"
	"truckfleet/internal/auth"
	"truckfleet/internal/geocode"
	"truckfleet/models"
	"truckfleet/repository"
)

// LocationService manages per-user geocoded locations. Every operation is
// scoped to the calling principal: locations are private to their owner.
type LocationService struct {
	locations repository.LocationRepositoryI
	resolver  geocode.Resolver
}

func NewLocationService(locations repository.LocationRepositoryI, resolver geocode.Resolver) *LocationService {
	return &LocationService{locations: locations, resolver: resolver}
}

// Create registers a location from an external place reference. The place
// is resolved through the lookup provider; a user cannot register the same
// place twice.
func (s *LocationService) Create(ctx context.Context, p *auth.Principal, placeID string) (*models.Location, error) {
	placeID = strings.TrimSpace(placeID)
	if len(placeID) < 3 {
		return nil, apperr.Invalidf("placeId must be at least 3 characters")
	}

	existing, err := s.locations.GetByUserAndPlace(ctx, p.ID, placeID, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflictf("location already exists for this user")
	}

	place, err := s.resolver.Resolve(ctx, placeID)
	if err != nil {
		return nil, err
	}
	// The unique index catches the create/create race with the same conflict.
	return s.locations.Create(ctx, &models.Location{
		UserID:    p.ID,
		PlaceID:   placeID,
		Address:   place.Address,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
	})
}

func (s *LocationService) List(ctx context.Context, p *auth.Principal, page, limit int) (*Page[models.Location], error) {
	page, limit = normalizePaging(page, limit)
	items, err := s.locations.ListByUser(ctx, p.ID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.locations.CountByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return newPage(items, page, limit, total), nil
}

func (s *LocationService) Get(ctx context.Context, p *auth.Principal, id int64) (*models.Location, error) {
	l, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil || (l.UserID != p.ID && !p.IsAdmin()) {
		return nil, apperr.NotFound("Location")
	}
	return l, nil
}

// UpdateLocationInput carries the mutable location fields. A new PlaceID
// re-resolves the address and coordinates; otherwise only the stored
// address text may be overridden.
type UpdateLocationInput struct {
	PlaceID *string
	Address *string
}

func (s *LocationService) Update(ctx context.Context, p *auth.Principal, id int64, in UpdateLocationInput) (*models.Location, error) {
	var upd repository.LocationUpdate
	switch {
	case in.PlaceID != nil:
		placeID := strings.TrimSpace(*in.PlaceID)
		dup, err := s.locations.GetByUserAndPlace(ctx, p.ID, placeID, id)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, apperr.Conflictf("location already exists for this user")
		}
		place, err := s.resolver.Resolve(ctx, placeID)
		if err != nil {
			return nil, err
		}
		upd = repository.LocationUpdate{
			PlaceID:   &placeID,
			Address:   &place.Address,
			Latitude:  &place.Latitude,
			Longitude: &place.Longitude,
		}
	case in.Address != nil:
		upd = repository.LocationUpdate{Address: in.Address}
	default:
		return s.Get(ctx, p, id)
	}

	l, err := s.locations.Update(ctx, id, p.ID, upd)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.NotFound("Location")
	}
	return l, nil
}

func (s *LocationService) Remove(ctx context.Context, p *auth.Principal, id int64) error {
	deleted, err := s.locations.DeleteByUser(ctx, id, p.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Location")
	}
	return nil
}
