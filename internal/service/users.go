package service

import (
	"context"
	"strings"

	"truckfleet/apperr"
	"truckfleet/internal/auth"
	"truckfleet/models"
	"truckfleet/repository"
)

// UserService exposes account management. Listing is admin-only; reading,
// updating and deleting a single account is allowed for the account owner
// or an admin. Role changes are admin-only.
type UserService struct {
	users repository.UserRepositoryI
}

func NewUserService(users repository.UserRepositoryI) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, p *auth.Principal, search string, page, limit int) (*Page[models.User], error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("admin access required")
	}
	page, limit = normalizePaging(page, limit)
	items, err := s.users.List(ctx, search, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx, search)
	if err != nil {
		return nil, err
	}
	return newPage(items, page, limit, total), nil
}

func (s *UserService) Get(ctx context.Context, p *auth.Principal, id int64) (*models.User, error) {
	if err := ensureSelfOrAdmin(p, id); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

// UpdateUserInput carries the mutable account fields.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *models.UserRole
}

func (s *UserService) Update(ctx context.Context, p *auth.Principal, id int64, in UpdateUserInput) (*models.User, error) {
	if err := ensureSelfOrAdmin(p, id); err != nil {
		return nil, err
	}
	if in.Role != nil && !p.IsAdmin() {
		return nil, apperr.Forbidden("only admins can change roles")
	}

	upd := repository.UserUpdate{Name: in.Name, Role: in.Role}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		other, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperr.Conflictf("email already in use")
		}
		upd.Email = &email
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}

	u, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

func (s *UserService) Remove(ctx context.Context, p *auth.Principal, id int64) error {
	if err := ensureSelfOrAdmin(p, id); err != nil {
		return err
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("User")
	}
	return nil
}

func ensureSelfOrAdmin(p *auth.Principal, userID int64) error {
	if p.ID == userID || p.IsAdmin() {
		return nil
	}
	return apperr.Forbidden("you do not have permission over this user")
}
