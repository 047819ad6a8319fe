package repository

import (
	"context"

	"truckfleet/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailWithHash(ctx context.Context, email string) (*models.User, string, error)
	List(ctx context.Context, search string, limit, offset int) ([]models.User, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// TruckRepositoryI defines operations on Truck entities.
type TruckRepositoryI interface {
	Create(ctx context.Context, t *models.Truck) (*models.Truck, error)
	GetByID(ctx context.Context, id int64) (*models.Truck, error)
	List(ctx context.Context, userID *int64, limit, offset int) ([]models.Truck, error)
	Count(ctx context.Context, userID *int64) (int64, error)
	Update(ctx context.Context, id int64, upd TruckUpdate) (*models.Truck, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// LocationRepositoryI defines operations on Location entities.
type LocationRepositoryI interface {
	Create(ctx context.Context, l *models.Location) (*models.Location, error)
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	GetByUserAndPlace(ctx context.Context, userID int64, placeID string, excludeID int64) (*models.Location, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Location, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, id, userID int64, upd LocationUpdate) (*models.Location, error)
	DeleteByUser(ctx context.Context, id, userID int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// OrderRepositoryI defines operations on Order entities.
type OrderRepositoryI interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id int64, expand bool) (*models.Order, error)
	List(ctx context.Context, f OrderFilter, limit, offset int, expand bool) ([]models.Order, error)
	Count(ctx context.Context, f OrderFilter) (int64, error)
	UpdateRefs(ctx context.Context, id int64, upd OrderRefsUpdate) error
	UpdateStatusFrom(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountByStatus(ctx context.Context, userID *int64) ([]models.OrderStatusCount, error)
}
