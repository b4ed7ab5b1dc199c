package repositories

import (
	"context"

	"kyc-identity/internal/adapters/persistence/models"
)

// ListUsersFilter narrows admin user listings. Nil fields are ignored.
type ListUsersFilter struct {
	Role     *models.Role
	IsActive *bool
}

// UserRepository is the abstract capability set the identity core depends
// on. The core never sees a concrete storage engine; tests substitute the
// in-memory implementation.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int, filter ListUsersFilter) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	PurgeDeletedBefore(ctx context.Context, cutoffDays int) (int64, error)
}
