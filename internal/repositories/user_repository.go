package repositories

import (
	"context"

	"herbalgarden/internal/models"
)

// UserRepository defines the interface for user data access. Only
// GetByEmail loads the password hash.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FirstOrCreateByEmail(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetPasswordHash(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
