package repositories

import (
	"context"

	"herbalgarden/internal/models"
)

// PlantRepository defines the interface for plant data access. Single-plant
// lookups return an error wrapping apperr.ErrNotFound on a miss.
type PlantRepository interface {
	GetAll(ctx context.Context) ([]models.Plant, error)
	GetByID(ctx context.Context, id string) (*models.Plant, error)
	FindByNormalizedName(ctx context.Context, normalized string) (*models.Plant, error)
	FindByNameFold(ctx context.Context, name string) (*models.Plant, error)
	FindByNameContains(ctx context.Context, fragment string) (*models.Plant, error)
	Search(ctx context.Context, fragment string) ([]models.Plant, error)
	Create(ctx context.Context, plant *models.Plant) error
	Upsert(ctx context.Context, plant *models.Plant) error
	SetModelKey(ctx context.Context, id, key string) error
}
