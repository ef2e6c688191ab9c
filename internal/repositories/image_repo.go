package repositories

import (
	"context"

	"herbalgarden/internal/models"
)

// ImageRepository reads both stored image shapes.
type ImageRepository interface {
	// FindImageSet returns the consolidated row for a plant, or nil.
	FindImageSet(ctx context.Context, normalized, name string) (*models.PlantImageSet, error)
	// FindLegacy returns per-image rows matching the plant loosely.
	FindLegacy(ctx context.Context, normalized, name string) ([]models.LegacyImage, error)
	SaveImageSet(ctx context.Context, set *models.PlantImageSet) error
	CreateLegacy(ctx context.Context, img *models.LegacyImage) error
}
