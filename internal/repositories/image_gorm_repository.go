package repositories

import (
	"context"
	"fmt"

	"herbalgarden/internal/models"
	"herbalgarden/pkg/plantname"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMImageRepository is a GORM implementation of ImageRepository.
type GORMImageRepository struct {
	db *gorm.DB
}

// NewGORMImageRepository creates a new instance of GORMImageRepository.
func NewGORMImageRepository(db *gorm.DB) *GORMImageRepository {
	return &GORMImageRepository{
		db: db,
	}
}

func (r *GORMImageRepository) FindImageSet(ctx context.Context, normalized, name string) (*models.PlantImageSet, error) {
	var sets []models.PlantImageSet
	err := r.db.WithContext(ctx).
		Where("normalized_plant_name = ? OR LOWER(plant_name) = LOWER(?)", normalized, name).
		Order("plant_name ASC, id ASC").
		Limit(1).
		Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find image set for %s: %w", name, err)
	}
	if len(sets) == 0 {
		return nil, nil
	}
	return &sets[0], nil
}

func (r *GORMImageRepository) FindLegacy(ctx context.Context, normalized, name string) ([]models.LegacyImage, error) {
	var images []models.LegacyImage
	err := r.db.WithContext(ctx).
		Where("normalized_plant_name = ?", normalized).
		Or("LOWER(plant_name) = LOWER(?)", name).
		Or(`LOWER(plant_name) LIKE ? ESCAPE '\'`, containsPattern(name)).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find legacy images for %s: %w", name, err)
	}
	return images, nil
}

// SaveImageSet stores a consolidated image row, keyed by its ID.
func (r *GORMImageRepository) SaveImageSet(ctx context.Context, set *models.PlantImageSet) error {
	if set.ID == "" {
		set.ID = uuid.New().String()
	}
	set.NormalizedPlantName = plantname.Normalize(set.PlantName)
	if err := r.db.WithContext(ctx).Save(set).Error; err != nil {
		return fmt.Errorf("failed to save image set for %s: %w", set.PlantName, err)
	}
	return nil
}

// CreateLegacy stores a single per-image row.
func (r *GORMImageRepository) CreateLegacy(ctx context.Context, img *models.LegacyImage) error {
	if img.ID == "" {
		img.ID = uuid.New().String()
	}
	img.NormalizedPlantName = plantname.Normalize(img.PlantName)
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return fmt.Errorf("failed to create legacy image for %s: %w", img.PlantName, err)
	}
	return nil
}
