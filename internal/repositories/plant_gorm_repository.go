package repositories

import (
	"context"
	"fmt"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Matches within one lookup step are ordered by name then id so repeated
// lookups return the same plant.
const plantOrder = "plant_name ASC, id ASC"

// GORMPlantRepository is a GORM implementation of PlantRepository.
type GORMPlantRepository struct {
	db *gorm.DB
}

// NewGORMPlantRepository creates a new instance of GORMPlantRepository.
func NewGORMPlantRepository(db *gorm.DB) *GORMPlantRepository {
	return &GORMPlantRepository{
		db: db,
	}
}

// GetAll retrieves all plants from the database.
func (r *GORMPlantRepository) GetAll(ctx context.Context) ([]models.Plant, error) {
	var plants []models.Plant
	if err := r.db.WithContext(ctx).Order(plantOrder).Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("failed to get all plants: %w", err)
	}
	return plants, nil
}

// GetByID retrieves a single plant by its ID from the database.
func (r *GORMPlantRepository) GetByID(ctx context.Context, id string) (*models.Plant, error) {
	return r.first(ctx, fmt.Sprintf("plant with ID %s", id), "id = ?", id)
}

// FindByNormalizedName matches the stored lookup key exactly.
func (r *GORMPlantRepository) FindByNormalizedName(ctx context.Context, normalized string) (*models.Plant, error) {
	return r.first(ctx, fmt.Sprintf("plant %q", normalized), "normalized_plant_name = ?", normalized)
}

// FindByNameFold matches the display name exactly, ignoring case.
func (r *GORMPlantRepository) FindByNameFold(ctx context.Context, name string) (*models.Plant, error) {
	return r.first(ctx, fmt.Sprintf("plant %q", name), "LOWER(plant_name) = LOWER(?)", name)
}

// FindByNameContains matches fragment anywhere in the display name, ignoring case.
func (r *GORMPlantRepository) FindByNameContains(ctx context.Context, fragment string) (*models.Plant, error) {
	return r.first(ctx, fmt.Sprintf("plant matching %q", fragment), `LOWER(plant_name) LIKE ? ESCAPE '\'`, containsPattern(fragment))
}

func (r *GORMPlantRepository) first(ctx context.Context, what string, query string, args ...interface{}) (*models.Plant, error) {
	var plant models.Plant
	if err := r.db.WithContext(ctx).Where(query, args...).Order(plantOrder).First(&plant).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("%s not found", what)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return &plant, nil
}

// Search returns every plant whose name or scientific name contains fragment.
func (r *GORMPlantRepository) Search(ctx context.Context, fragment string) ([]models.Plant, error) {
	pattern := containsPattern(fragment)
	plants := []models.Plant{}
	err := r.db.WithContext(ctx).
		Where(`LOWER(plant_name) LIKE ? ESCAPE '\'`, pattern).
		Or(`LOWER(scientific_name) LIKE ? ESCAPE '\'`, pattern).
		Order(plantOrder).
		Find(&plants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search plants for %q: %w", fragment, err)
	}
	return plants, nil
}

// Create creates a new plant in the database.
func (r *GORMPlantRepository) Create(ctx context.Context, plant *models.Plant) error {
	if plant.ID == "" {
		plant.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(plant).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict("plant '%s' already exists", plant.PlantName)
		}
		return fmt.Errorf("failed to create plant: %w", err)
	}
	return nil
}

// plantSeedColumns are overwritten when an existing plant is upserted. The
// legacy model bytes are never among them.
var plantSeedColumns = []string{
	"plant_name", "scientific_name", "description", "taxonomy", "morphology",
	"geographic_distribution", "phytochemistry", "medicinal_properties",
	"ayurvedic_profile", "traditional_uses", "pharmacological_studies",
	"genomic_research", "cultural_significance", "references", "precautions",
	"growing_conditions", "care_instructions", "origin", "harvest_time",
	"safety_notes", "last_updated",
}

// Upsert inserts plant or overwrites the reference columns of the row with the
// same normalized name. Stored model bytes are kept; the model key is only
// replaced when plant carries one.
func (r *GORMPlantRepository) Upsert(ctx context.Context, plant *models.Plant) error {
	if plant.ID == "" {
		plant.ID = uuid.New().String()
	}
	columns := plantSeedColumns
	if plant.Model3DKey != "" {
		columns = append(append([]string{}, plantSeedColumns...), "model_3d_key")
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "normalized_plant_name"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(plant).Error
	if err != nil {
		return fmt.Errorf("failed to upsert plant %s: %w", plant.PlantName, err)
	}
	return nil
}

// SetModelKey records (or, with an empty key, clears) the stored 3D model
// object for a plant.
func (r *GORMPlantRepository) SetModelKey(ctx context.Context, id, key string) error {
	res := r.db.WithContext(ctx).Model(&models.Plant{}).Where("id = ?", id).UpdateColumn("model_3d_key", key)
	if res.Error != nil {
		return fmt.Errorf("failed to update model key for plant %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("plant with ID %s not found for update", id)
	}
	return nil
}
