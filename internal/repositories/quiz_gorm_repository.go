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

// GORMQuizRepository is a GORM implementation of QuizRepository.
type GORMQuizRepository struct {
	db *gorm.DB
}

// NewGORMQuizRepository creates a new instance of GORMQuizRepository.
func NewGORMQuizRepository(db *gorm.DB) *GORMQuizRepository {
	return &GORMQuizRepository{
		db: db,
	}
}

// ListPlantNames returns every quiz with only its id and plant name loaded.
func (r *GORMQuizRepository) ListPlantNames(ctx context.Context) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	if err := r.db.WithContext(ctx).Select("id", "plant_name").Order("plant_name ASC").Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

// GetByPlantName matches the stored plant name exactly.
func (r *GORMQuizRepository) GetByPlantName(ctx context.Context, plantName string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, "plant_name = ?", plantName).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("quiz for %s not found", plantName)
		}
		return nil, fmt.Errorf("failed to get quiz for %s: %w", plantName, err)
	}
	return &quiz, nil
}

// GetByID retrieves a quiz by its ID.
func (r *GORMQuizRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("quiz with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return &quiz, nil
}

// Upsert inserts quiz or replaces the questions of the quiz with the same plant name.
func (r *GORMQuizRepository) Upsert(ctx context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plant_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"questions"}),
	}).Create(quiz).Error
	if err != nil {
		return fmt.Errorf("failed to upsert quiz for %s: %w", quiz.PlantName, err)
	}
	return nil
}
