package repositories

import (
	"context"

	"herbalgarden/internal/models"
)

// QuizRepository defines the interface for quiz data access.
type QuizRepository interface {
	ListPlantNames(ctx context.Context) ([]models.Quiz, error)
	GetByPlantName(ctx context.Context, plantName string) (*models.Quiz, error)
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	Upsert(ctx context.Context, quiz *models.Quiz) error
}
