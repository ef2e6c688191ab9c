package services

import (
	"context"

	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"
)

// QuizService serves the read-only quiz catalogue.
type QuizService struct {
	repo repositories.QuizRepository
}

// NewQuizService creates a new QuizService.
func NewQuizService(repo repositories.QuizRepository) *QuizService {
	return &QuizService{
		repo: repo,
	}
}

// ListQuizzes returns every quiz with only the plant name filled in.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.repo.ListPlantNames(ctx)
}

func (s *QuizService) GetQuizByPlantName(ctx context.Context, plantName string) (*models.Quiz, error) {
	return s.repo.GetByPlantName(ctx, plantName)
}

func (s *QuizService) GetQuizByID(ctx context.Context, id string) (*models.Quiz, error) {
	return s.repo.GetByID(ctx, id)
}
