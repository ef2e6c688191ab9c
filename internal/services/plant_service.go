package services

import (
	"context"
	"fmt"
	"strings"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// PlantService handles business logic related to plants.
type PlantService struct {
	repo     repositories.PlantRepository
	resolver *PlantResolver
	validate *validator.Validate
}

// NewPlantService creates a new PlantService.
func NewPlantService(repo repositories.PlantRepository, resolver *PlantResolver) *PlantService {
	return &PlantService{
		repo:     repo,
		resolver: resolver,
		validate: validator.New(),
	}
}

// GetAllPlants retrieves all plants.
func (s *PlantService) GetAllPlants(ctx context.Context) ([]models.Plant, error) {
	return s.repo.GetAll(ctx)
}

// GetPlantByID retrieves a single plant by its ID.
func (s *PlantService) GetPlantByID(ctx context.Context, id string) (*models.Plant, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPlantByName resolves a free-text name through the matcher cascade.
func (s *PlantService) GetPlantByName(ctx context.Context, name string) (*models.Plant, error) {
	return s.resolver.Resolve(ctx, name)
}

// SearchPlants matches name against display and scientific names.
func (s *PlantService) SearchPlants(ctx context.Context, name string) ([]models.Plant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Name parameter is required")
	}
	return s.repo.Search(ctx, name)
}

// CreatePlant validates and inserts a plant. The normalized name is derived on save.
func (s *PlantService) CreatePlant(ctx context.Context, plant *models.Plant) error {
	plant.PlantName = strings.TrimSpace(plant.PlantName)
	if err := validateStruct(s.validate, plant); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, plant); err != nil {
		return fmt.Errorf("create plant: %w", err)
	}
	return nil
}
