package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"
	"herbalgarden/pkg/plantname"
)

// PlantMatcher is one step of the resolver cascade. Find returns an error
// wrapping apperr.ErrNotFound when the step misses.
type PlantMatcher struct {
	Name string
	Find func(ctx context.Context, repo repositories.PlantRepository, name string) (*models.Plant, error)
}

// DefaultMatchers is the resolver cascade, most precise first.
func DefaultMatchers() []PlantMatcher {
	return []PlantMatcher{
		{
			Name: "normalized",
			Find: func(ctx context.Context, repo repositories.PlantRepository, name string) (*models.Plant, error) {
				return repo.FindByNormalizedName(ctx, plantname.Normalize(name))
			},
		},
		{
			Name: "case-insensitive",
			Find: func(ctx context.Context, repo repositories.PlantRepository, name string) (*models.Plant, error) {
				return repo.FindByNameFold(ctx, name)
			},
		},
		{
			Name: "partial",
			Find: func(ctx context.Context, repo repositories.PlantRepository, name string) (*models.Plant, error) {
				return repo.FindByNameContains(ctx, name)
			},
		},
	}
}

// PlantResolver maps an imprecise plant name onto one stored plant.
type PlantResolver struct {
	repo     repositories.PlantRepository
	matchers []PlantMatcher
}

// NewPlantResolver creates a resolver running matchers in order. With no
// matchers it uses DefaultMatchers.
func NewPlantResolver(repo repositories.PlantRepository, matchers ...PlantMatcher) *PlantResolver {
	if len(matchers) == 0 {
		matchers = DefaultMatchers()
	}
	return &PlantResolver{
		repo:     repo,
		matchers: matchers,
	}
}

// Resolve returns the first plant any matcher finds. A complete miss is an
// error wrapping apperr.ErrNotFound; callers are expected to handle it.
func (r *PlantResolver) Resolve(ctx context.Context, name string) (*models.Plant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("plant name is required")
	}
	for _, m := range r.matchers {
		plant, err := m.Find(ctx, r.repo, name)
		if err == nil && plant != nil {
			return plant, nil
		}
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("resolve plant %q (%s): %w", name, m.Name, err)
		}
	}
	return nil, apperr.NotFound("Plant not found")
}
