package services

import (
	"context"
	"errors"
	"strings"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"
	"herbalgarden/internal/storage"
	"herbalgarden/pkg/plantname"
)

// ModelAsset is a downloadable 3D model.
type ModelAsset struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ModelService serves plant 3D models from the plant row or the model store.
type ModelService struct {
	plants repositories.PlantRepository
	store  storage.ModelStore
}

// NewModelService creates a new ModelService.
func NewModelService(plants repositories.PlantRepository, store storage.ModelStore) *ModelService {
	return &ModelService{
		plants: plants,
		store:  store,
	}
}

// ModelKey is the default object key of a plant's model.
func ModelKey(name string) string {
	return plantname.Normalize(name) + ".glb"
}

func (s *ModelService) plant(ctx context.Context, name string) (*models.Plant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("Plant name is required")
	}
	p, err := s.plants.FindByNormalizedName(ctx, plantname.Normalize(name))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Plant not found")
	}
	return p, err
}

// ModelForPlant returns the bytes stored in the plant row when present,
// otherwise the object named by the plant's model key, otherwise the object
// "<normalized name>.glb".
func (s *ModelService) ModelForPlant(ctx context.Context, name string) (*ModelAsset, error) {
	p, err := s.plant(ctx, name)
	if err != nil {
		return nil, err
	}
	filename := ModelKey(p.PlantName)
	if len(p.Model3D) > 0 {
		return &ModelAsset{Filename: filename, ContentType: storage.ModelContentType, Data: p.Model3D}, nil
	}
	key := p.Model3DKey
	if key == "" {
		key = filename
	}
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, apperr.NotFound("3D model not found for this plant")
	}
	if err != nil {
		return nil, err
	}
	return &ModelAsset{Filename: filename, ContentType: storage.ModelContentType, Data: data}, nil
}

// ModelByKey returns a stored object directly.
func (s *ModelService) ModelByKey(ctx context.Context, key string) (*ModelAsset, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, apperr.NotFound("3D model not found")
	}
	if err != nil {
		return nil, err
	}
	return &ModelAsset{Filename: "model.glb", ContentType: storage.ModelContentType, Data: data}, nil
}

// ListModels lists every stored model object.
func (s *ModelService) ListModels(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.store.List(ctx)
}

// DeleteModel removes a plant's stored model object and clears its key.
// Bytes held in the plant row are not touched.
func (s *ModelService) DeleteModel(ctx context.Context, name string) error {
	p, err := s.plant(ctx, name)
	if err != nil {
		return err
	}
	key := p.Model3DKey
	if key == "" {
		key = ModelKey(p.PlantName)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		if !errors.Is(err, storage.ErrObjectNotFound) {
			return err
		}
		if p.Model3DKey == "" {
			return apperr.NotFound("3D model not found for this plant")
		}
	}
	if p.Model3DKey != "" {
		return s.plants.SetModelKey(ctx, p.ID, "")
	}
	return nil
}
