package services

import (
	"context"
	"encoding/base64"
	"strings"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"
	"herbalgarden/pkg/plantname"
)

// ImageService resolves a plant's images across the consolidated and
// legacy storage shapes.
type ImageService struct {
	repo repositories.ImageRepository
}

// NewImageService creates a new ImageService.
func NewImageService(repo repositories.ImageRepository) *ImageService {
	return &ImageService{
		repo: repo,
	}
}

// ImagesForPlant prefers the consolidated image set and falls back to legacy
// rows when the set is missing or has no usable URLs. Relative URLs are made
// absolute against origin (scheme://host). Images without a source are dropped.
func (s *ImageService) ImagesForPlant(ctx context.Context, name, origin string) ([]models.ImageView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Plant name is required")
	}
	normalized := plantname.Normalize(name)

	set, err := s.repo.FindImageSet(ctx, normalized, name)
	if err != nil {
		return nil, err
	}
	if set != nil {
		views := make([]models.ImageView, 0, len(set.Images))
		for _, img := range set.Images {
			src := absoluteURL(img.URL, origin)
			if src == "" {
				continue
			}
			views = append(views, models.ImageView{
				ID:        img.ID,
				PlantName: set.PlantName,
				Title:     optional(img.Title),
				Caption:   optional(img.Caption),
				Src:       src,
			})
		}
		if len(views) > 0 {
			return views, nil
		}
	}

	legacy, err := s.repo.FindLegacy(ctx, normalized, name)
	if err != nil {
		return nil, err
	}
	views := make([]models.ImageView, 0, len(legacy))
	for _, img := range legacy {
		src := img.URL
		if src == "" && len(img.Data) > 0 && img.ContentType != "" {
			src = "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
		}
		if src == "" {
			continue
		}
		views = append(views, models.ImageView{
			ID:        img.ID,
			PlantName: img.PlantName,
			Title:     optional(img.Title),
			Caption:   optional(img.Caption),
			Src:       src,
		})
	}
	return views, nil
}

func absoluteURL(raw, origin string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "/"):
		return origin + raw
	case hasHTTPScheme(raw):
		return raw
	default:
		return origin + "/" + raw
	}
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
