// Package seed loads reference plants, quizzes and images from a YAML file.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"herbalgarden/internal/logger"
	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"
	"herbalgarden/internal/storage"
	"herbalgarden/pkg/plantname"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

// File is the document layout of a seed file.
type File struct {
	Plants  []Plant    `yaml:"plants"`
	Quizzes []Quiz     `yaml:"quizzes"`
	Images  []ImageSet `yaml:"images"`

	dir string
}

// Plant is one seeded plant. ModelFile names a .glb file, relative to the seed
// file, that is copied into the model store under the plant's default key.
type Plant struct {
	PlantName              string                     `yaml:"plantName"`
	ScientificName         string                     `yaml:"scientificName"`
	Description            string                     `yaml:"description"`
	Taxonomy               models.Taxonomy            `yaml:"taxonomy"`
	Morphology             models.Morphology          `yaml:"morphology"`
	Phytochemistry         []string                   `yaml:"phytochemistry"`
	MedicinalProperties    []models.MedicinalProperty `yaml:"medicinalProperties"`
	AyurvedicProfile       models.AyurvedicProfile    `yaml:"ayurvedicProfile"`
	TraditionalUses        []string                   `yaml:"traditionalUses"`
	PharmacologicalStudies []string                   `yaml:"pharmacologicalStudies"`
	GenomicResearch        []string                   `yaml:"genomicResearch"`
	CulturalSignificance   []string                   `yaml:"culturalSignificance"`
	References             []string                   `yaml:"references"`
	Precautions            []string                   `yaml:"precautions"`
	GrowingConditions      models.GrowingConditions   `yaml:"growingConditions"`
	CareInstructions       models.CareInstructions    `yaml:"careInstructions"`
	GeographicDistribution string                     `yaml:"geographicDistribution"`
	Origin                 string                     `yaml:"origin"`
	HarvestTime            string                     `yaml:"harvestTime"`
	SafetyNotes            models.SafetyNotes         `yaml:"safetyNotes"`
	Model3DKey             string                     `yaml:"model3DKey"`
	ModelFile              string                     `yaml:"modelFile"`
}

type Quiz struct {
	PlantName string            `yaml:"plantName"`
	Questions []models.Question `yaml:"questions"`
}

type ImageSet struct {
	PlantName string                   `yaml:"plantName"`
	Images    []models.ImageDescriptor `yaml:"images"`
}

// Load parses the seed file at path. Unknown keys are an error.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	file.dir = filepath.Dir(path)
	return &file, nil
}

// Model converts a seed entry into a storable plant.
func (p Plant) Model() *models.Plant {
	return &models.Plant{
		PlantName:              p.PlantName,
		ScientificName:         p.ScientificName,
		Description:            p.Description,
		Taxonomy:               datatypes.NewJSONType(p.Taxonomy),
		Morphology:             datatypes.NewJSONType(p.Morphology),
		Phytochemistry:         datatypes.NewJSONSlice(nonNil(p.Phytochemistry)),
		MedicinalProperties:    datatypes.NewJSONSlice(nonNil(p.MedicinalProperties)),
		AyurvedicProfile:       datatypes.NewJSONType(p.AyurvedicProfile),
		TraditionalUses:        datatypes.NewJSONSlice(nonNil(p.TraditionalUses)),
		PharmacologicalStudies: datatypes.NewJSONSlice(nonNil(p.PharmacologicalStudies)),
		GenomicResearch:        datatypes.NewJSONSlice(nonNil(p.GenomicResearch)),
		CulturalSignificance:   datatypes.NewJSONSlice(nonNil(p.CulturalSignificance)),
		References:             datatypes.NewJSONSlice(nonNil(p.References)),
		Precautions:            datatypes.NewJSONSlice(nonNil(p.Precautions)),
		GrowingConditions:      datatypes.NewJSONType(p.GrowingConditions),
		CareInstructions:       datatypes.NewJSONType(p.CareInstructions),
		GeographicDistribution: p.GeographicDistribution,
		Origin:                 p.Origin,
		HarvestTime:            p.HarvestTime,
		SafetyNotes:            datatypes.NewJSONType(p.SafetyNotes),
		Model3DKey:             p.Model3DKey,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Repositories are the stores a seed is applied to.
type Repositories struct {
	Plants  repositories.PlantRepository
	Quizzes repositories.QuizRepository
	Images  repositories.ImageRepository
	Models  storage.ModelStore
}

// Apply upserts every entry of file. Plants are keyed by normalized name,
// quizzes by plant name and image sets by plant, so re-applying is harmless.
func Apply(ctx context.Context, log *logger.Logger, repos Repositories, file *File) error {
	stored := 0
	for _, p := range file.Plants {
		plant := p.Model()
		if p.ModelFile != "" {
			key, err := storeModel(ctx, repos.Models, file.dir, p)
			if err != nil {
				return err
			}
			plant.Model3DKey = key
			stored++
		}
		if err := repos.Plants.Upsert(ctx, plant); err != nil {
			return err
		}
	}
	for _, q := range file.Quizzes {
		quiz := &models.Quiz{PlantName: q.PlantName, Questions: datatypes.NewJSONSlice(nonNil(q.Questions))}
		if err := repos.Quizzes.Upsert(ctx, quiz); err != nil {
			return err
		}
	}
	for _, s := range file.Images {
		set := &models.PlantImageSet{PlantName: s.PlantName, Images: datatypes.NewJSONSlice(nonNil(s.Images))}
		existing, err := repos.Images.FindImageSet(ctx, plantname.Normalize(s.PlantName), s.PlantName)
		if err != nil {
			return err
		}
		if existing != nil {
			set.ID = existing.ID
		}
		if err := repos.Images.SaveImageSet(ctx, set); err != nil {
			return err
		}
	}
	log.Info("seed applied", "plants", len(file.Plants), "models", stored, "quizzes", len(file.Quizzes), "image_sets", len(file.Images))
	return nil
}

func storeModel(ctx context.Context, store storage.ModelStore, dir string, p Plant) (string, error) {
	if store == nil {
		return "", fmt.Errorf("seed plant %s has a model file but no model store is configured", p.PlantName)
	}
	path := p.ModelFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read model for %s: %w", p.PlantName, err)
	}
	key := plantname.Normalize(p.PlantName) + ".glb"
	if err := store.Put(ctx, key, data); err != nil {
		return "", fmt.Errorf("failed to store model for %s: %w", p.PlantName, err)
	}
	return key, nil
}
