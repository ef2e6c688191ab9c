package models

import (
	"encoding/json"
	"time"

	"herbalgarden/pkg/plantname"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Plant is one botanical entry of the garden.
type Plant struct {
	ID                     string                                 `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PlantName              string                                 `json:"plantName" gorm:"not null" validate:"required,max=200"`
	NormalizedPlantName    string                                 `json:"normalizedPlantName" gorm:"uniqueIndex;not null"`
	ScientificName         string                                 `json:"scientificName,omitempty"`
	Description            string                                 `json:"description,omitempty" gorm:"type:text"`
	Taxonomy               datatypes.JSONType[Taxonomy]           `json:"taxonomy"`
	Morphology             datatypes.JSONType[Morphology]         `json:"morphology"`
	GeographicDistribution string                                 `json:"geographicDistribution,omitempty"`
	Phytochemistry         datatypes.JSONSlice[string]            `json:"phytochemistry"`
	MedicinalProperties    datatypes.JSONSlice[MedicinalProperty] `json:"medicinalProperties"`
	AyurvedicProfile       datatypes.JSONType[AyurvedicProfile]   `json:"ayurvedicProfile"`
	TraditionalUses        datatypes.JSONSlice[string]            `json:"traditionalUses"`
	PharmacologicalStudies datatypes.JSONSlice[string]            `json:"pharmacologicalStudies"`
	GenomicResearch        datatypes.JSONSlice[string]            `json:"genomicResearch"`
	CulturalSignificance   datatypes.JSONSlice[string]            `json:"culturalSignificance"`
	References             datatypes.JSONSlice[string]            `json:"references"`
	Precautions            datatypes.JSONSlice[string]            `json:"precautions"`
	GrowingConditions      datatypes.JSONType[GrowingConditions]  `json:"growingConditions"`
	CareInstructions       datatypes.JSONType[CareInstructions]   `json:"careInstructions"`
	Origin                 string                                 `json:"origin,omitempty"`
	HarvestTime            string                                 `json:"harvestTime,omitempty"`
	SafetyNotes            datatypes.JSONType[SafetyNotes]        `json:"safetyNotes"`
	Model3D                []byte                                 `json:"-" gorm:"column:model_3d"`                        // legacy in-row .glb
	Model3DKey             string                                 `json:"model3DKey,omitempty" gorm:"column:model_3d_key"` // object key in the model store
	LastUpdated            time.Time                              `json:"lastUpdated"`
}

type Taxonomy struct {
	Kingdom string `json:"kingdom,omitempty" yaml:"kingdom"`
	Phylum  string `json:"phylum,omitempty" yaml:"phylum"`
	Class   string `json:"class,omitempty" yaml:"class"`
	Order   string `json:"order,omitempty" yaml:"order"`
	Family  string `json:"family,omitempty" yaml:"family"`
	Genus   string `json:"genus,omitempty" yaml:"genus"`
	Species string `json:"species,omitempty" yaml:"species"`
}

type Morphology struct {
	Height  string `json:"height,omitempty" yaml:"height"`
	Leaves  string `json:"leaves,omitempty" yaml:"leaves"`
	Flowers string `json:"flowers,omitempty" yaml:"flowers"`
	Fruits  string `json:"fruits,omitempty" yaml:"fruits"`
	Roots   string `json:"roots,omitempty" yaml:"roots"`
}

type AyurvedicProfile struct {
	Rasa             []string `json:"rasa,omitempty" yaml:"rasa"`
	Guna             []string `json:"guna,omitempty" yaml:"guna"`
	Virya            string   `json:"virya,omitempty" yaml:"virya"`
	Vipaka           string   `json:"vipaka,omitempty" yaml:"vipaka"`
	DoshaAction      string   `json:"doshaAction,omitempty" yaml:"doshaAction"`
	AyurvedicActions []string `json:"ayurvedicActions,omitempty" yaml:"ayurvedicActions"`
}

type GrowingConditions struct {
	Climate    string `json:"climate,omitempty" yaml:"climate"`
	SoilType   string `json:"soilType,omitempty" yaml:"soilType"`
	Sunlight   string `json:"sunlight,omitempty" yaml:"sunlight"`
	WaterNeeds string `json:"waterNeeds,omitempty" yaml:"waterNeeds"`
}

type CareInstructions struct {
	Watering    string `json:"watering,omitempty" yaml:"watering"`
	Sunlight    string `json:"sunlight,omitempty" yaml:"sunlight"`
	SoilType    string `json:"soilType,omitempty" yaml:"soilType"`
	Fertilizing string `json:"fertilizing,omitempty" yaml:"fertilizing"`
	Pruning     string `json:"pruning,omitempty" yaml:"pruning"`
	PestControl string `json:"pestControl,omitempty" yaml:"pestControl"`
}

type SafetyNotes struct {
	Toxicity          string   `json:"toxicity,omitempty" yaml:"toxicity"`
	Warnings          []string `json:"warnings,omitempty" yaml:"warnings"`
	Contraindications []string `json:"contraindications,omitempty" yaml:"contraindications"`
}

// MedicinalProperty accepts both {"property": ..., "description": ...} and a
// bare string, which older records use.
type MedicinalProperty struct {
	Property    string `json:"property" yaml:"property"`
	Description string `json:"description,omitempty" yaml:"description"`
}

func (m *MedicinalProperty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = MedicinalProperty{Property: s}
		return nil
	}
	type plain MedicinalProperty
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MedicinalProperty(p)
	return nil
}

// BeforeSave keeps NormalizedPlantName derived from PlantName.
func (p *Plant) BeforeSave(tx *gorm.DB) error {
	p.NormalizedPlantName = plantname.Normalize(p.PlantName)
	if p.LastUpdated.IsZero() {
		p.LastUpdated = time.Now()
	}
	return nil
}

// PlantSummary is the display projection of a plant joined onto notes.
type PlantSummary struct {
	ID        string `json:"id"`
	PlantName string `json:"plantName"`
}

func (PlantSummary) TableName() string { return "plants" }
