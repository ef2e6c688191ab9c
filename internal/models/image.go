package models

import "gorm.io/datatypes"

// PlantImageSet is the consolidated shape: one row per plant carrying all
// of its image descriptors.
type PlantImageSet struct {
	ID                  string                               `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PlantName           string                               `json:"plantName" gorm:"not null"`
	NormalizedPlantName string                               `json:"normalizedPlantName" gorm:"index"`
	Images              datatypes.JSONSlice[ImageDescriptor] `json:"images"`
}

func (PlantImageSet) TableName() string { return "plant_images" }

type ImageDescriptor struct {
	ID      string `json:"id,omitempty" yaml:"id"`
	URL     string `json:"url" yaml:"url"`
	Title   string `json:"title,omitempty" yaml:"title"`
	Caption string `json:"caption,omitempty" yaml:"caption"`
}

// LegacyImage is the older one-row-per-image shape. An image is either
// referenced by URL or stored inline as Data with ContentType.
type LegacyImage struct {
	ID                  string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PlantName           string `json:"plantName"`
	NormalizedPlantName string `json:"normalizedPlantName" gorm:"index"`
	URL                 string `json:"url,omitempty"`
	Title               string `json:"title,omitempty"`
	Caption             string `json:"caption,omitempty"`
	ContentType         string `json:"contentType,omitempty"`
	Data                []byte `json:"-"`
}

// ImageView is what the images endpoint returns for either shape.
type ImageView struct {
	ID        string  `json:"id,omitempty"`
	PlantName string  `json:"plantName"`
	Title     *string `json:"title"`
	Caption   *string `json:"caption"`
	Src       string  `json:"src"`
}
