package models

import "gorm.io/datatypes"

// Quiz is the fixed question set for one plant.
type Quiz struct {
	ID        string                        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PlantName string                        `json:"plantName" gorm:"uniqueIndex;not null"`
	Questions datatypes.JSONSlice[Question] `json:"questions,omitempty"`
}

type Question struct {
	QuestionText  string   `json:"questionText" yaml:"questionText"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
}
