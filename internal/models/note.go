package models

import (
	"time"

	"gorm.io/datatypes"
)

// NoteCategory is the fixed set of buckets a note can be filed under.
type NoteCategory string

const (
	CategoryPersonal    NoteCategory = "personal"
	CategoryResearch    NoteCategory = "research"
	CategoryObservation NoteCategory = "observation"
	CategoryGeneral     NoteCategory = "general"
)

const (
	MaxNoteTitleLen   = 100
	MaxNoteContentLen = 2000
	MaxNoteTagLen     = 20
)

// Note is a user-authored annotation, optionally linked to a plant.
//
// PlantName is a materialized copy written at create time so a note stays
// readable when PlantID is empty or points at a plant that no longer matches.
type Note struct {
	ID          string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string                      `json:"userId" gorm:"type:varchar(36);index;not null"`
	User        *UserSummary                `json:"user,omitempty" gorm:"foreignKey:UserID;-:migration"`
	PlantID     *string                     `json:"plantId,omitempty" gorm:"type:varchar(36);index"`
	Plant       *PlantSummary               `json:"plant,omitempty" gorm:"foreignKey:PlantID;-:migration"`
	PlantName   string                      `json:"plantName" gorm:"not null;index" validate:"required"`
	Title       string                      `json:"title" gorm:"size:100;not null" validate:"required,max=100"`
	Content     string                      `json:"content" gorm:"size:2000;not null" validate:"required,max=2000"`
	Category    NoteCategory                `json:"category" gorm:"size:20;index;not null" validate:"oneof=personal research observation general"`
	Tags        datatypes.JSONSlice[string] `json:"tags" validate:"dive,max=20"`
	IsShared    bool                        `json:"isShared"`
	SharedWith  datatypes.JSONSlice[string] `json:"sharedWith"`
	SharedUsers []UserSummary               `json:"sharedWithUsers,omitempty" gorm:"-"`
	CreatedAt   time.Time                   `json:"createdAt" gorm:"index;autoCreateTime:false"`
	UpdatedAt   time.Time                   `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// ValidCategory reports whether c is one of the fixed note categories.
func ValidCategory(c NoteCategory) bool {
	switch c {
	case CategoryPersonal, CategoryResearch, CategoryObservation, CategoryGeneral:
		return true
	}
	return false
}

// NoteFilter narrows List and MostRecent queries. Empty fields match everything.
type NoteFilter struct {
	UserID    string
	PlantName string
	Category  NoteCategory
}

// NoteCategoryGroup is one bucket of a user's notes grouped by category.
type NoteCategoryGroup struct {
	Category NoteCategory `json:"category"`
	Notes    []Note       `json:"notes"`
	Count    int          `json:"count"`
}
