package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an account identity. Password holds a bcrypt hash and is only
// required for accounts without a Google identity.
type User struct {
	ID             string                           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string                           `json:"name"`
	Username       *string                          `json:"username,omitempty" gorm:"uniqueIndex;type:varchar(100)"`
	GoogleID       *string                          `json:"-" gorm:"uniqueIndex;type:varchar(255)"`
	Email          string                           `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Password       string                           `json:"-" gorm:"type:varchar(255)"` // never serialized
	Settings       datatypes.JSONType[UserSettings] `json:"settings"`
	ProfilePicture string                           `json:"profilePicture"`
	CreatedAt      time.Time                        `json:"createdAt"`
}

type UserSettings struct {
	Theme    string `json:"theme"`
	FontSize string `json:"fontSize"`
}

// DefaultUserSettings matches what a freshly created account sees.
func DefaultUserSettings() UserSettings {
	return UserSettings{Theme: "light", FontSize: "medium"}
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	if u.ProfilePicture == "" {
		u.ProfilePicture = "default-profile.png"
	}
	return nil
}

// UserSummary is the display projection of a user joined onto notes.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (UserSummary) TableName() string { return "users" }
