package services

import (
	"context"
	"fmt"
	"strings"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// ProfileUpdate changes account fields. Username is accepted as an alias for Name.
type ProfileUpdate struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// SettingsUpdate changes appearance settings.
type SettingsUpdate struct {
	Theme    *string `json:"theme" validate:"omitempty,oneof=light dark"`
	FontSize *string `json:"fontSize" validate:"omitempty,oneof=small medium large"`
}

// UserService handles account self-service.
type UserService struct {
	repo     repositories.UserRepository
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo:     repo,
		validate: validator.New(),
	}
}

// GetProfile retrieves the account of id without its password hash.
func (s *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies name and email changes.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.User, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Username != nil {
		user.Name = *in.Username
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		user.Email = *in.Email
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// UpdateSettings changes theme and font size.
func (s *UserService) UpdateSettings(ctx context.Context, id string, in SettingsUpdate) (*models.User, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	settings := user.Settings.Data()
	if settings.Theme == "" && settings.FontSize == "" {
		settings = models.DefaultUserSettings()
	}
	if in.Theme != nil {
		settings.Theme = *in.Theme
	}
	if in.FontSize != nil {
		settings.FontSize = *in.FontSize
	}
	user.Settings = datatypes.NewJSONType(settings)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.Validation("Please provide both old and new passwords")
	}
	if len(newPassword) < 6 {
		return apperr.Validation("New password must be at least 6 characters")
	}
	hash, err := s.repo.GetPasswordHash(ctx, id)
	if err != nil {
		return err
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)) != nil {
		return apperr.Unauthorized("Invalid old password")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(newHash))
}

// DeleteAccount removes the account of id.
func (s *UserService) DeleteAccount(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
