package repositories

import (
	"context"
	"fmt"
	"strings"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict("user '%s' already exists", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FirstOrCreateByEmail inserts user unless a row with the same email exists,
// then returns whichever row is stored. The insert is a single
// ON CONFLICT DO NOTHING statement, so concurrent callers converge on one row.
func (r *GORMUserRepository) FirstOrCreateByEmail(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to insert user %s: %w", user.Email, err)
	}

	var stored models.User
	if err := r.db.WithContext(ctx).Omit("password").First(&stored, "email = ?", user.Email).Error; err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", user.Email, err)
	}
	return &stored, nil
}

// GetByEmail retrieves a user, including the password hash, by email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Omit("password").First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("user with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetPasswordHash returns the stored hash for id, empty for OAuth-only accounts.
func (r *GORMUserRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Select("id", "password").First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return "", apperr.NotFound("user with ID %s not found", id)
		}
		return "", fmt.Errorf("failed to get password for user %s: %w", id, err)
	}
	return user.Password, nil
}

// Update saves profile fields. The password column is left untouched.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).Select("name", "username", "email", "settings", "profile_picture").Updates(user)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return apperr.Conflict("email '%s' already registered", user.Email)
		}
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user with ID %s not found for update", user.ID)
	}
	return nil
}

// UpdatePassword replaces the stored hash.
func (r *GORMUserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).UpdateColumn("password", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user with ID %s not found for update", id)
	}
	return nil
}

// Delete deletes a user by its ID from the database.
func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user with ID %s not found for deletion", id)
	}
	return nil
}
