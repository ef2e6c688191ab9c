package services_test

import (
	"context"
	"testing"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"
	"herbalgarden/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func TestUserService_UpdateSettings(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("GetByID", ctx, ownerID).Return(&models.User{
		ID:       ownerID,
		Settings: datatypes.NewJSONType(models.DefaultUserSettings()),
	}, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	dark := "dark"
	user, err := svc.UpdateSettings(ctx, ownerID, services.SettingsUpdate{Theme: &dark})
	require.NoError(t, err)
	assert.Equal(t, "dark", user.Settings.Data().Theme)
	assert.Equal(t, "medium", user.Settings.Data().FontSize)

	huge := "huge"
	_, err = svc.UpdateSettings(ctx, ownerID, services.SettingsUpdate{FontSize: &huge})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("GetByID", ctx, ownerID).Return(&models.User{ID: ownerID, Name: "Asha", Email: "asha@example.com"}, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	username := "Asha K"
	user, err := svc.UpdateProfile(ctx, ownerID, services.ProfileUpdate{Username: &username})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", user.Name)
	assert.Equal(t, "asha@example.com", user.Email)
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.DefaultCost)

	repo.On("GetPasswordHash", ctx, ownerID).Return(string(hash), nil).Twice()
	repo.On("UpdatePassword", ctx, ownerID, mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(args.String(2)), []byte("newpass")))
	}).Return(nil).Once()

	err := svc.ChangePassword(ctx, ownerID, "wrong", "newpass")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, "Invalid old password", apperr.Message(err))

	assert.ErrorIs(t, svc.ChangePassword(ctx, ownerID, "oldpass", "123"), apperr.ErrValidation)
	assert.NoError(t, svc.ChangePassword(ctx, ownerID, "oldpass", "newpass"))
	repo.AssertExpectations(t)
}
