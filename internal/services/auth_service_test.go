package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"
	"herbalgarden/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	in := services.RegisterInput{Name: "Asha", Email: "Asha@Example.com ", Password: "password123"}

	// Test successful registration
	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(nil, apperr.NotFound("user with email asha@example.com not found")).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		u := args.Get(1).(*models.User)
		u.ID = "user-123"
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")))
		assert.Equal(t, "light", u.Settings.Data().Theme)
	}).Return(nil).Once()

	user, token, err := authService.RegisterUser(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, token)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, _, err = authService.RegisterUser(ctx, in)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Contains(t, err.Error(), "email 'asha@example.com' already registered")
	mockRepo.AssertExpectations(t)

	// Test validation failure, nothing stored
	_, _, err = authService.RegisterUser(ctx, services.RegisterInput{Email: "not-an-email", Password: "pw"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := func() *models.User {
		return &models.User{ID: "user-123", Name: "Asha", Email: "asha@example.com", Password: string(hashedPassword)}
	}

	// Test successful login
	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(stored(), nil).Once()
	user, token, err := authService.LoginUser(ctx, "asha@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.Password)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "asha@example.com", claims["email"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(stored(), nil).Once()
	_, _, err = authService.LoginUser(ctx, "asha@example.com", "wrongpassword")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", apperr.Message(err))

	// Test invalid credentials (user not found)
	mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, apperr.NotFound("user with email nobody@example.com not found")).Once()
	_, _, err = authService.LoginUser(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", apperr.Message(err))

	// Test OAuth-only account
	mockRepo.On("GetByEmail", ctx, "google@example.com").Return(&models.User{ID: "g", Email: "google@example.com"}, nil).Once()
	_, _, err = authService.LoginUser(ctx, "google@example.com", "password123")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, time.Hour)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"email":   "asha@example.com",
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "asha@example.com", claims["email"])

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid token")

	// Test wrong secret
	forged, _ := token.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(forged)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, "Token expired", apperr.Message(err))
}
