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
	"gorm.io/datatypes"
)

const origin = "http://localhost:5000"

func TestImageService_ConsolidatedSet(t *testing.T) {
	ctx := context.Background()
	repo := new(MockImageRepository)
	repo.On("FindImageSet", ctx, "holybasil", "Holy Basil").Return(&models.PlantImageSet{
		PlantName: "Holy Basil",
		Images: datatypes.NewJSONSlice([]models.ImageDescriptor{
			{ID: "1", URL: "/images/tulsi-1.jpg", Title: "Leaf"},
			{ID: "2", URL: "images/tulsi-2.jpg"},
			{ID: "3", URL: "https://cdn.example.com/tulsi-3.jpg", Caption: "Flower"},
			{ID: "4"},
		}),
	}, nil).Once()

	views, err := services.NewImageService(repo).ImagesForPlant(ctx, "Holy Basil", origin)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, origin+"/images/tulsi-1.jpg", views[0].Src)
	require.NotNil(t, views[0].Title)
	assert.Equal(t, "Leaf", *views[0].Title)
	assert.Nil(t, views[0].Caption)
	assert.Equal(t, origin+"/images/tulsi-2.jpg", views[1].Src)
	assert.Equal(t, "https://cdn.example.com/tulsi-3.jpg", views[2].Src)
	assert.Equal(t, "Holy Basil", views[2].PlantName)
	repo.AssertNotCalled(t, "FindLegacy", mock.Anything, mock.Anything)
}

func TestImageService_LegacyFallback(t *testing.T) {
	ctx := context.Background()
	repo := new(MockImageRepository)
	repo.On("FindImageSet", ctx, "neem", "Neem").Return(&models.PlantImageSet{PlantName: "Neem"}, nil).Once()
	repo.On("FindLegacy", ctx, "neem", "Neem").Return([]models.LegacyImage{
		{ID: "a", PlantName: "Neem", URL: "https://img.example.com/neem.jpg"},
		{ID: "b", PlantName: "Neem", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
		{ID: "c", PlantName: "Neem"},
	}, nil).Once()

	views, err := services.NewImageService(repo).ImagesForPlant(ctx, "Neem", origin)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "https://img.example.com/neem.jpg", views[0].Src)
	assert.Equal(t, "data:image/png;base64,iVBORw==", views[1].Src)
	repo.AssertExpectations(t)
}

func TestImageService_NothingStored(t *testing.T) {
	ctx := context.Background()
	repo := new(MockImageRepository)
	repo.On("FindImageSet", ctx, "aloe", "aloe").Return(nil, nil).Once()
	repo.On("FindLegacy", ctx, "aloe", "aloe").Return([]models.LegacyImage{}, nil).Once()

	views, err := services.NewImageService(repo).ImagesForPlant(ctx, "aloe", origin)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)

	_, err = services.NewImageService(repo).ImagesForPlant(ctx, " ", origin)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
