package services_test

import (
	"context"

	"herbalgarden/internal/models"
	"herbalgarden/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FirstOrCreateByEmail(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlantRepository is a mock implementation of repositories.PlantRepository
type MockPlantRepository struct {
	mock.Mock
}

func (m *MockPlantRepository) plant(args mock.Arguments) (*models.Plant, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plant), args.Error(1)
}

func (m *MockPlantRepository) GetAll(ctx context.Context) ([]models.Plant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plant), args.Error(1)
}

func (m *MockPlantRepository) GetByID(ctx context.Context, id string) (*models.Plant, error) {
	return m.plant(m.Called(ctx, id))
}

func (m *MockPlantRepository) FindByNormalizedName(ctx context.Context, normalized string) (*models.Plant, error) {
	return m.plant(m.Called(ctx, normalized))
}

func (m *MockPlantRepository) FindByNameFold(ctx context.Context, name string) (*models.Plant, error) {
	return m.plant(m.Called(ctx, name))
}

func (m *MockPlantRepository) FindByNameContains(ctx context.Context, fragment string) (*models.Plant, error) {
	return m.plant(m.Called(ctx, fragment))
}

func (m *MockPlantRepository) Search(ctx context.Context, fragment string) ([]models.Plant, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plant), args.Error(1)
}

func (m *MockPlantRepository) Create(ctx context.Context, plant *models.Plant) error {
	args := m.Called(ctx, plant)
	return args.Error(0)
}

func (m *MockPlantRepository) Upsert(ctx context.Context, plant *models.Plant) error {
	args := m.Called(ctx, plant)
	return args.Error(0)
}

func (m *MockPlantRepository) SetModelKey(ctx context.Context, id, key string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

// MockNoteRepository is a mock implementation of repositories.NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) note(args mock.Arguments) (*models.Note, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) Create(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	return m.note(m.Called(ctx, id))
}

func (m *MockNoteRepository) List(ctx context.Context, filter models.NoteFilter, limit int) ([]models.Note, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockNoteRepository) Latest(ctx context.Context, filter models.NoteFilter) (*models.Note, error) {
	return m.note(m.Called(ctx, filter))
}

func (m *MockNoteRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockImageRepository is a mock implementation of repositories.ImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) FindImageSet(ctx context.Context, normalized, name string) (*models.PlantImageSet, error) {
	args := m.Called(ctx, normalized, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlantImageSet), args.Error(1)
}

func (m *MockImageRepository) FindLegacy(ctx context.Context, normalized, name string) ([]models.LegacyImage, error) {
	args := m.Called(ctx, normalized, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LegacyImage), args.Error(1)
}

func (m *MockImageRepository) SaveImageSet(ctx context.Context, set *models.PlantImageSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockImageRepository) CreateLegacy(ctx context.Context, img *models.LegacyImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

// MockModelStore is a mock implementation of storage.ModelStore
type MockModelStore struct {
	mock.Mock
}

func (m *MockModelStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockModelStore) Put(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *MockModelStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockModelStore) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ObjectInfo), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	args := m.Called(ctx, routingKey, body)
	return args.Error(0)
}
