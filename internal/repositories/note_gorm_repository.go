package repositories

import (
	"context"
	"fmt"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const newestFirst = "created_at DESC, id DESC"

// GORMNoteRepository is a GORM implementation of NoteRepository.
type GORMNoteRepository struct {
	db *gorm.DB
}

// NewGORMNoteRepository creates a new instance of GORMNoteRepository.
func NewGORMNoteRepository(db *gorm.DB) *GORMNoteRepository {
	return &GORMNoteRepository{
		db: db,
	}
}

func (r *GORMNoteRepository) populated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Plant")
}

func applyFilter(db *gorm.DB, filter models.NoteFilter) *gorm.DB {
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.PlantName != "" {
		db = db.Where("plant_name = ?", filter.PlantName)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	return db
}

// Create inserts a new note. Associations are never written through a note.
func (r *GORMNoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(note).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// GetByID retrieves a note with its owner, plant and shared-with users.
func (r *GORMNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := r.populated(ctx).First(&note, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("note with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get note by ID %s: %w", id, err)
	}
	if len(note.SharedWith) > 0 {
		var users []models.UserSummary
		if err := r.db.WithContext(ctx).Where("id IN ?", []string(note.SharedWith)).Find(&users).Error; err != nil {
			return nil, fmt.Errorf("failed to load shared users for note %s: %w", id, err)
		}
		note.SharedUsers = users
	}
	return &note, nil
}

// List returns up to limit notes matching filter, newest first.
func (r *GORMNoteRepository) List(ctx context.Context, filter models.NoteFilter, limit int) ([]models.Note, error) {
	notes := []models.Note{}
	err := applyFilter(r.populated(ctx), filter).Order(newestFirst).Limit(limit).Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Latest returns the newest note matching filter, or nil when none does.
func (r *GORMNoteRepository) Latest(ctx context.Context, filter models.NoteFilter) (*models.Note, error) {
	var notes []models.Note
	err := applyFilter(r.populated(ctx), filter).Order(newestFirst).Limit(1).Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get latest note: %w", err)
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return &notes[0], nil
}

// ListByUser returns all of a user's notes ordered by category, newest first within each.
func (r *GORMNoteRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	var notes []models.Note
	err := r.populated(ctx).Where("user_id = ?", userID).Order("category ASC").Order(newestFirst).Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notes for user %s: %w", userID, err)
	}
	return notes, nil
}

// Update writes the mutable columns of note back to the database.
func (r *GORMNoteRepository) Update(ctx context.Context, note *models.Note) error {
	res := r.db.WithContext(ctx).Model(note).
		Select("title", "content", "category", "tags", "is_shared", "shared_with", "updated_at").
		Updates(note)
	if res.Error != nil {
		return fmt.Errorf("failed to update note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("note with ID %s not found for update", note.ID)
	}
	return nil
}

// Delete deletes a note by its ID from the database.
func (r *GORMNoteRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Note{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("note with ID %s not found for deletion", id)
	}
	return nil
}
