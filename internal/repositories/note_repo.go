package repositories

import (
	"context"

	"herbalgarden/internal/models"
)

// NoteRepository defines the interface for note data access. Every note it
// returns has its user and plant display fields populated when the linked
// records exist.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id string) (*models.Note, error)
	List(ctx context.Context, filter models.NoteFilter, limit int) ([]models.Note, error)
	Latest(ctx context.Context, filter models.NoteFilter) (*models.Note, error)
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}
