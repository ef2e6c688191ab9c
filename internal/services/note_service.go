package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/logger"
	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// DefaultNoteLimit caps List when the caller gives no usable limit.
const DefaultNoteLimit = 50

// PlantFinder resolves a free-text plant name.
type PlantFinder interface {
	Resolve(ctx context.Context, name string) (*models.Plant, error)
}

// UserIdentity turns an optional caller identity into an owning user id.
type UserIdentity interface {
	EnsureUserID(ctx context.Context, candidate string) (string, error)
}

// CreateNoteInput carries the fields of a new note. Category and Tags are optional.
type CreateNoteInput struct {
	User      string
	PlantID   string
	PlantName string
	Title     string
	Content   string
	Category  models.NoteCategory
	Tags      []string
}

// NoteUpdate is a partial patch. Nil or empty fields are left unchanged.
type NoteUpdate struct {
	Title    *string
	Content  *string
	Category *models.NoteCategory
	Tags     []string
}

// ShareInput replaces a note's shared-with list.
type ShareInput struct {
	UserIDs  []string
	IsShared bool
}

// NoteService handles business logic related to notes.
type NoteService struct {
	notes    repositories.NoteRepository
	plants   PlantFinder
	identity UserIdentity
	events   EventPublisher
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

// NewNoteService creates a new NoteService. events may be nil.
func NewNoteService(notes repositories.NoteRepository, plants PlantFinder, identity UserIdentity, events EventPublisher, log *logger.Logger) *NoteService {
	return &NoteService{
		notes:    notes,
		plants:   plants,
		identity: identity,
		events:   events,
		validate: validator.New(),
		log:      log.With("service", "NoteService"),
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *NoteService) WithClock(now func() time.Time) *NoteService {
	s.now = now
	return s
}

// CreateNote stores a user-authored note and returns it with display fields.
func (s *NoteService) CreateNote(ctx context.Context, in CreateNoteInput) (*models.Note, error) {
	if strings.TrimSpace(in.PlantName) == "" || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Validation("Missing required fields: plantName, title, content")
	}
	userID, err := s.identity.EnsureUserID(ctx, in.User)
	if err != nil {
		return nil, err
	}

	now := s.now()
	note := &models.Note{
		UserID:    userID,
		PlantName: in.PlantName,
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Tags:      datatypes.NewJSONSlice(in.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.PlantID != "" {
		plantID := in.PlantID
		note.PlantID = &plantID
	}
	return s.insert(ctx, note)
}

// SummarizeAndSave resolves plantName and stores a note summarizing it.
func (s *NoteService) SummarizeAndSave(ctx context.Context, user, plantName string, category models.NoteCategory) (*models.Note, error) {
	if strings.TrimSpace(plantName) == "" {
		return nil, apperr.Validation("Missing required field: plantName")
	}
	userID, err := s.identity.EnsureUserID(ctx, user)
	if err != nil {
		return nil, err
	}
	plant, err := s.plants.Resolve(ctx, plantName)
	if err != nil {
		return nil, fmt.Errorf("summarize %q: %w", plantName, err)
	}

	now := s.now()
	plantID := plant.ID
	note := &models.Note{
		UserID:    userID,
		PlantID:   &plantID,
		PlantName: plant.PlantName,
		Title:     truncateRunes("Summary: "+plant.PlantName, models.MaxNoteTitleLen),
		Content:   composePlantSummary(plant),
		Category:  category,
		Tags:      datatypes.NewJSONSlice([]string{"summary"}),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.insert(ctx, note)
}

func (s *NoteService) insert(ctx context.Context, note *models.Note) (*models.Note, error) {
	if note.Category == "" {
		note.Category = models.CategoryGeneral
	}
	if note.Tags == nil {
		note.Tags = datatypes.JSONSlice[string]{}
	}
	if note.SharedWith == nil {
		note.SharedWith = datatypes.JSONSlice[string]{}
	}
	if err := validateStruct(s.validate, note); err != nil {
		return nil, err
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	s.log.Debug("note created", "note_id", note.ID, "user_id", note.UserID, "plant_name", note.PlantName)
	publishNoteEvent(ctx, s.events, s.log, EventNoteCreated, NoteEvent{
		NoteID:     note.ID,
		UserID:     note.UserID,
		PlantName:  note.PlantName,
		Category:   note.Category,
		OccurredAt: note.CreatedAt,
	})
	return s.notes.GetByID(ctx, note.ID)
}

// ListNotes returns up to limit notes matching filter, newest first. A
// non-empty filter user is passed through the guest fallback first.
func (s *NoteService) ListNotes(ctx context.Context, filter models.NoteFilter, limit int) ([]models.Note, error) {
	if limit <= 0 {
		limit = DefaultNoteLimit
	}
	if filter.UserID != "" {
		userID, err := s.identity.EnsureUserID(ctx, filter.UserID)
		if err != nil {
			return nil, err
		}
		filter.UserID = userID
	}
	return s.notes.List(ctx, filter, limit)
}

// ListByCategory groups all of a user's notes by category, categories in
// ascending order.
func (s *NoteService) ListByCategory(ctx context.Context, user string) ([]models.NoteCategoryGroup, error) {
	userID, err := s.identity.EnsureUserID(ctx, user)
	if err != nil {
		return nil, err
	}
	notes, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := []models.NoteCategoryGroup{}
	for _, n := range notes {
		if len(groups) == 0 || groups[len(groups)-1].Category != n.Category {
			groups = append(groups, models.NoteCategoryGroup{Category: n.Category})
		}
		g := &groups[len(groups)-1]
		g.Notes = append(g.Notes, n)
		g.Count++
	}
	return groups, nil
}

// MostRecent returns the newest note of user, optionally for one plant, or
// nil when there is none.
func (s *NoteService) MostRecent(ctx context.Context, user, plantName string) (*models.Note, error) {
	userID, err := s.identity.EnsureUserID(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.notes.Latest(ctx, models.NoteFilter{UserID: userID, PlantName: plantName})
}

// GetNote retrieves a single note by its ID.
func (s *NoteService) GetNote(ctx context.Context, id string) (*models.Note, error) {
	return s.notes.GetByID(ctx, id)
}

// UpdateNote applies a partial patch and refreshes the updated timestamp.
func (s *NoteService) UpdateNote(ctx context.Context, id string, patch NoteUpdate) (*models.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil && *patch.Title != "" {
		note.Title = *patch.Title
	}
	if patch.Content != nil && *patch.Content != "" {
		note.Content = *patch.Content
	}
	if patch.Category != nil && *patch.Category != "" {
		note.Category = *patch.Category
	}
	if patch.Tags != nil {
		note.Tags = datatypes.NewJSONSlice(patch.Tags)
	}
	note.UpdatedAt = s.now()

	if err := validateStruct(s.validate, note); err != nil {
		return nil, err
	}
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note %s: %w", id, err)
	}
	publishNoteEvent(ctx, s.events, s.log, EventNoteUpdated, NoteEvent{
		NoteID:     note.ID,
		UserID:     note.UserID,
		PlantName:  note.PlantName,
		Category:   note.Category,
		OccurredAt: note.UpdatedAt,
	})
	return s.notes.GetByID(ctx, id)
}

// DeleteNote deletes a note by its ID.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}
	publishNoteEvent(ctx, s.events, s.log, EventNoteDeleted, NoteEvent{
		NoteID:     id,
		OccurredAt: s.now(),
	})
	return nil
}

// ShareNote sets the shared flag and replaces the shared-with list wholesale.
// A nil UserIDs leaves the list as it was.
func (s *NoteService) ShareNote(ctx context.Context, id string, in ShareInput) (*models.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, uid := range in.UserIDs {
		if !IsUserID(uid) {
			return nil, apperr.Validation("invalid user id %q in userIds", uid)
		}
	}
	note.IsShared = in.IsShared
	if in.UserIDs != nil {
		note.SharedWith = datatypes.NewJSONSlice(in.UserIDs)
	}
	note.UpdatedAt = s.now()

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("share note %s: %w", id, err)
	}
	publishNoteEvent(ctx, s.events, s.log, EventNoteShared, NoteEvent{
		NoteID:     note.ID,
		UserID:     note.UserID,
		PlantName:  note.PlantName,
		SharedWith: []string(note.SharedWith),
		OccurredAt: note.UpdatedAt,
	})
	return s.notes.GetByID(ctx, id)
}
