package services_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/logger"
	"herbalgarden/internal/models"
	"herbalgarden/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const (
	ownerID  = "11111111-1111-4111-8111-111111111111"
	friendID = "22222222-2222-4222-8222-222222222222"
)

type noteFixture struct {
	notes  *MockNoteRepository
	plants *MockPlantRepository
	users  *MockUserRepository
	events *MockPublisher
	svc    *services.NoteService
	clock  time.Time
}

func newNoteFixture() *noteFixture {
	f := &noteFixture{
		notes:  new(MockNoteRepository),
		plants: new(MockPlantRepository),
		users:  new(MockUserRepository),
		events: new(MockPublisher),
		clock:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	resolver := services.NewPlantResolver(f.plants)
	guests := services.NewGuestService(f.users, guestEmail)
	f.svc = services.NewNoteService(f.notes, resolver, guests, f.events, logger.Nop()).
		WithClock(func() time.Time { return f.clock })
	return f
}

// expectCreate makes the post-insert reload return the note that was stored.
func (f *noteFixture) expectCreate(ctx context.Context) {
	reload := f.notes.On("GetByID", ctx, "note-1").Return(nil, apperr.NotFound("note not found")).Once()
	f.notes.On("Create", ctx, mock.AnythingOfType("*models.Note")).Run(func(args mock.Arguments) {
		created := args.Get(1).(*models.Note)
		created.ID = "note-1"
		reload.ReturnArguments = mock.Arguments{created, nil}
	}).Return(nil).Once()
}

func TestNoteService_CreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields persist nothing", func(t *testing.T) {
		f := newNoteFixture()
		cases := []services.CreateNoteInput{
			{User: ownerID, Title: "t", Content: "c"},
			{User: ownerID, PlantName: "Neem", Content: "c"},
			{User: ownerID, PlantName: "Neem", Title: "t", Content: "   "},
		}
		for _, in := range cases {
			_, err := f.svc.CreateNote(ctx, in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, "Missing required fields: plantName, title, content", apperr.Message(err))
		}
		f.notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("bounds are enforced", func(t *testing.T) {
		f := newNoteFixture()
		bad := []services.CreateNoteInput{
			{User: ownerID, PlantName: "Neem", Title: strings.Repeat("t", 101), Content: "c"},
			{User: ownerID, PlantName: "Neem", Title: "t", Content: strings.Repeat("c", 2001)},
			{User: ownerID, PlantName: "Neem", Title: "t", Content: "c", Category: "diary"},
			{User: ownerID, PlantName: "Neem", Title: "t", Content: "c", Tags: []string{strings.Repeat("x", 21)}},
		}
		for _, in := range bad {
			_, err := f.svc.CreateNote(ctx, in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		}
		f.notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("defaults and event", func(t *testing.T) {
		f := newNoteFixture()
		f.expectCreate(ctx)
		f.events.On("Publish", ctx, services.EventNoteCreated, mock.Anything).Run(func(args mock.Arguments) {
			var ev services.NoteEvent
			require.NoError(t, json.Unmarshal(args.Get(2).([]byte), &ev))
			assert.Equal(t, "note-1", ev.NoteID)
			assert.Equal(t, ownerID, ev.UserID)
		}).Return(nil).Once()

		note, err := f.svc.CreateNote(ctx, services.CreateNoteInput{
			User:      ownerID,
			PlantName: "Neem",
			Title:     "Leaves",
			Content:   "Bitter",
			Tags:      []string{strings.Repeat("x", 20)},
		})
		require.NoError(t, err)
		assert.Equal(t, models.CategoryGeneral, note.Category)
		assert.Equal(t, ownerID, note.UserID)
		assert.Empty(t, note.SharedWith)
		assert.NotNil(t, note.SharedWith)
		assert.False(t, note.IsShared)
		assert.Equal(t, f.clock, note.CreatedAt)
		assert.Nil(t, note.PlantID)
		f.events.AssertExpectations(t)
	})

	t.Run("unknown user falls back to guest", func(t *testing.T) {
		f := newNoteFixture()
		f.users.On("FirstOrCreateByEmail", ctx, mock.AnythingOfType("*models.User")).
			Return(&models.User{ID: "guest-id"}, nil).Once()
		f.expectCreate(ctx)
		f.events.On("Publish", ctx, services.EventNoteCreated, mock.Anything).Return(nil).Once()

		note, err := f.svc.CreateNote(ctx, services.CreateNoteInput{User: "anonymous", PlantName: "Neem", Title: "t", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "guest-id", note.UserID)
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		f := newNoteFixture()
		f.expectCreate(ctx)
		f.events.On("Publish", ctx, services.EventNoteCreated, mock.Anything).Return(assert.AnError).Once()

		_, err := f.svc.CreateNote(ctx, services.CreateNoteInput{User: ownerID, PlantName: "Neem", Title: "t", Content: "c"})
		assert.NoError(t, err)
	})
}

func TestNoteService_SummarizeAndSave(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture()
	plant := &models.Plant{
		ID:              "plant-1",
		PlantName:       "Tulsi",
		ScientificName:  "Ocimum tenuiflorum",
		TraditionalUses: datatypes.NewJSONSlice([]string{"colds"}),
	}
	f.plants.On("FindByNormalizedName", ctx, "tulsi").Return(plant, nil).Once()
	f.expectCreate(ctx)
	f.events.On("Publish", ctx, services.EventNoteCreated, mock.Anything).Return(nil).Once()

	note, err := f.svc.SummarizeAndSave(ctx, ownerID, "Tulsi", models.CategoryResearch)
	require.NoError(t, err)
	assert.Equal(t, "Summary: Tulsi", note.Title)
	assert.Equal(t, "Tulsi (Ocimum tenuiflorum)\nTraditional uses: colds.", note.Content)
	assert.Equal(t, []string{"summary"}, []string(note.Tags))
	assert.Equal(t, models.CategoryResearch, note.Category)
	require.NotNil(t, note.PlantID)
	assert.Equal(t, "plant-1", *note.PlantID)

	_, err = f.svc.SummarizeAndSave(ctx, ownerID, " ", "")
	assert.Equal(t, "Missing required field: plantName", apperr.Message(err))

	f.plants.On("FindByNormalizedName", ctx, "nothing").Return(nil, apperr.NotFound("plant not found")).Once()
	f.plants.On("FindByNameFold", ctx, "nothing").Return(nil, apperr.NotFound("plant not found")).Once()
	f.plants.On("FindByNameContains", ctx, "nothing").Return(nil, apperr.NotFound("plant not found")).Once()
	_, err = f.svc.SummarizeAndSave(ctx, ownerID, "nothing", "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	f.notes.AssertNumberOfCalls(t, "Create", 1)
}

func TestNoteService_SummarizeAndSave_LongPlantNameFitsTitle(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture()
	name := strings.Repeat("Tulasí", 25)
	plant := &models.Plant{ID: "plant-1", PlantName: name}
	f.plants.On("FindByNormalizedName", ctx, strings.ToLower(name)).Return(plant, nil).Once()
	f.expectCreate(ctx)
	f.events.On("Publish", ctx, services.EventNoteCreated, mock.Anything).Return(nil).Once()

	note, err := f.svc.SummarizeAndSave(ctx, ownerID, name, "")
	require.NoError(t, err)
	assert.Equal(t, models.MaxNoteTitleLen, utf8.RuneCountInString(note.Title))
	assert.True(t, strings.HasPrefix(note.Title, "Summary: Tulasí"))
	assert.Equal(t, name, note.PlantName)
}

func TestNoteService_ListNotes(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture()

	f.notes.On("List", ctx, models.NoteFilter{PlantName: "Neem"}, services.DefaultNoteLimit).Return([]models.Note{}, nil).Once()
	_, err := f.svc.ListNotes(ctx, models.NoteFilter{PlantName: "Neem"}, 0)
	require.NoError(t, err)

	f.notes.On("List", ctx, models.NoteFilter{UserID: ownerID}, 5).Return([]models.Note{{ID: "n"}}, nil).Once()
	notes, err := f.svc.ListNotes(ctx, models.NoteFilter{UserID: ownerID}, 5)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	f.notes.AssertExpectations(t)
}

func TestNoteService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture()
	f.notes.On("ListByUser", ctx, ownerID).Return([]models.Note{
		{ID: "a", Category: models.CategoryGeneral},
		{ID: "b", Category: models.CategoryPersonal},
		{ID: "c", Category: models.CategoryPersonal},
		{ID: "d", Category: models.CategoryResearch},
	}, nil).Once()

	groups, err := f.svc.ListByCategory(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, models.CategoryGeneral, groups[0].Category)
	assert.Equal(t, 2, groups[1].Count)
	assert.Equal(t, "b", groups[1].Notes[0].ID)
	assert.Equal(t, models.CategoryResearch, groups[2].Category)

	f.notes.On("ListByUser", ctx, friendID).Return([]models.Note{}, nil).Once()
	groups, err = f.svc.ListByCategory(ctx, friendID)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestNoteService_MostRecent(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture()
	f.notes.On("Latest", ctx, models.NoteFilter{UserID: ownerID, PlantName: "Neem"}).Return(nil, nil).Once()

	note, err := f.svc.MostRecent(ctx, ownerID, "Neem")
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestNoteService_UpdateNote(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture()
	created := f.clock
	stored := &models.Note{
		ID:        "note-1",
		UserID:    ownerID,
		PlantName: "Neem",
		Title:     "Old",
		Content:   "Keep me",
		Category:  models.CategoryPersonal,
		Tags:      datatypes.NewJSONSlice([]string{"a"}),
		CreatedAt: created,
		UpdatedAt: created,
	}
	f.notes.On("GetByID", ctx, "note-1").Return(stored, nil)
	f.notes.On("Update", ctx, stored).Return(nil).Once()
	f.events.On("Publish", ctx, services.EventNoteUpdated, mock.Anything).Return(nil).Once()

	f.clock = created.Add(time.Minute)
	title, empty := "New", ""
	note, err := f.svc.UpdateNote(ctx, "note-1", services.NoteUpdate{Title: &title, Content: &empty})
	require.NoError(t, err)
	assert.Equal(t, "New", note.Title)
	assert.Equal(t, "Keep me", note.Content)
	assert.Equal(t, models.CategoryPersonal, note.Category)
	assert.Equal(t, []string{"a"}, []string(note.Tags))
	assert.True(t, note.UpdatedAt.After(note.CreatedAt))

	bad := models.NoteCategory("diary")
	_, err = f.svc.UpdateNote(ctx, "note-1", services.NoteUpdate{Category: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	f.notes.AssertNumberOfCalls(t, "Update", 1)
}

func TestNoteService_DeleteNote(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture()
	f.notes.On("Delete", ctx, "note-1").Return(nil).Once()
	f.notes.On("Delete", ctx, "note-1").Return(apperr.NotFound("note with ID note-1 not found for deletion")).Once()
	f.notes.On("GetByID", ctx, "note-1").Return(nil, apperr.NotFound("note with ID note-1 not found")).Once()
	f.events.On("Publish", ctx, services.EventNoteDeleted, mock.Anything).Return(nil).Once()

	require.NoError(t, f.svc.DeleteNote(ctx, "note-1"))
	assert.ErrorIs(t, f.svc.DeleteNote(ctx, "note-1"), apperr.ErrNotFound)
	_, err := f.svc.GetNote(ctx, "note-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	f.events.AssertExpectations(t)
}

func TestNoteService_ShareNote(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture()
	stored := &models.Note{
		ID:         "note-1",
		UserID:     ownerID,
		PlantName:  "Neem",
		Title:      "t",
		Content:    "c",
		Category:   models.CategoryGeneral,
		SharedWith: datatypes.NewJSONSlice([]string{ownerID}),
	}
	f.notes.On("GetByID", ctx, "note-1").Return(stored, nil)
	f.notes.On("Update", ctx, stored).Return(nil)
	f.events.On("Publish", ctx, services.EventNoteShared, mock.Anything).Return(nil)

	_, err := f.svc.ShareNote(ctx, "note-1", services.ShareInput{UserIDs: []string{"bob"}, IsShared: true})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	f.notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	note, err := f.svc.ShareNote(ctx, "note-1", services.ShareInput{UserIDs: []string{friendID}, IsShared: true})
	require.NoError(t, err)
	assert.True(t, note.IsShared)
	assert.Equal(t, []string{friendID}, []string(note.SharedWith))

	note, err = f.svc.ShareNote(ctx, "note-1", services.ShareInput{IsShared: false})
	require.NoError(t, err)
	assert.False(t, note.IsShared)
	assert.Equal(t, []string{friendID}, []string(note.SharedWith))
}
