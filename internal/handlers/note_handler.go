package handlers

import (
	"herbalgarden/internal/middleware"
	"herbalgarden/internal/models"
	"herbalgarden/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NoteHandler handles HTTP requests for notes. The owning user comes from the
// request when given, else from the bearer token, else the Guest account.
type NoteHandler struct {
	service *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service *services.NoteService) *NoteHandler {
	return &NoteHandler{
		service: service,
	}
}

// RegisterRoutes registers the note routes with the Fiber app.
func (h *NoteHandler) RegisterRoutes(router fiber.Router) {
	noteRoutes := router.Group("/notes")
	noteRoutes.Get("/", h.HandleListNotes)
	noteRoutes.Get("/recent", h.HandleRecentNote)
	noteRoutes.Get("/category/:userId", h.HandleNotesByCategory)
	noteRoutes.Get("/:id", h.HandleGetNote)
	noteRoutes.Post("/", h.HandleCreateNote)
	noteRoutes.Post("/summary", h.HandleSummarize)
	noteRoutes.Put("/:id", h.HandleUpdateNote)
	noteRoutes.Put("/:id/share", h.HandleShareNote)
	noteRoutes.Delete("/:id", h.HandleDeleteNote)
}

type createNoteRequest struct {
	User      string              `json:"user"`
	Plant     string              `json:"plant"`
	PlantName string              `json:"plantName"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Category  models.NoteCategory `json:"category"`
	Tags      []string            `json:"tags"`
}

type summaryRequest struct {
	User      string              `json:"user"`
	PlantName string              `json:"plantName"`
	Category  models.NoteCategory `json:"category"`
}

type updateNoteRequest struct {
	Title    *string              `json:"title"`
	Content  *string              `json:"content"`
	Category *models.NoteCategory `json:"category"`
	Tags     []string             `json:"tags"`
}

type shareNoteRequest struct {
	UserIDs  []string `json:"userIds"`
	IsShared bool     `json:"isShared"`
}

func caller(c *fiber.Ctx, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return middleware.UserID(c)
}

// HandleCreateNote creates a user-authored note.
func (h *NoteHandler) HandleCreateNote(c *fiber.Ctx) error {
	var req createNoteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	note, err := h.service.CreateNote(c.UserContext(), services.CreateNoteInput{
		User:      caller(c, req.User),
		PlantID:   req.Plant,
		PlantName: req.PlantName,
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Tags:      req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// HandleSummarize stores a generated summary note for a plant.
func (h *NoteHandler) HandleSummarize(c *fiber.Ctx) error {
	var req summaryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	note, err := h.service.SummarizeAndSave(c.UserContext(), caller(c, req.User), req.PlantName, req.Category)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// HandleListNotes lists notes filtered by ?userId, ?plantName and ?category.
func (h *NoteHandler) HandleListNotes(c *fiber.Ctx) error {
	filter := models.NoteFilter{
		UserID:    c.Query("userId"),
		PlantName: c.Query("plantName"),
		Category:  models.NoteCategory(c.Query("category")),
	}
	notes, err := h.service.ListNotes(c.UserContext(), filter, c.QueryInt("limit", services.DefaultNoteLimit))
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

// HandleNotesByCategory groups a user's notes by category.
func (h *NoteHandler) HandleNotesByCategory(c *fiber.Ctx) error {
	groups, err := h.service.ListByCategory(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

// HandleRecentNote returns the caller's newest note, or null.
func (h *NoteHandler) HandleRecentNote(c *fiber.Ctx) error {
	note, err := h.service.MostRecent(c.UserContext(), caller(c, c.Query("userId")), c.Query("plantName"))
	if err != nil {
		return err
	}
	return c.JSON(note)
}

// HandleGetNote retrieves a single note by its ID.
func (h *NoteHandler) HandleGetNote(c *fiber.Ctx) error {
	note, err := h.service.GetNote(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(note)
}

// HandleUpdateNote applies a partial update.
func (h *NoteHandler) HandleUpdateNote(c *fiber.Ctx) error {
	var req updateNoteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	note, err := h.service.UpdateNote(c.UserContext(), c.Params("id"), services.NoteUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(note)
}

// HandleShareNote replaces the shared-with list.
func (h *NoteHandler) HandleShareNote(c *fiber.Ctx) error {
	var req shareNoteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	note, err := h.service.ShareNote(c.UserContext(), c.Params("id"), services.ShareInput{
		UserIDs:  req.UserIDs,
		IsShared: req.IsShared,
	})
	if err != nil {
		return err
	}
	return c.JSON(note)
}

// HandleDeleteNote deletes a note.
func (h *NoteHandler) HandleDeleteNote(c *fiber.Ctx) error {
	if err := h.service.DeleteNote(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Note deleted successfully"})
}
