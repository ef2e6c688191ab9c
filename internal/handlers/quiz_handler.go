package handlers

import (
	"herbalgarden/internal/services"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles HTTP requests for quizzes.
type QuizHandler struct {
	service *services.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(service *services.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// RegisterRoutes registers the quiz routes with the Fiber app.
func (h *QuizHandler) RegisterRoutes(router fiber.Router) {
	quizRoutes := router.Group("/quizzes")
	quizRoutes.Get("/", h.HandleListQuizzes)
	quizRoutes.Get("/id/:id", h.HandleGetQuizByID)
	quizRoutes.Get("/:plantName", h.HandleGetQuizByPlant)
}

func (h *QuizHandler) HandleListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

func (h *QuizHandler) HandleGetQuizByPlant(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuizByPlantName(c.UserContext(), c.Params("plantName"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

func (h *QuizHandler) HandleGetQuizByID(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuizByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}
