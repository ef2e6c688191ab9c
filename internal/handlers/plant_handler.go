package handlers

import (
	"herbalgarden/internal/models"
	"herbalgarden/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PlantHandler handles HTTP requests for plants.
type PlantHandler struct {
	service *services.PlantService
}

// NewPlantHandler creates a new PlantHandler.
func NewPlantHandler(service *services.PlantService) *PlantHandler {
	return &PlantHandler{
		service: service,
	}
}

// RegisterRoutes registers the plant routes with the Fiber app.
func (h *PlantHandler) RegisterRoutes(router fiber.Router) {
	plantRoutes := router.Group("/plants")
	plantRoutes.Get("/", h.HandleGetPlants)
	plantRoutes.Get("/search", h.HandleSearchPlants)
	plantRoutes.Get("/id/:id", h.HandleGetPlantByID)
	plantRoutes.Get("/:name", h.HandleGetPlantByName)
	plantRoutes.Post("/", h.HandleCreatePlant)
}

func success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// HandleGetPlants retrieves all plants.
func (h *PlantHandler) HandleGetPlants(c *fiber.Ctx) error {
	plants, err := h.service.GetAllPlants(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, plants)
}

// HandleSearchPlants matches ?name= against display and scientific names.
func (h *PlantHandler) HandleSearchPlants(c *fiber.Ctx) error {
	plants, err := h.service.SearchPlants(c.UserContext(), c.Query("name"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, plants)
}

// HandleGetPlantByID retrieves a single plant by its ID.
func (h *PlantHandler) HandleGetPlantByID(c *fiber.Ctx) error {
	plant, err := h.service.GetPlantByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, plant)
}

// HandleGetPlantByName resolves an imprecise plant name.
func (h *PlantHandler) HandleGetPlantByName(c *fiber.Ctx) error {
	plant, err := h.service.GetPlantByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, plant)
}

// HandleCreatePlant inserts a plant.
func (h *PlantHandler) HandleCreatePlant(c *fiber.Ctx) error {
	var plant models.Plant
	if err := parseBody(c, &plant); err != nil {
		return err
	}
	plant.ID = ""
	if err := h.service.CreatePlant(c.UserContext(), &plant); err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, plant)
}
