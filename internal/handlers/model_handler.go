package handlers

import (
	"fmt"

	"herbalgarden/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ModelHandler handles HTTP requests for plant 3D models.
type ModelHandler struct {
	service *services.ModelService
}

// NewModelHandler creates a new ModelHandler.
func NewModelHandler(service *services.ModelService) *ModelHandler {
	return &ModelHandler{
		service: service,
	}
}

// RegisterRoutes registers the model routes with the Fiber app.
func (h *ModelHandler) RegisterRoutes(router fiber.Router) {
	modelRoutes := router.Group("/models")
	modelRoutes.Get("/", h.HandleListModels)
	modelRoutes.Get("/id/:key", h.HandleGetModelByKey)
	modelRoutes.Get("/:plantName", h.HandleGetModel)
	modelRoutes.Delete("/:plantName", h.HandleDeleteModel)
}

func sendAsset(c *fiber.Ctx, asset *services.ModelAsset) error {
	c.Set(fiber.HeaderContentType, asset.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", asset.Filename))
	return c.Send(asset.Data)
}

func (h *ModelHandler) HandleListModels(c *fiber.Ctx) error {
	objects, err := h.service.ListModels(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, objects)
}

func (h *ModelHandler) HandleGetModel(c *fiber.Ctx) error {
	asset, err := h.service.ModelForPlant(c.UserContext(), c.Params("plantName"))
	if err != nil {
		return err
	}
	return sendAsset(c, asset)
}

func (h *ModelHandler) HandleGetModelByKey(c *fiber.Ctx) error {
	asset, err := h.service.ModelByKey(c.UserContext(), c.Params("key"))
	if err != nil {
		return err
	}
	return sendAsset(c, asset)
}

func (h *ModelHandler) HandleDeleteModel(c *fiber.Ctx) error {
	if err := h.service.DeleteModel(c.UserContext(), c.Params("plantName")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "3D model deleted successfully"})
}
