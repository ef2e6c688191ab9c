package handlers

import (
	"herbalgarden/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ImageHandler handles HTTP requests for plant images.
type ImageHandler struct {
	service *services.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service *services.ImageService) *ImageHandler {
	return &ImageHandler{
		service: service,
	}
}

// RegisterRoutes registers the image routes with the Fiber app.
func (h *ImageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/images/:name", h.HandleGetImages)
}

// HandleGetImages lists a plant's images with absolute URLs based on the
// request's own scheme and host.
func (h *ImageHandler) HandleGetImages(c *fiber.Ctx) error {
	images, err := h.service.ImagesForPlant(c.UserContext(), c.Params("name"), c.BaseURL())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, images)
}
