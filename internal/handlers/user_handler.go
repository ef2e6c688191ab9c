package handlers

import (
	"herbalgarden/internal/middleware"
	"herbalgarden/internal/models"
	"herbalgarden/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the authenticated caller's own account.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the account routes. They expect AuthRequired to
// run in front of /users.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/profile", h.HandleGetProfile)
	userRoutes.Put("/profile", h.HandleUpdateProfile)
	userRoutes.Delete("/profile", h.HandleDeleteAccount)
	userRoutes.Put("/settings", h.HandleUpdateSettings)
	userRoutes.Put("/password", h.HandleChangePassword)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func profileResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":             user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"settings":       user.Settings,
		"profilePicture": user.ProfilePicture,
	}
}

// HandleGetProfile returns the caller's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(user))
}

// HandleUpdateProfile changes name and email.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.service.UpdateProfile(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(user))
}

// HandleUpdateSettings changes appearance settings.
func (h *UserHandler) HandleUpdateSettings(c *fiber.Ctx) error {
	var req services.SettingsUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.service.UpdateSettings(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(user))
}

// HandleChangePassword replaces the caller's password.
func (h *UserHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.service.ChangePassword(c.UserContext(), middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// HandleDeleteAccount removes the caller's account.
func (h *UserHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	if err := h.service.DeleteAccount(c.UserContext(), middleware.UserID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User account deleted successfully"})
}
