// Package app assembles the HTTP application from its services.
package app

import (
	"time"

	"herbalgarden/internal/handlers"
	"herbalgarden/internal/logger"
	"herbalgarden/internal/middleware"
	"herbalgarden/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Log         *logger.Logger
	Production  bool
	CORSOrigins string

	Auth    *services.AuthService
	Users   *services.UserService
	Plants  *services.PlantService
	Notes   *services.NoteService
	Quizzes *services.QuizService
	Images  *services.ImageService
	Models  *services.ModelService

	// Ready reports dependency health for /health; nil means always healthy.
	Ready func() map[string]string
}

// New builds the Fiber app with every route under /api.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "herbal-garden",
		ErrorHandler: handlers.ErrorHandler(d.Log, !d.Production),
		UnescapePath: true,
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(d.Log))

	tokens := middleware.FromAuthService(d.Auth)
	api := app.Group("/api")

	handlers.NewAuthHandler(d.Auth).RegisterRoutes(api)
	handlers.NewPlantHandler(d.Plants).RegisterRoutes(api)
	handlers.NewQuizHandler(d.Quizzes).RegisterRoutes(api)
	handlers.NewImageHandler(d.Images).RegisterRoutes(api)
	handlers.NewModelHandler(d.Models).RegisterRoutes(api)

	api.Use("/notes", middleware.OptionalAuth(tokens))
	handlers.NewNoteHandler(d.Notes).RegisterRoutes(api)
	api.Use("/users", middleware.AuthRequired(tokens))
	handlers.NewUserHandler(d.Users).RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		if d.Ready != nil {
			for k, v := range d.Ready() {
				body[k] = v
			}
		}
		return c.JSON(body)
	})

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found - "+c.OriginalURL())
	})

	return app
}
