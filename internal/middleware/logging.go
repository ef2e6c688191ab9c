package middleware

import (
	"time"

	"herbalgarden/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request. Handler errors are rendered here
// through the app's error handler so the logged status is the one sent.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info("request",
			"method", c.Method(),
			"uri", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
			"size", len(c.Response().Body()),
		)
		return nil
	}
}
