package handlers

import (
	"errors"

	"herbalgarden/internal/apperr"
	"herbalgarden/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned by a handler as
// {"message": ..., "errors"?: {...}, "stack"?: ...}. The error chain is only
// exposed as "stack" when exposeStack is set.
func ErrorHandler(log *logger.Logger, exposeStack bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := apperr.StatusOf(err)
		message := apperr.Message(err)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}

		body := fiber.Map{"message": message}
		var ae *apperr.Error
		if errors.As(err, &ae) && len(ae.Fields) > 0 {
			body["errors"] = ae.Fields
		}
		if exposeStack {
			body["stack"] = err.Error()
		}
		return c.Status(status).JSON(body)
	}
}

// parseBody decodes the request body into out or returns a 400.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}
