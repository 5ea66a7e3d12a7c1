package handler

import (
	"vyaparpro-api/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// parseIDParam parses the :id route parameter as a UUID.
func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.Validation("Invalid id '%s'", c.Params("id"))
	}
	return id, nil
}

// ErrorHandler serializes the error taxonomy to {"message": ...} with the
// mapped HTTP status. Wired into fiber.Config.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}
	status := apperr.StatusOf(err)
	message := err.Error()
	if status == 500 {
		message = "Internal Server Error"
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}
