// handlers/respond.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"trailquest/models"
)

// serviceError maps the gamification error taxonomy onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Not found"})
	case errors.Is(err, models.ErrInsufficientPoints):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Insufficient points"})
	case errors.Is(err, models.ErrAlreadyCompleted):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Already completed"})
	case errors.Is(err, models.ErrAlreadyOwned):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Reward already owned"})
	case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, models.ErrInvalidCondition):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal server error"})
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(400, "Invalid "+name)
	}
	return uint(id), nil
}

// queryUserID reads the optional user_id query parameter. Absent means
// no point processing for this call; a malformed value is an error, not
// a silent anonymous completion.
func queryUserID(c *fiber.Ctx) (uint, error) {
	raw := c.Query("user_id")
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fiber.NewError(400, "Invalid user_id")
	}
	return uint(id), nil
}
