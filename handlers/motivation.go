// handlers/motivation.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trailquest/database"
	"trailquest/models"
	"trailquest/services"
)

// GetMotivation picks a message for the requested trigger event.
func GetMotivation(c *fiber.Ctx) error {
	trigger := c.Query("trigger", models.TriggerTaskCompleted)
	message := services.MotivationFor(database.GetDB(), trigger)
	return c.JSON(fiber.Map{"success": true, "message": message, "trigger_event": trigger})
}
