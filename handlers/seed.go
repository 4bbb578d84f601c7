// handlers/seed.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trailquest/database"
)

// SeedData populates empty collections with sample content. Safe to
// call repeatedly; already-populated collections are left alone.
func SeedData(c *fiber.Ctx) error {
	if err := database.SeedSampleData(); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to seed sample data"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Sample data seeded"})
}
