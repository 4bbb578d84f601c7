// handlers/map.go - Synthetic map overlays
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"trailquest/services"
)

func queryFloat(c *fiber.Ctx, key string) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// GetPointsOfInterest returns fabricated POIs around a coordinate.
func GetPointsOfInterest(c *fiber.Ctx) error {
	lat, okLat := queryFloat(c, "lat")
	lon, okLon := queryFloat(c, "lon")
	if !okLat || !okLon {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "lat and lon required"})
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"points_of_interest": services.PointsOfInterest(lat, lon),
	})
}

// GetNearbyChallenges returns fabricated challenge markers around a
// coordinate.
func GetNearbyChallenges(c *fiber.Ctx) error {
	lat, okLat := queryFloat(c, "lat")
	lon, okLon := queryFloat(c, "lon")
	if !okLat || !okLon {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "lat and lon required"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"challenges": services.NearbyChallenges(lat, lon),
	})
}
