// handlers/leaderboard.go
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"trailquest/database"
	"trailquest/models"
)

// GetLeaderboard returns the top users by total points.
func GetLeaderboard(c *fiber.Ctx) error {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	db := database.GetDB()
	var users []models.User
	if err := db.Order("total_points DESC, id ASC").Limit(limit).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch leaderboard"})
	}

	entries := make([]fiber.Map, 0, len(users))
	for i, user := range users {
		entries = append(entries, fiber.Map{
			"rank":             i + 1,
			"user_id":          user.ID,
			"name":             user.Name,
			"total_points":     user.TotalPoints,
			"level":            user.Level,
			"routes_completed": user.RoutesCompleted,
		})
	}

	return c.JSON(fiber.Map{"success": true, "leaderboard": entries, "total": len(entries)})
}
