// handlers/achievements.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trailquest/database"
	"trailquest/models"
	"trailquest/services"
)

type CreateAchievementRequest struct {
	Title          string `json:"title"`
	ConditionType  string `json:"condition_type"`
	ConditionValue int    `json:"condition_value"`
	RewardPoints   int    `json:"reward_points"`
	BadgeIcon      string `json:"badge_icon,omitempty"`
}

// ListAchievements returns the full achievement catalog.
func ListAchievements(c *fiber.Ctx) error {
	db := database.GetDB()
	var catalog []models.Achievement
	if err := db.Order("id").Find(&catalog).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch achievements"})
	}
	return c.JSON(fiber.Map{"success": true, "achievements": catalog, "total": len(catalog)})
}

// CreateAchievement adds a catalog entry. Unknown condition types are
// rejected here so the unlock engine never sees them.
func CreateAchievement(c *fiber.Ctx) error {
	var req CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Title required"})
	}

	conditionType := models.ConditionType(req.ConditionType)
	if !conditionType.Valid() {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "condition_type must be 'points' or 'routes_completed'",
		})
	}
	if req.ConditionValue < 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "condition_value must be non-negative"})
	}

	achievement := models.Achievement{
		Title:          req.Title,
		ConditionType:  conditionType,
		ConditionValue: req.ConditionValue,
		RewardPoints:   req.RewardPoints,
		BadgeIcon:      req.BadgeIcon,
	}

	db := database.GetDB()
	if err := db.Create(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create achievement"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "achievement": achievement})
}

// GetAchievementStatus annotates the catalog with the requesting user's
// unlocks. Read-only: never grants points.
func GetAchievementStatus(c *fiber.Ctx) error {
	userID, err := queryUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user_id"})
	}
	if userID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "user_id required"})
	}

	db := database.GetDB()
	status, err := services.GetAchievementStatus(db, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "achievements": status, "total": len(status)})
}

// CheckAchievements runs the unlock engine for a user on demand.
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := queryUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user_id"})
	}
	if userID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "user_id required"})
	}

	db := database.GetDB()
	result, err := services.CheckAchievements(db, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"unlocked":       result.Unlocked,
		"awarded_points": result.AwardedPoints,
	})
}
