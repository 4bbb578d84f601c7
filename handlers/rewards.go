// handlers/rewards.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trailquest/database"
	"trailquest/models"
	"trailquest/services"
)

type CreateRewardItemRequest struct {
	ItemName string `json:"item_name"`
	Cost     int    `json:"cost"`
	Category string `json:"category"`
}

type ClaimRewardRequest struct {
	UserID uint `json:"user_id"`
	ItemID uint `json:"item_id"`
}

// ListRewardItems returns the store catalog.
func ListRewardItems(c *fiber.Ctx) error {
	db := database.GetDB()
	var items []models.RewardItem
	if err := db.Order("id").Find(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch reward items"})
	}
	return c.JSON(fiber.Map{"success": true, "items": items, "total": len(items)})
}

// CreateRewardItem adds a store catalog entry.
func CreateRewardItem(c *fiber.Ctx) error {
	var req CreateRewardItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.ItemName == "" || req.Cost <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "item_name and positive cost required"})
	}

	item := models.RewardItem{
		ItemName: req.ItemName,
		Cost:     req.Cost,
		Category: req.Category,
	}

	db := database.GetDB()
	if err := db.Create(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create reward item"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "item": item})
}

// GetUserInventory lists the items a user owns.
func GetUserInventory(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	db := database.GetDB()
	items, err := services.UserInventory(db, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "items": items, "total": len(items)})
}

// ClaimReward spends points on a store item.
func ClaimReward(c *fiber.Ctx) error {
	var req ClaimRewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.UserID == 0 || req.ItemID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "user_id and item_id required"})
	}

	db := database.GetDB()
	user, item, err := services.ClaimReward(db, req.UserID, req.ItemID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reward claimed",
		"user":    userView(user),
		"item":    item,
	})
}
