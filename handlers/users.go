// handlers/users.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trailquest/database"
	"trailquest/middleware"
	"trailquest/models"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUser creates a profile without credentials (first app open).
func CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" || req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name and email required"})
	}

	db := database.GetDB()
	user := models.User{
		Name:  req.Name,
		Email: &req.Email,
		Level: 1,
	}
	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create user"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "user": userView(&user)})
}

// ListUsers returns all profiles with their ledger fields.
func ListUsers(c *fiber.Ctx) error {
	db := database.GetDB()
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch users"})
	}

	views := make([]fiber.Map, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	return c.JSON(fiber.Map{"success": true, "users": views, "total": len(views)})
}

// GetUser returns a profile with its ledger fields.
func GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{"success": true, "user": userView(&user)})
}

// GetCurrentUser returns the profile behind the bearer token.
func GetCurrentUser(c *fiber.Ctx) error {
	id, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{"success": true, "user": userView(&user)})
}

// userView flattens a user plus the decoded badge list.
func userView(user *models.User) fiber.Map {
	return fiber.Map{
		"id":               user.ID,
		"name":             user.Name,
		"email":            user.Email,
		"is_guest":         user.IsGuest,
		"total_points":     user.TotalPoints,
		"level":            user.Level,
		"routes_completed": user.RoutesCompleted,
		"badges":           user.BadgeList(),
		"created_at":       user.CreatedAt,
	}
}
