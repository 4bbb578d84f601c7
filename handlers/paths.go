// handlers/paths.go
package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trailquest/database"
	"trailquest/models"
	"trailquest/services"
)

type CreatePathRequest struct {
	Name       string          `json:"name"`
	StartPoint models.Location `json:"start_point"`
	EndPoint   models.Location `json:"end_point"`
	Difficulty string          `json:"difficulty"`
}

type SuggestPathsRequest struct {
	Goal   string           `json:"goal"` // scenic, shortest, adventurous
	Center *models.Location `json:"center"`
	Count  int              `json:"count"`
}

// CreatePath creates a manually authored path.
func CreatePath(c *fiber.Ctx) error {
	var req CreatePathRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name required"})
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "Easy"
	}

	path := models.Path{
		Name:       req.Name,
		StartPoint: req.StartPoint,
		EndPoint:   req.EndPoint,
		Difficulty: difficulty,
	}

	db := database.GetDB()
	if err := db.Create(&path).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create path"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "path": path})
}

// ListPaths lists paths, optionally filtered by ai_suggested and
// difficulty.
func ListPaths(c *fiber.Ctx) error {
	db := database.GetDB()
	query := db.Model(&models.Path{})

	if raw := c.Query("ai_suggested"); raw != "" {
		query = query.Where("ai_suggested = ?", raw == "true" || raw == "1")
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var paths []models.Path
	if err := query.Order("id").Find(&paths).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch paths"})
	}

	return c.JSON(fiber.Map{"success": true, "paths": paths, "total": len(paths)})
}

// GetPath returns a single path.
func GetPath(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid path ID"})
	}

	db := database.GetDB()
	var path models.Path
	if err := db.First(&path, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Path not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch path"})
	}

	return c.JSON(fiber.Map{"success": true, "path": path})
}

// SuggestPaths fabricates ai_suggested paths around a center and
// narrates the suggestion with the LLM.
func SuggestPaths(c *fiber.Ctx) error {
	var req SuggestPathsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Goal == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Goal required"})
	}

	center := models.Location{Latitude: 37.7749, Longitude: -122.4194, Name: "Center"}
	if req.Center != nil {
		center = *req.Center
	}
	count := req.Count
	if count == 0 {
		count = 3
	}

	db := database.GetDB()
	paths, err := services.SuggestPaths(db, req.Goal, center, count)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to suggest paths"})
	}

	prompt := fmt.Sprintf(
		"The user wants %s travel paths around %s (lat %f, lon %f). Suggest %d concise path names and a one-line rationale overall.",
		req.Goal, center.Name, center.Latitude, center.Longitude, len(paths),
	)
	explanation, err := services.GetAIClient().SendMessage(c.Context(), prompt)
	if err != nil {
		log.Printf("Path suggestion narration failed: %v", err)
		explanation = "Path suggestions generated."
	}

	return c.JSON(fiber.Map{"success": true, "paths": paths, "explanation": explanation})
}

// ListPathTasks lists the tasks belonging to a path.
func ListPathTasks(c *fiber.Ctx) error {
	pathID, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid path ID"})
	}

	db := database.GetDB()
	var tasks []models.Task
	if err := db.Where("path_id = ?", pathID).Order("id").Find(&tasks).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch tasks"})
	}

	return c.JSON(fiber.Map{"success": true, "tasks": tasks, "total": len(tasks)})
}
