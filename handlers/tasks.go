// handlers/tasks.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trailquest/database"
	"trailquest/models"
	"trailquest/services"
)

type CreateTaskRequest struct {
	PathID          uint   `json:"path_id"`
	TaskDescription string `json:"task_description"`
	RewardPoints    int    `json:"reward_points"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
	UserID uint   `json:"user_id,omitempty"`
}

// CreateTask attaches a task to an existing path.
func CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.PathID == 0 || req.TaskDescription == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "path_id and task_description required"})
	}

	db := database.GetDB()

	var path models.Path
	if err := db.First(&path, req.PathID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Path not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch path"})
	}

	rewardPoints := req.RewardPoints
	if rewardPoints <= 0 {
		rewardPoints = 10
	}

	task := models.Task{
		PathID:          req.PathID,
		TaskDescription: req.TaskDescription,
		RewardPoints:    rewardPoints,
		Status:          models.TaskNotStarted,
	}
	if err := db.Create(&task).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create task"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "task": task})
}

// UpdateTaskStatus moves a task between statuses; the first move to
// Completed pays out its reward points when a user is supplied (body
// field or user_id query parameter).
func UpdateTaskStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid task ID"})
	}

	var req UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	userID := req.UserID
	if userID == 0 {
		userID, err = queryUserID(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user_id"})
		}
	}

	db := database.GetDB()
	task, result, err := services.UpdateTaskStatus(db, id, req.Status, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"task":           task,
		"points_awarded": result.PointsAwarded,
		"achievement":    result.Achievement,
		"motivation":     result.Motivation,
	})
}
