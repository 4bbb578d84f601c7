// handlers/challenges.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trailquest/database"
	"trailquest/models"
	"trailquest/services"
)

type CreateChallengeRequest struct {
	RouteID     uint            `json:"route_id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    models.Location `json:"location"`
	Points      int             `json:"points"`
}

// CreateChallenge attaches a challenge to a route.
func CreateChallenge(c *fiber.Ctx) error {
	var req CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.RouteID == 0 || req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "route_id and title required"})
	}

	points := req.Points
	if points <= 0 {
		points = 10
	}

	challenge := models.Challenge{
		RouteID:     req.RouteID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Points:      points,
	}

	db := database.GetDB()
	if err := db.Create(&challenge).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create challenge"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "challenge": challenge})
}

// GetRouteChallenges lists the challenges attached to a route.
func GetRouteChallenges(c *fiber.Ctx) error {
	routeID, err := paramID(c, "routeId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid route ID"})
	}

	db := database.GetDB()
	var challenges []models.Challenge
	if err := db.Where("route_id = ?", routeID).Find(&challenges).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch challenges"})
	}

	return c.JSON(fiber.Map{"success": true, "challenges": challenges, "total": len(challenges)})
}

// CompleteChallenge marks a challenge done and grants its points when a
// user_id query parameter is supplied.
func CompleteChallenge(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid challenge ID"})
	}
	userID, err := queryUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user_id"})
	}

	db := database.GetDB()
	challenge, result, err := services.CompleteChallenge(db, id, userID)
	if err != nil {
		return serviceError(c, err)
	}

	resp := fiber.Map{
		"success":        true,
		"message":        "Challenge completed successfully",
		"challenge":      challenge,
		"points_awarded": result.PointsAwarded,
	}
	if userID != 0 {
		resp["achievement"] = result.Achievement
		resp["motivation"] = result.Motivation
	}
	return c.JSON(resp)
}
