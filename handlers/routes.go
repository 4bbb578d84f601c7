// handlers/routes.go
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

type SaveRouteRequest struct {
	UserID    uint              `json:"user_id"`
	Start     models.Location   `json:"start"`
	End       models.Location   `json:"end"`
	Waypoints []models.Location `json:"waypoints"`
	RouteType string            `json:"route_type"`
	Distance  float64           `json:"distance"`
	Duration  float64           `json:"duration"`
}

type PlanRouteRequest struct {
	Start       models.Location        `json:"start"`
	End         models.Location        `json:"end"`
	Preferences map[string]interface{} `json:"preferences"`
}

// PlanRoute returns the three synthetic route variants plus an LLM
// narration of the trade-offs.
func PlanRoute(c *fiber.Ctx) error {
	var req PlanRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	options := services.PlanRouteOptions(req.Start, req.End)

	prompt := fmt.Sprintf(
		"Plan a travel route from %s (lat: %f, lon: %f) to %s (lat: %f, lon: %f).\n"+
			"User preferences: %v\n\n"+
			"Please provide:\n"+
			"1. Three route options: fastest, scenic, and cheapest\n"+
			"2. Estimated distance and duration for each\n"+
			"3. Key points of interest along each route\n"+
			"4. Trade-offs explanation\n"+
			"5. Recommend 2-3 challenges/tasks for travelers (like trying local food, taking photos at landmarks, etc.)\n\n"+
			"Format your response as practical travel advice with specific recommendations.",
		req.Start.Name, req.Start.Latitude, req.Start.Longitude,
		req.End.Name, req.End.Latitude, req.End.Longitude,
		req.Preferences,
	)

	explanation, err := services.GetAIClient().SendMessage(c.Context(), prompt)
	if err != nil {
		log.Printf("Route narration failed: %v", err)
		explanation = "Route narration is temporarily unavailable."
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"routes":      options,
		"explanation": explanation,
	})
}

// SaveRoute persists a planned route for a user.
func SaveRoute(c *fiber.Ctx) error {
	var req SaveRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.UserID == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "user_id required"})
	}

	route := models.Route{
		UserID:    req.UserID,
		Start:     req.Start,
		End:       req.End,
		RouteType: req.RouteType,
		Distance:  req.Distance,
		Duration:  req.Duration,
	}
	if err := route.SetWaypoints(req.Waypoints); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid waypoints"})
	}

	db := database.GetDB()
	if err := db.Create(&route).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to save route"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "route": routeView(&route)})
}

// GetUserRoutes lists a user's saved routes.
func GetUserRoutes(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	db := database.GetDB()
	var routes []models.Route
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&routes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch routes"})
	}

	views := make([]fiber.Map, 0, len(routes))
	for i := range routes {
		views = append(views, routeView(&routes[i]))
	}
	return c.JSON(fiber.Map{"success": true, "routes": views, "total": len(views)})
}

// GetRouteWaypoints returns one route with its waypoint list.
func GetRouteWaypoints(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid route ID"})
	}

	db := database.GetDB()
	var route models.Route
	if err := db.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Route not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch route"})
	}

	return c.JSON(fiber.Map{"success": true, "route": routeView(&route)})
}

// CompleteRoute marks a route finished. With a user_id query parameter
// the flat route points are granted and the unlock engine runs.
func CompleteRoute(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid route ID"})
	}
	userID, err := queryUserID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user_id"})
	}

	db := database.GetDB()
	route, result, err := services.CompleteRoute(db, id, userID)
	if err != nil {
		return serviceError(c, err)
	}

	resp := fiber.Map{
		"success":        true,
		"message":        "Route completed successfully",
		"route":          routeView(route),
		"points_awarded": result.PointsAwarded,
	}
	if userID != 0 {
		resp["achievement"] = result.Achievement
		resp["motivation"] = result.Motivation
	}
	return c.JSON(resp)
}

func routeView(route *models.Route) fiber.Map {
	return fiber.Map{
		"id":             route.ID,
		"user_id":        route.UserID,
		"start":          route.Start,
		"end":            route.End,
		"waypoints":      route.WaypointList(),
		"route_type":     route.RouteType,
		"distance":       route.Distance,
		"duration":       route.Duration,
		"ai_description": route.AIDescription,
		"points_earned":  route.PointsEarned,
		"completed":      route.Completed,
		"created_at":     route.CreatedAt,
		"completed_at":   route.CompletedAt,
	}
}
