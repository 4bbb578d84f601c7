package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trailquest/database"
	"trailquest/middleware"
	"trailquest/models"
)

// setupTest wires an in-memory database into the global handle and
// builds an app with the API routes under test.
func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Route{},
		&models.Challenge{},
		&models.Path{},
		&models.Task{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.RewardItem{},
		&models.UserReward{},
		&models.MotivationMessage{},
	))
	database.SetDB(db)

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/guest", GuestLogin)
	api.Post("/auth/login", Login)
	api.Post("/auth/register", Register)

	api.Post("/users", CreateUser)
	api.Get("/users", ListUsers)
	api.Get("/users/me", middleware.AuthMiddleware, GetCurrentUser)
	api.Get("/users/:id", GetUser)

	api.Post("/routes", SaveRoute)
	api.Get("/routes/user/:userId", GetUserRoutes)
	api.Get("/routes/:id/waypoints", GetRouteWaypoints)
	api.Patch("/routes/:id/complete", CompleteRoute)

	api.Post("/challenges", CreateChallenge)
	api.Get("/challenges/route/:routeId", GetRouteChallenges)
	api.Patch("/challenges/:id/complete", CompleteChallenge)

	api.Post("/paths", CreatePath)
	api.Get("/paths", ListPaths)
	api.Get("/paths/:id", GetPath)
	api.Get("/paths/:id/tasks", ListPathTasks)
	api.Post("/tasks", CreateTask)
	api.Patch("/tasks/:id/status", UpdateTaskStatus)

	api.Get("/achievements", ListAchievements)
	api.Post("/achievements", CreateAchievement)
	api.Get("/achievements/status", GetAchievementStatus)
	api.Post("/achievements/check", CheckAchievements)

	api.Get("/rewards/items", ListRewardItems)
	api.Post("/rewards/items", CreateRewardItem)
	api.Get("/rewards/user/:userId/inventory", GetUserInventory)
	api.Post("/rewards/claim", ClaimReward)

	api.Get("/motivation", GetMotivation)
	api.Get("/leaderboard", GetLeaderboard)
	api.Get("/map/points-of-interest", GetPointsOfInterest)
	api.Get("/map/challenges/nearby", GetNearbyChallenges)

	return app, db
}

// doJSON issues a request with an optional JSON body and decodes the
// JSON response.
func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func seedUser(t *testing.T, db *gorm.DB, points int) *models.User {
	t.Helper()
	user := &models.User{Name: "Explorer", TotalPoints: points, Badges: "[]"}
	require.NoError(t, db.Create(user).Error)
	return user
}
