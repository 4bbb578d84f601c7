// main.go
package main

import (
	"log"
	"os"
	"time"

	"trailquest/database"
	"trailquest/handlers"
	"trailquest/middleware"
	"trailquest/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()

	// Seed starter content into empty collections
	if os.Getenv("SEED_ON_START") != "false" {
		if err := database.SeedSampleData(); err != nil {
			log.Printf("Warning: sample data seeding failed: %v", err)
		}
	}

	// Initialize the LLM client
	services.InitAI()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// User routes
	api.Post("/users", handlers.CreateUser)
	api.Get("/users", handlers.ListUsers)
	api.Get("/users/me", middleware.AuthMiddleware, handlers.GetCurrentUser)
	api.Get("/users/:id", handlers.GetUser)

	// Route routes
	api.Post("/routes/plan", handlers.PlanRoute)
	api.Post("/routes", handlers.SaveRoute)
	api.Get("/routes/user/:userId", handlers.GetUserRoutes)
	api.Get("/routes/:id/waypoints", handlers.GetRouteWaypoints)
	api.Patch("/routes/:id/complete", handlers.CompleteRoute)

	// Challenge routes
	api.Post("/challenges", handlers.CreateChallenge)
	api.Get("/challenges/route/:routeId", handlers.GetRouteChallenges)
	api.Patch("/challenges/:id/complete", handlers.CompleteChallenge)

	// Path and task routes
	api.Post("/paths", handlers.CreatePath)
	api.Get("/paths", handlers.ListPaths)
	api.Post("/paths/suggest", handlers.SuggestPaths)
	api.Get("/paths/:id", handlers.GetPath)
	api.Get("/paths/:id/tasks", handlers.ListPathTasks)
	api.Post("/tasks", handlers.CreateTask)
	api.Patch("/tasks/:id/status", handlers.UpdateTaskStatus)

	// Achievement routes
	api.Get("/achievements", handlers.ListAchievements)
	api.Post("/achievements", handlers.CreateAchievement)
	api.Get("/achievements/status", handlers.GetAchievementStatus)
	api.Post("/achievements/check", handlers.CheckAchievements)

	// Reward store routes
	api.Get("/rewards/items", handlers.ListRewardItems)
	api.Post("/rewards/items", handlers.CreateRewardItem)
	api.Get("/rewards/user/:userId/inventory", handlers.GetUserInventory)
	api.Post("/rewards/claim", handlers.ClaimReward)

	// Motivation and leaderboard
	api.Get("/motivation", handlers.GetMotivation)
	api.Get("/leaderboard", handlers.GetLeaderboard)

	// Map overlays
	api.Get("/map/points-of-interest", handlers.GetPointsOfInterest)
	api.Get("/map/challenges/nearby", handlers.GetNearbyChallenges)

	// Assistant chat
	api.Post("/chat", handlers.Chat)

	// Sample data
	api.Post("/seed", handlers.SeedData)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
