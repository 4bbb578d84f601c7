// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"trailquest/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("Migrations completed")
}

// createIndexes creates indexes AutoMigrate does not cover
func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_total_points ON users(total_points DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Route and challenge indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_routes_user ON routes(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_routes_completed ON routes(completed)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_route ON challenges(route_id)")

	// Path and task indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_path ON tasks(path_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)")

	// Catalog indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_motivation_trigger ON motivation_messages(trigger_event)")
}
