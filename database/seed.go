// database/seed.go - Sample data seeder
package database

import (
	"log"

	"trailquest/models"
)

// SeedSampleData inserts starter catalogs and paths. Each collection is
// seeded only when empty, so the call is safe to repeat.
func SeedSampleData() error {
	db := GetDB()

	var count int64

	db.Model(&models.Achievement{}).Count(&count)
	if count == 0 {
		achievements := []models.Achievement{
			{Title: "Explorer Badge", ConditionType: models.ConditionPoints, ConditionValue: 100, RewardPoints: 50},
			{Title: "Trailblazer Badge", ConditionType: models.ConditionRoutesCompleted, ConditionValue: 5, RewardPoints: 75},
		}
		if err := db.Create(&achievements).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d achievements", len(achievements))
	}

	db.Model(&models.RewardItem{}).Count(&count)
	if count == 0 {
		items := []models.RewardItem{
			{ItemName: "Golden Compass", Cost: 120, Category: "Badge"},
			{ItemName: "Speed Boost", Cost: 80, Category: "Boost"},
			{ItemName: "Premium Badge", Cost: 150, Category: "Badge"},
		}
		if err := db.Create(&items).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d reward items", len(items))
	}

	db.Model(&models.MotivationMessage{}).Count(&count)
	if count == 0 {
		messages := []models.MotivationMessage{
			{TriggerEvent: models.TriggerTaskCompleted, MessageText: "🔥 You’re unstoppable! Keep going!"},
			{TriggerEvent: models.TriggerRouteCompleted, MessageText: "🏁 Route complete! On to the next adventure."},
			{TriggerEvent: models.TriggerDailyLogin, MessageText: "Welcome back, explorer!"},
		}
		if err := db.Create(&messages).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d motivation messages", len(messages))
	}

	db.Model(&models.Path{}).Count(&count)
	if count == 0 {
		scenicTrail := models.Path{
			Name:        "Scenic Mountain Trail",
			StartPoint:  models.Location{Latitude: 37.773, Longitude: -122.431, Name: "Trailhead"},
			EndPoint:    models.Location{Latitude: 37.802, Longitude: -122.448, Name: "Summit"},
			Difficulty:  "Medium",
			AISuggested: true,
		}
		cityWalk := models.Path{
			Name:       "City Landmark Walk",
			StartPoint: models.Location{Latitude: 37.7749, Longitude: -122.4194, Name: "Downtown"},
			EndPoint:   models.Location{Latitude: 37.7849, Longitude: -122.4094, Name: "Old Town"},
			Difficulty: "Easy",
		}
		if err := db.Create(&scenicTrail).Error; err != nil {
			return err
		}
		if err := db.Create(&cityWalk).Error; err != nil {
			return err
		}

		tasks := []models.Task{
			{PathID: scenicTrail.ID, TaskDescription: "Reach the Lake Viewpoint", RewardPoints: 20, Status: models.TaskNotStarted},
			{PathID: scenicTrail.ID, TaskDescription: "Take a photo of the summit landmark", RewardPoints: 30, Status: models.TaskNotStarted},
			{PathID: cityWalk.ID, TaskDescription: "Try a local delicacy", RewardPoints: 15, Status: models.TaskNotStarted},
			{PathID: cityWalk.ID, TaskDescription: "Find the hidden mural", RewardPoints: 25, Status: models.TaskNotStarted},
		}
		if err := db.Create(&tasks).Error; err != nil {
			return err
		}
		log.Println("Seeded starter paths and tasks")
	}

	return nil
}
