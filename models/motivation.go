// models/motivation.go
package models

// Trigger events for motivational messages.
const (
	TriggerTaskCompleted  = "task_completed"
	TriggerRouteCompleted = "route_completed"
	TriggerDailyLogin     = "daily_login"
)

// MotivationMessage is a catalog entry keyed by trigger event.
type MotivationMessage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TriggerEvent string `gorm:"not null;size:64;index" json:"trigger_event"`
	MessageText  string `gorm:"not null;type:text" json:"message_text"`
}
