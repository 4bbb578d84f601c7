// models/path.go
package models

import "time"

// Task status values. Completed is terminal.
const (
	TaskNotStarted = "Not Started"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

// ValidTaskStatus reports whether s is an accepted status value.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Path is a named walkable route with a fixed start and end.
type Path struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null;size:100" json:"name"`
	StartPoint  Location `gorm:"embedded;embeddedPrefix:start_" json:"start_point"`
	EndPoint    Location `gorm:"embedded;embeddedPrefix:end_" json:"end_point"`
	Difficulty  string   `gorm:"size:16;default:'Easy';index" json:"difficulty"` // Easy, Medium, Hard
	AISuggested bool     `gorm:"default:false;index" json:"ai_suggested"`

	CreatedAt time.Time `json:"created_at"`
	Tasks     []Task    `gorm:"foreignKey:PathID" json:"tasks,omitempty"`
}

// Task belongs to a path and pays out reward points once, when it first
// reaches Completed.
type Task struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	PathID          uint   `gorm:"not null;index" json:"path_id"`
	TaskDescription string `gorm:"not null;type:text" json:"task_description"`
	RewardPoints    int    `gorm:"default:10" json:"reward_points"`
	Status          string `gorm:"size:16;default:'Not Started'" json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
