// models/challenge.go
package models

import "time"

// Challenge is a point-bearing activity pinned to a route.
type Challenge struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	RouteID     uint     `gorm:"not null;index" json:"route_id"`
	Type        string   `gorm:"size:32" json:"type"` // photo, food, location, hidden_gem
	Title       string   `gorm:"not null;size:100" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Location    Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Points      int      `gorm:"default:10" json:"points"`
	Completed   bool     `gorm:"default:false" json:"completed"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
