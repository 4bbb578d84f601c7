// models/route.go
package models

import (
	"encoding/json"
	"time"
)

// Location is a named coordinate, embedded wherever an entity carries a
// position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `gorm:"size:100" json:"name"`
}

// RoutePoints is the flat grant for finishing any route.
const RoutePoints = 50

// Route is a saved travel route. Waypoints are a JSON array in a text
// column.
type Route struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	UserID        uint     `gorm:"not null;index" json:"user_id"`
	Start         Location `gorm:"embedded;embeddedPrefix:start_" json:"start"`
	End           Location `gorm:"embedded;embeddedPrefix:end_" json:"end"`
	Waypoints     string   `gorm:"type:text;default:'[]'" json:"-"`
	RouteType     string   `gorm:"size:32" json:"route_type"` // fastest, scenic, cheapest
	Distance      float64  `json:"distance"`
	Duration      float64  `json:"duration"`
	AIDescription string   `gorm:"type:text" json:"ai_description,omitempty"`
	PointsEarned  int      `gorm:"default:0" json:"points_earned"`
	Completed     bool     `gorm:"default:false" json:"completed"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (r *Route) WaypointList() []Location {
	var wps []Location
	if r.Waypoints != "" {
		_ = json.Unmarshal([]byte(r.Waypoints), &wps)
	}
	if wps == nil {
		wps = []Location{}
	}
	return wps
}

func (r *Route) SetWaypoints(wps []Location) error {
	raw, err := json.Marshal(wps)
	if err != nil {
		return err
	}
	r.Waypoints = string(raw)
	return nil
}
