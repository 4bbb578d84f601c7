// models/achievement.go
package models

import "time"

// ConditionType selects which user counter an achievement threshold is
// compared against.
type ConditionType string

const (
	ConditionPoints          ConditionType = "points"
	ConditionRoutesCompleted ConditionType = "routes_completed"
)

// Valid reports whether the tag is one of the known comparison kinds.
func (c ConditionType) Valid() bool {
	switch c {
	case ConditionPoints, ConditionRoutesCompleted:
		return true
	}
	return false
}

// Counter returns the user counter this condition compares against.
// Unknown tags return ErrInvalidCondition; the unlock engine treats them
// as never satisfied instead of failing the whole check.
func (c ConditionType) Counter(u *User) (int, error) {
	switch c {
	case ConditionPoints:
		return u.TotalPoints, nil
	case ConditionRoutesCompleted:
		return u.RoutesCompleted, nil
	}
	return 0, ErrInvalidCondition
}

// Achievement is a catalog entry, immutable after creation.
type Achievement struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Title          string        `gorm:"not null;uniqueIndex;size:100" json:"title"`
	ConditionType  ConditionType `gorm:"not null;size:32;index" json:"condition_type"`
	ConditionValue int           `gorm:"not null" json:"condition_value"`
	RewardPoints   int           `gorm:"default:0" json:"reward_points"`
	BadgeIcon      string        `gorm:"type:text" json:"badge_icon,omitempty"` // base64

	CreatedAt time.Time `json:"created_at"`
}
