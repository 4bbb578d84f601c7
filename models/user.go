// models/user.go
package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null;size:100" json:"name"`
	Email    *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string  `json:"-"`
	IsGuest  bool    `gorm:"default:false" json:"is_guest"`

	// Progress ledger
	TotalPoints     int `gorm:"default:0" json:"total_points"`
	Level           int `gorm:"default:1" json:"level"`
	RoutesCompleted int `gorm:"default:0" json:"routes_completed"`

	// Ad hoc badge labels, JSON array in a text column.
	Badges string `gorm:"type:text;default:'[]'" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
	Rewards      []UserReward      `gorm:"foreignKey:UserID" json:"rewards,omitempty"`
}

// BadgeList decodes the badges column. A corrupt column reads as empty
// rather than failing the request.
func (u *User) BadgeList() []string {
	var badges []string
	if u.Badges != "" {
		_ = json.Unmarshal([]byte(u.Badges), &badges)
	}
	if badges == nil {
		badges = []string{}
	}
	return badges
}

// AddBadge appends a label with set semantics and reports whether the
// column changed.
func (u *User) AddBadge(label string) bool {
	badges := u.BadgeList()
	for _, b := range badges {
		if b == label {
			return false
		}
	}
	badges = append(badges, label)
	raw, err := json.Marshal(badges)
	if err != nil {
		return false
	}
	u.Badges = string(raw)
	return true
}

// UserAchievement records a single unlock. The composite unique index is
// what makes reward granting at-most-once per user and achievement.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

// UserReward records a claimed store item. Unique per user and item:
// repeat claims are rejected, not appended.
type UserReward struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_reward" json:"user_id"`
	RewardItemID uint      `gorm:"not null;uniqueIndex:idx_user_reward" json:"reward_item_id"`
	ClaimedAt    time.Time `json:"claimed_at"`

	User       User       `gorm:"foreignKey:UserID" json:"-"`
	RewardItem RewardItem `gorm:"foreignKey:RewardItemID" json:"reward_item,omitempty"`
}
