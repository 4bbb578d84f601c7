// models/reward.go
package models

import "time"

// RewardItem is a purchasable store entry, immutable after creation.
type RewardItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ItemName string `gorm:"not null;size:100" json:"item_name"`
	Cost     int    `gorm:"not null" json:"cost"`
	Category string `gorm:"size:32;index" json:"category"` // Badge, Boost, Cosmetic

	CreatedAt time.Time `json:"created_at"`
}
