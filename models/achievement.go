// models/achievement.go
package models

import "time"

// Achievement categories
const (
	CategoryTask       = "TASK"
	CategoryStreak     = "STREAK"
	CategoryReflection = "REFLECTION"
	CategoryOther      = "OTHER"
)

type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"not null;uniqueIndex" json:"code"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Category    string `gorm:"not null;index" json:"category"` // TASK, STREAK, REFLECTION, OTHER
	Icon        string `json:"icon"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
