// models/user.go
package models

import (
	"time"
)

const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsAdmin     bool    `gorm:"default:false" json:"is_admin"`
	IsBanned    bool    `gorm:"default:false" json:"is_banned"`

	// Freemium plan and locale
	Plan     string `gorm:"default:'free';size:20" json:"plan"`
	Timezone string `gorm:"default:'UTC';size:64" json:"timezone"`

	// Streak counters, mutated only through services.UpdateStreak
	CurrentStreak  int        `gorm:"default:0" json:"current_streak"`
	LongestStreak  int        `gorm:"default:0" json:"longest_streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`

	// Preferences
	UITheme        string `gorm:"default:'system';size:20" json:"ui_theme"`
	ReminderTime   string `gorm:"size:5" json:"reminder_time"` // HH:MM, empty = off
	EmailReminders bool   `gorm:"default:false" json:"email_reminders"`

	// Timestamps
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    time.Time  `json:"last_login"`
	LastActivity *time.Time `json:"last_activity,omitempty"`

	// Relationships
	Tasks        []Task            `gorm:"foreignKey:UserID" json:"tasks,omitempty"`
	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
}

// Location resolves the user's IANA timezone, falling back to UTC when the
// stored value is empty or invalid.
func (u *User) Location() *time.Location {
	if u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index;uniqueIndex:idx_user_achievement_once" json:"user_id"`
	AchievementID uint      `gorm:"not null;index;uniqueIndex:idx_user_achievement_once" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}
