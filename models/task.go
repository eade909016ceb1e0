// models/task.go
package models

import "time"

// Task is the single thing a user commits to for one calendar day.
// ForDate is the user-local day (YYYY-MM-DD) the task belongs to;
// user_id + for_date carry a unique index so a day has at most one task.
type Task struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index;uniqueIndex:idx_task_user_day" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title  string `gorm:"not null;size:200" json:"title"`
	Note   string `gorm:"type:text" json:"note"`

	ForDate     string     `gorm:"not null;size:10;uniqueIndex:idx_task_user_day" json:"for_date"`
	Done        bool       `gorm:"default:false" json:"done"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Reflection  string     `gorm:"type:text" json:"reflection"`
	ReflectedAt *time.Time `json:"reflected_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
