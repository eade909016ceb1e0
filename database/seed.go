// database/seed.go - Achievement catalog seed
package database

import (
	"errors"
	"log"

	"github.com/Gojer16/Elevare-sub001/models"
	"gorm.io/gorm"
)

// achievementSeed lists the catalog in display order. The evaluator walks
// rows in this order, so unlock notifications come out "first task" before
// "10 tasks" and so on.
var achievementSeed = []models.Achievement{
	{Code: "first_task", Title: "First Step", Description: "Complete your first task", Category: models.CategoryTask, Icon: "🎯"},
	{Code: "tasks_10", Title: "Getting Things Done", Description: "Complete 10 tasks", Category: models.CategoryTask, Icon: "✅"},
	{Code: "tasks_100", Title: "Centurion", Description: "Complete 100 tasks", Category: models.CategoryTask, Icon: "🏆"},
	{Code: "streak_3", Title: "Warming Up", Description: "Keep a 3-day streak", Category: models.CategoryStreak, Icon: "🔥"},
	{Code: "streak_7", Title: "One Full Week", Description: "Keep a 7-day streak", Category: models.CategoryStreak, Icon: "📅"},
	{Code: "streak_30", Title: "Unstoppable", Description: "Keep a 30-day streak", Category: models.CategoryStreak, Icon: "🚀"},
	{Code: "first_reflection", Title: "Looking Back", Description: "Write your first reflection", Category: models.CategoryReflection, Icon: "✍️"},
	{Code: "reflections_10", Title: "Thoughtful", Description: "Write 10 reflections", Category: models.CategoryReflection, Icon: "📖"},
	{Code: "reflections_100", Title: "Philosopher", Description: "Write 100 reflections", Category: models.CategoryReflection, Icon: "🦉"},
	{Code: "night_owl", Title: "Night Owl", Description: "Complete a task between midnight and 5 AM", Category: models.CategoryOther, Icon: "🌙"},
	{Code: "early_bird", Title: "Early Bird", Description: "Complete a task before 7 AM", Category: models.CategoryOther, Icon: "🌅"},
}

// SeedAchievements inserts any catalog rows that don't exist yet, keyed by
// code. Existing rows are left untouched so admin edits survive restarts.
func SeedAchievements(db *gorm.DB) error {
	seeded := 0
	for _, def := range achievementSeed {
		var existing models.Achievement
		err := db.Where("code = ?", def.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := db.Create(&def).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("✅ Seeded %d achievement(s)", seeded)
	}
	return nil
}
