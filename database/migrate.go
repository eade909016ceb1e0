// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"github.com/Gojer16/Elevare-sub001/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	// Achievement catalog is static seed data; codes are the stable keys.
	if err := SeedAchievements(db); err != nil {
		log.Fatalf("❌ Failed to seed achievement catalog: %v", err)
	}

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates supporting indexes beyond what the model tags declare
func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_current_streak ON users(current_streak DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_longest_streak ON users(longest_streak DESC)")

	// Task indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_user_completed ON tasks(user_id, done)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_for_date ON tasks(for_date DESC)")

	// Unlock indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_unlocked_at ON user_achievements(unlocked_at DESC)")
}
