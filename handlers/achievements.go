package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/middleware"
	"github.com/Gojer16/Elevare-sub001/models"
	"github.com/Gojer16/Elevare-sub001/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAchievements returns the full catalog with per-user progress, in catalog
// order. Read-only; nothing is unlocked here.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var catalog []models.Achievement
	if err := db.Order("id ASC").Find(&catalog).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	var unlocked []models.UserAchievement
	if err := db.Preload("Achievement").Where("user_id = ?", userID).Find(&unlocked).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch unlocked achievements"})
	}

	unlockedAt := make(map[string]time.Time, len(unlocked))
	for _, ua := range unlocked {
		unlockedAt[ua.Achievement.Code] = ua.UnlockedAt
	}

	ctx := buildEvaluationContext(db, &user)
	progress := services.AchievementProgressFor(catalog, ctx, unlockedAt)

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": progress,
		"total":        len(catalog),
		"unlocked":     len(unlockedAt),
	})
}

// buildEvaluationContext snapshots the aggregate counters the rules run
// against. The latest completion time is converted to the user's timezone
// here; the evaluator itself never does timezone math.
func buildEvaluationContext(db *gorm.DB, user *models.User) services.EvaluationContext {
	var tasksCompleted, reflectionsWritten int64
	db.Model(&models.Task{}).Where("user_id = ? AND done = ?", user.ID, true).Count(&tasksCompleted)
	db.Model(&models.Task{}).Where("user_id = ? AND reflection <> ''", user.ID).Count(&reflectionsWritten)

	ctx := services.EvaluationContext{
		TasksCompleted:     int(tasksCompleted),
		ReflectionsWritten: int(reflectionsWritten),
		StreakCount:        user.CurrentStreak,
	}

	var lastDone models.Task
	err := db.Where("user_id = ? AND done = ?", user.ID, true).
		Order("completed_at DESC").First(&lastDone).Error
	if err == nil && lastDone.CompletedAt != nil {
		tod := services.TimeOfDayOf(lastDone.CompletedAt.In(user.Location()))
		ctx.LatestCompletionLocalTime = &tod
	}

	return ctx
}

// evaluateUnlocks runs the achievement evaluator against fresh aggregates and
// persists one UserAchievement row per newly satisfied rule. A duplicate-key insert
// means a concurrent request already unlocked the code; that row wins and the
// duplicate is dropped from the response.
func evaluateUnlocks(db *gorm.DB, user *models.User) []services.Unlock {
	var catalog []models.Achievement
	if err := db.Order("id ASC").Find(&catalog).Error; err != nil {
		log.Printf("achievement evaluation skipped: %v", err)
		return []services.Unlock{}
	}

	var unlockedCodes []string
	db.Model(&models.UserAchievement{}).
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ?", user.ID).
		Pluck("achievements.code", &unlockedCodes)

	already := make(map[string]bool, len(unlockedCodes))
	for _, code := range unlockedCodes {
		already[code] = true
	}

	ctx := buildEvaluationContext(db, user)
	unlocks := services.EvaluateAchievements(catalog, ctx, already, time.Now())

	persisted := make([]services.Unlock, 0, len(unlocks))
	for _, unlock := range unlocks {
		record := models.UserAchievement{
			UserID:        user.ID,
			AchievementID: unlock.Achievement.ID,
			UnlockedAt:    unlock.UnlockedAt,
		}
		if err := db.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			log.Printf("failed to persist unlock %s for user %d: %v", unlock.Achievement.Code, user.ID, err)
			continue
		}
		persisted = append(persisted, unlock)
	}

	return persisted
}
