package handlers

import (
	"time"

	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/middleware"
	"github.com/Gojer16/Elevare-sub001/models"
	"github.com/Gojer16/Elevare-sub001/services"

	"github.com/gofiber/fiber/v2"
)

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Avatar      *string `json:"avatar"`
	Timezone    *string `json:"timezone"`
	Plan        *string `json:"plan"`
}

// GetCurrentUser returns the authenticated user's profile
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userInfoOf(user),
	})
}

// UpdateCurrentUser updates profile fields. Changing the timezone only shifts
// how future "today"s are resolved; past streak state is left as it is.
func UpdateCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	updates := map[string]interface{}{}

	if req.DisplayName != nil {
		if len(*req.DisplayName) > 100 {
			return c.Status(400).JSON(fiber.Map{"error": "Display name must be at most 100 characters"})
		}
		updates["display_name"] = *req.DisplayName
	}

	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if req.Timezone != nil {
		if !validTimezone(*req.Timezone) || *req.Timezone == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid timezone"})
		}
		updates["timezone"] = *req.Timezone
	}

	if req.Plan != nil {
		if *req.Plan != models.PlanFree && *req.Plan != models.PlanPremium {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid plan"})
		}
		updates["plan"] = *req.Plan
	}

	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Nothing to update"})
	}

	updates["updated_at"] = time.Now()

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	db.First(&user, userID)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userInfoOf(user),
	})
}

// GetUserStats returns the aggregate counters the dashboard renders
func GetUserStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var tasksCompleted, reflectionsWritten, unlockedCount int64
	db.Model(&models.Task{}).Where("user_id = ? AND done = ?", userID, true).Count(&tasksCompleted)
	db.Model(&models.Task{}).Where("user_id = ? AND reflection <> ''", userID).Count(&reflectionsWritten)
	db.Model(&models.UserAchievement{}).Where("user_id = ?", userID).Count(&unlockedCount)

	response := fiber.Map{
		"success":               true,
		"tasks_completed":       tasksCompleted,
		"reflections_written":   reflectionsWritten,
		"current_streak":        user.CurrentStreak,
		"longest_streak":        user.LongestStreak,
		"achievements_unlocked": unlockedCount,
	}

	if user.LastActiveDate != nil {
		response["last_active_date"] = services.DateOf(*user.LastActiveDate).String()
	}

	// Premium-only breakdowns
	if services.PlanAllows(user.Plan, services.FeatureAdvancedStats) {
		var firstTask models.Task
		if err := db.Where("user_id = ? AND done = ?", userID, true).
			Order("for_date ASC").First(&firstTask).Error; err == nil {
			response["first_completed_date"] = firstTask.ForDate
		}

		var committed int64
		db.Model(&models.Task{}).Where("user_id = ?", userID).Count(&committed)
		if committed > 0 {
			response["completion_rate"] = float64(tasksCompleted) / float64(committed)
		}
	}

	return c.JSON(response)
}
