package handlers

import (
	"strconv"
	"time"

	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/middleware"
	"github.com/Gojer16/Elevare-sub001/models"

	"github.com/gofiber/fiber/v2"
)

type ReflectionRequest struct {
	Reflection string `json:"reflection"`
}

// SaveReflection stores the end-of-day reflection on a completed task and
// re-evaluates the reflection achievements. Saving again overwrites the text
// but keeps the original ReflectedAt, so a day counts once toward the
// reflection counters.
func SaveReflection(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	taskID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var req ReflectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Reflection == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Reflection text is required"})
	}
	if len(req.Reflection) > 5000 {
		return c.Status(400).JSON(fiber.Map{"error": "Reflection must be at most 5000 characters"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var task models.Task
	if err := db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Task not found"})
	}

	if !task.Done {
		return c.Status(400).JSON(fiber.Map{"error": "Complete the task before reflecting on it"})
	}

	task.Reflection = req.Reflection
	if task.ReflectedAt == nil {
		now := time.Now()
		task.ReflectedAt = &now
	}

	if err := db.Save(&task).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save reflection"})
	}

	newAchievements := evaluateUnlocks(db, &user)
	if len(newAchievements) > 0 {
		NotifyUnlocks(user.ID, newAchievements)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"task":             task,
		"new_achievements": newAchievements,
	})
}
