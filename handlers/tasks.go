package handlers

import (
	"strconv"
	"time"

	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/middleware"
	"github.com/Gojer16/Elevare-sub001/models"
	"github.com/Gojer16/Elevare-sub001/services"

	"github.com/gofiber/fiber/v2"
)

type CreateTaskRequest struct {
	Title string `json:"title"`
	Note  string `json:"note"`
}

// GetTodayTask returns the task committed for the current user-local day.
func GetTodayTask(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	today := services.DateOf(time.Now().In(user.Location()))

	var task models.Task
	if err := db.Where("user_id = ? AND for_date = ?", userID, today.String()).First(&task).Error; err != nil {
		return c.JSON(fiber.Map{
			"success": true,
			"task":    nil,
			"date":    today.String(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"task":    task,
		"date":    today.String(),
	})
}

// CreateTask commits the one task for today. A day that already has a task
// rejects a second commit; the product is one focused thing per day.
func CreateTask(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}
	if len(req.Title) > 200 {
		return c.Status(400).JSON(fiber.Map{"error": "Title must be at most 200 characters"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	today := services.DateOf(time.Now().In(user.Location()))

	var existing models.Task
	if err := db.Where("user_id = ? AND for_date = ?", userID, today.String()).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"error": "You already committed to a task today"})
	}

	task := models.Task{
		UserID:  userID,
		Title:   req.Title,
		Note:    req.Note,
		ForDate: today.String(),
	}

	if err := db.Create(&task).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create task"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"task":    task,
	})
}

// CompleteTask marks a task done, advances the streak, and unlocks any newly
// satisfied achievements. The task flip and the streak counters commit in one
// transaction; unlock records are written afterwards, so a crash in between
// just defers the unlock to the next evaluation.
func CompleteTask(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	taskID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid task ID"})
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

	if task.Done {
		return c.Status(400).JSON(fiber.Map{"error": "Task already completed"})
	}

	now := time.Now()
	localNow := now.In(user.Location())
	today := services.DateOf(localNow)

	newState := services.UpdateStreak(services.StreakStateOf(&user), today)

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	task.Done = true
	task.CompletedAt = &now
	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update task"})
	}

	services.ApplyStreak(&user, newState)
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update streak"})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	newAchievements := evaluateUnlocks(db, &user)
	if len(newAchievements) > 0 {
		NotifyUnlocks(user.ID, newAchievements)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"task":             task,
		"current_streak":   user.CurrentStreak,
		"longest_streak":   user.LongestStreak,
		"last_active_date": newState.LastActiveDate.String(),
		"new_achievements": newAchievements,
	})
}

// GetTaskHistory returns past tasks, newest first. The free plan sees the
// last FreeHistoryDays days; premium is unbounded.
func GetTaskHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "30"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 30
	}
	offset := (page - 1) * limit

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	query := db.Model(&models.Task{}).Where("user_id = ?", userID)

	limited := !services.PlanAllows(user.Plan, services.FeatureUnlimitedHistory)
	if limited {
		cutoff := services.DateOf(time.Now().In(user.Location())).AddDays(-services.FreeHistoryDays)
		query = query.Where("for_date >= ?", cutoff.String())
	}

	var total int64
	query.Count(&total)

	var tasks []models.Task
	if err := query.Order("for_date DESC").Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tasks":   tasks,
		"total":   total,
		"page":    page,
		"limit":   limit,
		"limited": limited,
	})
}
