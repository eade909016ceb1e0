package handlers

import (
	"regexp"

	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/middleware"
	"github.com/Gojer16/Elevare-sub001/models"
	"github.com/Gojer16/Elevare-sub001/services"

	"github.com/gofiber/fiber/v2"
)

type PreferencesRequest struct {
	UITheme        string `json:"ui_theme"`
	ReminderTime   string `json:"reminder_time"`
	EmailReminders bool   `json:"email_reminders"`
}

var reminderTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var builtinThemes = map[string]bool{
	"system": true,
	"light":  true,
	"dark":   true,
}

// SavePreferences saves display and reminder preferences. Themes beyond the
// built-in three are a premium feature.
func SavePreferences(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req PreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}

	if req.UITheme == "" {
		req.UITheme = "system"
	}
	if !builtinThemes[req.UITheme] && !services.PlanAllows(user.Plan, services.FeatureCustomThemes) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Custom themes require a premium plan",
		})
	}

	if req.ReminderTime != "" && !reminderTimePattern.MatchString(req.ReminderTime) {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Reminder time must be HH:MM",
		})
	}

	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"ui_theme":        req.UITheme,
		"reminder_time":   req.ReminderTime,
		"email_reminders": req.EmailReminders,
	})

	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save preferences",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Preferences saved successfully",
	})
}

// GetPreferences retrieves the user's preferences
func GetPreferences(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"ui_theme":        user.UITheme,
		"reminder_time":   user.ReminderTime,
		"email_reminders": user.EmailReminders,
	})
}
