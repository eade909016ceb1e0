package admin

import (
	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/models"
	"github.com/Gojer16/Elevare-sub001/services"

	"github.com/gofiber/fiber/v2"
)

// GetAchievements returns the full catalog
func GetAchievements(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievements []models.Achievement
	if err := db.Order("id ASC").Find(&achievements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(achievements)
}

// CreateAchievement adds a catalog row. The code must have a rule bound to
// it, otherwise the evaluator would silently skip the new entry forever.
func CreateAchievement(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievement models.Achievement
	if err := c.BodyParser(&achievement); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if achievement.Code == "" || achievement.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Code and title are required"})
	}

	if !services.KnownCode(achievement.Code) {
		return c.Status(400).JSON(fiber.Map{"error": "No rule exists for this code"})
	}

	if err := db.Create(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create achievement"})
	}

	return c.Status(201).JSON(achievement)
}

// UpdateAchievement updates display fields on a catalog row. The code is the
// stable key unlock records hang off and stays immutable.
func UpdateAchievement(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievement models.Achievement
	if err := db.First(&achievement, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Icon        *string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}

	if len(updates) > 0 {
		if err := db.Model(&achievement).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update achievement"})
		}
	}

	db.First(&achievement, achievement.ID)
	return c.JSON(achievement)
}

// DeleteAchievement retires a catalog row. Existing unlock records keep their
// achievement_id; only the catalog entry disappears.
func DeleteAchievement(c *fiber.Ctx) error {
	db := database.GetDB()

	if err := db.Delete(&models.Achievement{}, c.Params("id")).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}

	return c.JSON(fiber.Map{
		"message": "Achievement deleted successfully",
	})
}
