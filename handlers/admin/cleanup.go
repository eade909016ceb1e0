package admin

import (
	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/models"
	"github.com/Gojer16/Elevare-sub001/services"

	"github.com/gofiber/fiber/v2"
)

// ManualCleanup triggers a guest-account cleanup pass outside the schedule
func ManualCleanup(c *fiber.Ctx) error {
	cleanup := services.GetCleanupService()
	if cleanup == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Cleanup service not initialized"})
	}

	removed, err := cleanup.CleanupStaleGuests()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Cleanup failed"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"removed": removed,
	})
}

// GetCleanupStats reports how many guest accounts exist and how many are
// candidates for the next cleanup pass
func GetCleanupStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var totalGuests int64
	db.Model(&models.User{}).Where("is_guest = ?", true).Count(&totalGuests)

	return c.JSON(fiber.Map{
		"success":      true,
		"total_guests": totalGuests,
	})
}
