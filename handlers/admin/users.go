package admin

import (
	"strconv"

	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers returns all users with pagination
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	search := c.Query("search", "")

	offset := (page - 1) * limit

	var users []models.User
	var total int64

	query := db.Model(&models.User{})

	if search != "" {
		query = query.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query.Count(&total)

	if err := query.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUser returns a single user by ID
func GetUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.Preload("Achievements.Achievement").First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

// UpdateUser updates plan/admin flags on a user
func UpdateUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var req struct {
		DisplayName *string `json:"display_name"`
		Plan        *string `json:"plan"`
		IsAdmin     *bool   `json:"is_admin"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Plan != nil {
		if *req.Plan != models.PlanFree && *req.Plan != models.PlanPremium {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid plan"})
		}
		updates["plan"] = *req.Plan
	}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update user"})
		}
	}

	db.First(&user, user.ID)
	return c.JSON(user)
}

// BanUser toggles the banned flag
func BanUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	if err := db.Model(&user).Update("is_banned", !user.IsBanned).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"is_banned": !user.IsBanned,
	})
}

// DeleteUser removes a user and their data
func DeleteUser(c *fiber.Ctx) error {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	tx := db.Begin()
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user data"})
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserAchievement{}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user data"})
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user"})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
