package handlers

import (
	"strconv"

	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/models"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardEntry struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	Avatar        string `json:"avatar"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// GetLeaderboard returns the top streaks among registered users.
// GET /api/leaderboard?category=current&limit=50&offset=0
func GetLeaderboard(c *fiber.Ctx) error {
	category := c.Query("category", "current")

	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	var orderBy string
	switch category {
	case "longest":
		orderBy = "longest_streak DESC, current_streak DESC"
	case "current":
		orderBy = "current_streak DESC, longest_streak DESC"
	default:
		category = "current"
		orderBy = "current_streak DESC, longest_streak DESC"
	}

	db := database.GetDB()

	var users []models.User
	if err := db.Where("is_guest = ? AND is_banned = ?", false, false).
		Order(orderBy).
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:        user.ID,
			Username:      user.Username,
			DisplayName:   user.DisplayName,
			Avatar:        user.Avatar,
			CurrentStreak: user.CurrentStreak,
			LongestStreak: user.LongestStreak,
		})
	}

	var total int64
	db.Model(&models.User{}).Where("is_guest = ? AND is_banned = ?", false, false).Count(&total)

	return c.JSON(fiber.Map{
		"success":  true,
		"entries":  entries,
		"category": category,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}
