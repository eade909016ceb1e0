package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Gojer16/Elevare-sub001/database"
	"github.com/Gojer16/Elevare-sub001/models"
)

// CleanupService prunes abandoned guest accounts in the background. Guests
// who never upgraded and went quiet keep no data worth holding on to.
type CleanupService struct {
	interval time.Duration
	maxAge   time.Duration
	stop     chan struct{}
	done     chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service and starts its
// worker unless GUEST_CLEANUP_ENABLED=false.
func InitCleanupService() {
	intervalHours := getEnvInt("GUEST_CLEANUP_INTERVAL_HOURS", 24)
	maxAgeDays := getEnvInt("GUEST_CLEANUP_MAX_AGE_DAYS", 30)

	cleanupService = &CleanupService{
		interval: time.Duration(intervalHours) * time.Hour,
		maxAge:   time.Duration(maxAgeDays) * 24 * time.Hour,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if os.Getenv("GUEST_CLEANUP_ENABLED") == "false" {
		log.Println("Guest cleanup disabled")
		close(cleanupService.done)
		return
	}

	go cleanupService.run()
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

func (s *CleanupService) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.CleanupStaleGuests(); err != nil {
				log.Printf("Guest cleanup failed: %v", err)
			}
		case <-s.stop:
			return
		}
	}
}

// Stop shuts the worker down and waits for it to finish.
func (s *CleanupService) Stop() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.stop)
	<-s.done
}

// CleanupStaleGuests deletes guest accounts with no activity inside the
// retention window, together with their tasks and unlock records. Returns
// how many accounts were removed.
func (s *CleanupService) CleanupStaleGuests() (int64, error) {
	db := database.GetDB()
	cutoff := time.Now().Add(-s.maxAge)

	var stale []models.User
	if err := db.Where("is_guest = ? AND (last_activity < ? OR (last_activity IS NULL AND created_at < ?))",
		true, cutoff, cutoff).Find(&stale).Error; err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]uint, len(stale))
	for i, user := range stale {
		ids[i] = user.ID
	}

	tx := db.Begin()
	if err := tx.Where("user_id IN ?", ids).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Where("user_id IN ?", ids).Delete(&models.UserAchievement{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.User{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	log.Printf("✅ Cleaned up %d stale guest account(s)", len(stale))
	return int64(len(stale)), nil
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return def
}
