package achievements

import (
	"errors"
	"log"
	"time"

	"medicgrow/backend/models"

	"gorm.io/gorm"
)

// Check loads the user's state, evaluates the rule engine and persists
// the outcome. A missing user is a silent no-op. The returned error
// distinguishes "nothing new" from "evaluation failed"; most callers
// want CheckAndAward instead.
func Check(db *gorm.DB, userID uint, metadata *GameMetadata) ([]models.Achievement, error) {
	var user models.User
	if err := db.Preload("Achievements").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var attempts []models.Attempt
	if err := db.Where("user_id = ?", userID).Order("date asc").Find(&attempts).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	var gamesToday int64
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.Activity{}).
		Where("user_id = ? AND action = ? AND date >= ?", userID, models.ActionGameCompleted, todayStart).
		Count(&gamesToday).Error; err != nil {
		return nil, err
	}

	newly := Evaluate(Input{
		User:                &user,
		Attempts:            attempts,
		GamesCompletedToday: gamesToday,
		Metadata:            metadata,
		Now:                 now,
	})

	if len(newly) > 0 {
		if err := db.Create(&newly).Error; err != nil {
			return nil, err
		}
	}
	// Update through the model type, not the loaded struct: saving the
	// struct would also save its Achievements association, inserting
	// the rows from Evaluate a second time.
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("title", user.Title).Error; err != nil {
		return nil, err
	}

	return newly, nil
}

// CheckAndAward is the best-effort form used from request handlers:
// failures are logged and an empty list returned so the primary
// request never fails on the achievement side channel.
func CheckAndAward(db *gorm.DB, userID uint, metadata *GameMetadata) []models.Achievement {
	newly, err := Check(db, userID, metadata)
	if err != nil {
		log.Printf("Error checking achievements: %v", err)
		return nil
	}
	return newly
}
