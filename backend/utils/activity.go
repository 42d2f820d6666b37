package utils

import (
	"log"
	"time"

	"medicgrow/backend/models"

	"gorm.io/gorm"
)

// LogActivity appends an entry to the activity log. Best effort: a
// failed write is logged and never fails the calling request.
func LogActivity(db *gorm.DB, userID uint, action, details string) {
	activity := models.Activity{
		UserID:  userID,
		Action:  action,
		Details: details,
		Date:    time.Now(),
	}
	if err := db.Create(&activity).Error; err != nil {
		log.Printf("Error logging activity: %v", err)
	}
}
