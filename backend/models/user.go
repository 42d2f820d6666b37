package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:student"` // student, admin

	// Preloaded in primary-key order, which is earn order.
	Achievements []Achievement

	LastLogin   *time.Time
	LoginStreak int    `gorm:"default:0"`
	Title       string `gorm:"default:Medical Aspirant"`

	ChatbotUsageCount     int `gorm:"default:0"`
	StoryGamesCompleted   int `gorm:"default:0"`
	SuccessfulSimulations int `gorm:"default:0"`
	FailedSimulations     int `gorm:"default:0"`
	CriticalSimsResolved  int `gorm:"default:0"`
}

// Achievement is one earned badge. Immutable once created; a title
// appears at most once per user.
type Achievement struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Icon        string
	EarnedAt    time.Time
}
