package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity action tags.
const (
	ActionLogin         = "LOGIN"
	ActionRegister      = "REGISTER"
	ActionQuizStarted   = "QUIZ_STARTED"
	ActionQuizCompleted = "QUIZ_COMPLETED"
	ActionGameStarted   = "GAME_STARTED"
	ActionGameStep      = "GAME_STEP"
	ActionGameCompleted = "GAME_COMPLETED"
)

// Activity is an append-only event log entry.
type Activity struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null"`
	Action  string `gorm:"index;not null"`
	Details string
	Date    time.Time `gorm:"index"`
}
