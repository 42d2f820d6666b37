package models

import "gorm.io/gorm"

// Chat holds a user's tutor conversation. Storage keeps the last
// MaxChatMessages entries; only the last ChatHistoryWindow are replayed
// to the provider per turn.
const (
	MaxChatMessages   = 50
	ChatHistoryWindow = 10
)

type Chat struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex;not null"`
	Messages []ChatMessage
}

type ChatMessage struct {
	gorm.Model
	ChatID   uint   `gorm:"index"`
	Role     string `gorm:"not null"` // user, assistant
	Content  string `gorm:"not null"`
	ImageURL string
}
