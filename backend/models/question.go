package models

import "gorm.io/gorm"

type Question struct {
	gorm.Model
	Exam        string `gorm:"index;not null"` // e.g. ESIC, NORCET
	Topic       string `gorm:"index;not null"`
	Question    string `gorm:"not null"`
	QuestionKey string
	Options     string `gorm:"not null"` // JSON array of options
	Correct     int    `gorm:"not null"` // index of the correct option
	Explanation string `gorm:"not null"`
}
