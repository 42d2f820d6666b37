package models

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is an immutable record of one completed quiz. The exam name
// carries an " (AI)" suffix for generated quizzes.
type Attempt struct {
	gorm.Model
	UserID         uint   `gorm:"index;not null"`
	Exam           string `gorm:"not null"`
	Score          int    `gorm:"not null"`
	TotalQuestions int    `gorm:"not null"`
	Responses      []AttemptResponse
	Date           time.Time `gorm:"index"`
}

// Percentage is the attempt score as a fraction of the total.
func (a *Attempt) Percentage() float64 {
	if a.TotalQuestions == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalQuestions)
}

type AttemptResponse struct {
	gorm.Model
	AttemptID      uint  `gorm:"index"`
	QuestionID     *uint // nil for AI-generated questions
	SelectedOption *int  // nil if skipped
	IsCorrect      bool
}
