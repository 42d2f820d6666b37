package scheduler

import (
	"log"
	"time"

	"medicgrow/backend/config"
	"medicgrow/backend/models"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
	cfg       *config.Config
	logger    *log.Logger
}

func New(db *gorm.DB, cfg *config.Config, logger *log.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the jobs and runs them in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("03:00").Do(s.pruneActivities)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// pruneActivities removes activity records older than the retention
// window so the feed table does not grow without bound.
func (s *Scheduler) pruneActivities() {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.ActivityRetentionDays)
	result := s.db.Where("date < ?", cutoff).Delete(&models.Activity{})
	if result.Error != nil {
		s.logger.Printf("Error pruning activities: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		s.logger.Printf("Pruned %d activity records older than %s", result.RowsAffected, cutoff.Format("2006-01-02"))
	}
}
