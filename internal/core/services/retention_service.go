package services

import (
	"context"
	"log"

	"kyc-identity/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// retentionSchedule runs the purge nightly, off-peak.
const retentionSchedule = "0 3 * * *"

// RetentionService hard-purges soft-deleted users once their retention
// window has passed. This is the only background work in the service.
type RetentionService struct {
	userRepo      repositories.UserRepository
	retentionDays int
	cron          *cron.Cron
}

// NewRetentionService creates a retention sweeper keeping soft-deleted rows
// for retentionDays before purging.
func NewRetentionService(userRepo repositories.UserRepository, retentionDays int) *RetentionService {
	return &RetentionService{
		userRepo:      userRepo,
		retentionDays: retentionDays,
		cron:          cron.New(),
	}
}

// Start schedules the nightly sweep.
func (s *RetentionService) Start() {
	s.cron.AddFunc(retentionSchedule, s.sweep)
	s.cron.Start()
	log.Printf("🚀 Retention sweep scheduled (%q, keep %d days)", retentionSchedule, s.retentionDays)
}

// Stop halts the scheduler. Does not interrupt a sweep already running.
func (s *RetentionService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Retention sweep stopped")
}

func (s *RetentionService) sweep() {
	purged, err := s.userRepo.PurgeDeletedBefore(context.Background(), s.retentionDays)
	if err != nil {
		log.Printf("❌ Retention sweep failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("🗑️ Retention sweep purged %d users", purged)
	}
}
