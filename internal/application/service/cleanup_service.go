package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/shopmate/shopmate-api/internal/domain/repository"
)

// CleanupService purges expired short-lived records, currently password reset
// tokens and stored idempotent responses
type CleanupService struct {
	resetTokenRepo  repository.PasswordResetTokenRepository
	idempotencyRepo repository.IdempotencyRepository
	scheduler       *gocron.Scheduler
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(
	resetTokenRepo repository.PasswordResetTokenRepository,
	idempotencyRepo repository.IdempotencyRepository,
) *CleanupService {
	return &CleanupService{
		resetTokenRepo:  resetTokenRepo,
		idempotencyRepo: idempotencyRepo,
		scheduler:       gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the nightly purge in the background
func (s *CleanupService) Start() {
	if _, err := s.scheduler.Every(1).Day().At("03:00").Do(s.RunOnce); err != nil {
		logrus.WithError(err).Error("Failed to schedule cleanup job")
		return
	}
	s.scheduler.StartAsync()
	logrus.Info("Cleanup scheduler started")
}

// Stop stops the scheduler
func (s *CleanupService) Stop() {
	s.scheduler.Stop()
}

// RunOnce deletes expired records. Each table is purged independently so one
// failure does not block the other.
func (s *CleanupService) RunOnce() {
	ctx := context.Background()

	if err := s.resetTokenRepo.DeleteExpired(ctx); err != nil {
		logrus.WithError(err).Error("Failed to purge expired reset tokens")
	}
	if err := s.idempotencyRepo.DeleteExpired(ctx); err != nil {
		logrus.WithError(err).Error("Failed to purge expired idempotency keys")
	}
}
