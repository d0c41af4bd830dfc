package jobs

import (
	"time"

	"cabanas-backoffice/internal/config"
	"cabanas-backoffice/internal/events"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
	"cabanas-backoffice/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	reservations repository.ReservationRepository
	services     *Services
	publisher    events.Publisher
	config       *config.Config
	now          func() time.Time
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Alerts service.AlertService
	Email  service.EmailService
	Push   service.PushService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(reservations repository.ReservationRepository, services *Services, publisher events.Publisher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		reservations: reservations,
		services:     services,
		publisher:    publisher,
		config:       cfg,
		now:          time.Now,
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs every daily job (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.CompleteFinishedStays()
	jr.SendDailyDigest()
}
