package scheduler

import (
	"github.com/robfig/cron/v3"

	"cabanas-backoffice/internal/jobs"
	"cabanas-backoffice/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Schedules are read in the business time zone, with seconds precision
	c := cron.New(
		cron.WithLocation(jobRunner.Config().Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Close stays whose check-out date has passed
	_, err := s.cron.AddFunc(cfg.CompleteFinishedStays, s.jobs.CompleteFinishedStays)
	if err != nil {
		logger.Error("Failed to register CompleteFinishedStays job", "error", err)
	}

	// Morning summary for the staff
	_, err = s.cron.AddFunc(cfg.SendDailyDigest, s.jobs.SendDailyDigest)
	if err != nil {
		logger.Error("Failed to register SendDailyDigest job", "error", err)
	}

	logger.Info("All cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
