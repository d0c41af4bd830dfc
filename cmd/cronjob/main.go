package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cabanas-backoffice/internal/booking"
	"cabanas-backoffice/internal/config"
	"cabanas-backoffice/internal/events"
	"cabanas-backoffice/internal/jobs"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository/postgres"
	"cabanas-backoffice/internal/scheduler"
	"cabanas-backoffice/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'complete-finished-stays', 'send-daily-digest', 'all-daily')")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Cabanas Cronjob Runner...", "log_level", cfg.Log.Level, "time_zone", cfg.Business.TimeZone)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	var publisher events.Publisher = events.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		if p, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix); err != nil {
			logger.Error("Failed to connect to Kafka, domain events disabled", "error", err)
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	var emailService service.EmailService = service.NewNoopEmailService()
	if cfg.SendGrid.APIKey != "" {
		emailService = service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	var pushService service.PushService = service.NewNoopPushService()
	if cfg.Firebase.CredentialsFile != "" {
		if p, err := service.NewPushService(context.Background(), cfg.Firebase.CredentialsFile, cfg.Firebase.StaffTopic); err != nil {
			logger.Error("Failed to initialize Firebase, push notifications disabled", "error", err)
		} else {
			pushService = p
		}
	}

	policy := booking.SumAll
	if cfg.Business.ConfirmedPaymentsOnly {
		policy = booking.SumConfirmed
	}

	alertService := service.NewAlertService(
		store.ReservationRepository,
		store.PaymentRepository,
		store.MessageRepository,
		service.AlertSettings{
			WindowDays: cfg.Business.AlertWindowDays,
			Epsilon:    cfg.Business.PendingBalanceEpsilon,
			Policy:     policy,
		},
		cfg.Location(),
	)

	jobServices := &jobs.Services{
		Alerts: alertService,
		Email:  emailService,
		Push:   pushService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.ReservationRepository, jobServices, publisher, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "complete-finished-stays":
		jobRunner.CompleteFinishedStays()
	case "send-daily-digest":
		jobRunner.SendDailyDigest()
	case "all-daily":
		jobRunner.RunAllDailyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - complete-finished-stays\n")
		fmt.Printf("  - send-daily-digest\n")
		fmt.Printf("  - all-daily\n")
		os.Exit(1)
	}
}
