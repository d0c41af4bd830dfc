package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "cabanas-backoffice/internal/api/grpc"
	httpapi "cabanas-backoffice/internal/api/http"
	"cabanas-backoffice/internal/booking"
	"cabanas-backoffice/internal/cache"
	"cabanas-backoffice/internal/config"
	"cabanas-backoffice/internal/events"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository/postgres"
	"cabanas-backoffice/internal/security"
	"cabanas-backoffice/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Secrets usually come from a local .env in development
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
	logger.Info("Starting Cabanas Back Office...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http_address", cfg.GetServerAddress(), "grpc_address", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Business configuration", "time_zone", cfg.Business.TimeZone, "currency", cfg.Business.Currency, "confirmed_payments_only", cfg.Business.ConfirmedPaymentsOnly)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	identity := security.NewContextIdentity()

	// Initialize integrations. Each one is optional and falls back to a no-op.
	publisher := newPublisher(cfg)
	defer publisher.Close()

	readCache := newCache(ctx, cfg)
	emailSvc := newEmailService(cfg)
	pushSvc := newPushService(ctx, cfg)

	policy := booking.SumAll
	if cfg.Business.ConfirmedPaymentsOnly {
		policy = booking.SumConfirmed
	}
	loc := cfg.Location()

	// Initialize Services
	cabinSvc := service.NewCabinService(store.CabinRepository, readCache)
	services := httpapi.Services{
		Reservations: service.NewReservationService(store.ReservationRepository, identity, publisher, readCache, loc),
		Payments: service.NewPaymentService(
			store.PaymentRepository,
			store.ReservationRepository,
			identity,
			publisher,
			readCache,
			cfg.Business.Currency,
			policy,
		),
		Messages: service.NewMessageService(
			store.MessageRepository,
			identity,
			emailSvc,
			pushSvc,
			publisher,
			readCache,
			cfg.Business.StaffEmail,
		),
		Cabins: cabinSvc,
		Alerts: service.NewAlertService(
			store.ReservationRepository,
			store.PaymentRepository,
			store.MessageRepository,
			service.AlertSettings{
				WindowDays: cfg.Business.AlertWindowDays,
				Epsilon:    cfg.Business.PendingBalanceEpsilon,
				Policy:     policy,
			},
			loc,
		),
		Dashboard: service.NewDashboardService(
			store.ReservationRepository,
			store.PaymentRepository,
			store.MessageRepository,
			cabinSvc,
			readCache,
			loc,
		),
	}

	// Set up gRPC health server
	healthChecker := grpcapi.NewHealthChecker(store.DB(), 15*time.Second)
	grpcServer := healthChecker.NewServer()
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
		log.Fatalf("Failed to listen: %v", err)
	}
	go healthChecker.Run(ctx)
	go func() {
		logger.Info("gRPC health server listening", "address", cfg.GetGRPCAddress())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("Failed to serve gRPC", "error", err)
		}
	}()

	// Set up HTTP API
	handler := httpapi.NewHandler(services, store.DB(), tokenManager)
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down servers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("Servers stopped. Goodbye!")
}

func newPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("Kafka brokers not configured, domain events disabled")
		return events.NewNoopPublisher()
	}
	publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
	if err != nil {
		logger.Error("Failed to connect to Kafka, domain events disabled", "error", err, "brokers", cfg.Kafka.Brokers)
		return events.NewNoopPublisher()
	}
	logger.Info("Publishing domain events to Kafka", "brokers", cfg.Kafka.Brokers, "topic_prefix", cfg.Kafka.TopicPrefix)
	return publisher
}

func newCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis not configured, read cache disabled")
		return cache.NewNoopCache()
	}
	c, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.CacheTTL())
	if err != nil {
		logger.Error("Failed to connect to Redis, read cache disabled", "error", err, "addr", cfg.Redis.Addr)
		return cache.NewNoopCache()
	}
	logger.Info("Read cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.CacheTTL())
	return c
}

func newEmailService(cfg *config.Config) service.EmailService {
	if cfg.SendGrid.APIKey == "" {
		logger.Info("SendGrid not configured, email disabled")
		return service.NewNoopEmailService()
	}
	return service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
}

func newPushService(ctx context.Context, cfg *config.Config) service.PushService {
	if cfg.Firebase.CredentialsFile == "" {
		logger.Info("Firebase not configured, push notifications disabled")
		return service.NewNoopPushService()
	}
	push, err := service.NewPushService(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.StaffTopic)
	if err != nil {
		logger.Error("Failed to initialize Firebase, push notifications disabled", "error", err)
		return service.NewNoopPushService()
	}
	return push
}
