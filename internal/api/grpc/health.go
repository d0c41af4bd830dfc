package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
)

// ServiceName is the health service name that checks can ask for besides ""
const ServiceName = "cabanas.backoffice"

// HealthChecker keeps the gRPC health status in line with database reachability
type HealthChecker struct {
	db       repository.Pinger
	health   *health.Server
	interval time.Duration
	timeout  time.Duration
}

func NewHealthChecker(db repository.Pinger, interval time.Duration) *HealthChecker {
	return &HealthChecker{
		db:       db,
		health:   health.NewServer(),
		interval: interval,
		timeout:  2 * time.Second,
	}
}

// NewServer returns a gRPC server exposing the health and reflection services
func (h *HealthChecker) NewServer() *grpc.Server {
	s := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor()))
	healthpb.RegisterHealthServer(s, h.health)
	// Register reflection service for grpcurl
	reflection.Register(s)
	return s
}

// Check pings the database once and publishes the result
func (h *HealthChecker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("Database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	return status
}

// Run re-checks on every tick until ctx is done, then marks the server as shutting down
func (h *HealthChecker) Run(ctx context.Context) {
	h.Check(ctx)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// LoggingInterceptor logs every unary call with its outcome
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	log := logger.WithService("grpc")
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			log.Warn("gRPC call failed", "method", info.FullMethod, "elapsed_ms", time.Since(start).Milliseconds(), "error", err)
		} else {
			log.Debug("gRPC call", "method", info.FullMethod, "elapsed_ms", time.Since(start).Milliseconds())
		}
		return resp, err
	}
}
