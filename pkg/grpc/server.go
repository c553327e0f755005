// Package grpc exposes the storefront's gRPC health endpoint. Each
// dependency is reported as its own health service, and the empty service
// name is SERVING only while every dependency is.
package grpc

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type HealthServer struct {
	addr     string
	checks   map[string]Check
	interval time.Duration
	health   *health.Server
	server   *grpc.Server
	logger   *zap.Logger

	stopOnce sync.Once
	done     chan struct{}
}

func NewHealthServer(addr string, checks map[string]Check, interval time.Duration, logger *zap.Logger) *HealthServer {
	h := &HealthServer{
		addr:     addr,
		checks:   checks,
		interval: interval,
		health:   health.NewServer(),
		server:   grpc.NewServer(),
		logger:   logger.Named("grpc-health"),
		done:     make(chan struct{}),
	}
	healthpb.RegisterHealthServer(h.server, h.health)
	reflection.Register(h.server)
	return h
}

// Refresh runs every check once and publishes the results.
func (h *HealthServer) Refresh(ctx context.Context) bool {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	for _, name := range names {
		status := healthpb.HealthCheckResponse_SERVING
		if err := h.checks[name](ctx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			healthy = false
			h.logger.Warn("Dependency unhealthy", zap.String("dependency", name), zap.Error(err))
		}
		h.health.SetServingStatus(name, status)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus("", overall)
	return healthy
}

func (h *HealthServer) Start() error {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return h.Serve(lis)
}

// Serve refreshes once, again every interval, and serves until Stop.
func (h *HealthServer) Serve(lis net.Listener) error {
	h.Refresh(context.Background())
	if h.interval > 0 {
		go h.loop()
	}

	h.logger.Info("gRPC health server started", zap.String("address", lis.Addr().String()))
	return h.server.Serve(lis)
}

func (h *HealthServer) loop() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), h.interval)
			h.Refresh(ctx)
			cancel()
		}
	}
}

func (h *HealthServer) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.health.Shutdown()
		h.server.GracefulStop()
	})
}
