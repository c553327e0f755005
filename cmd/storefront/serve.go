package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/pizzaria/gateway"
	"github.com/example/pizzaria/pkg/account"
	"github.com/example/pizzaria/pkg/cart"
	"github.com/example/pizzaria/pkg/catalog"
	"github.com/example/pizzaria/pkg/cep"
	"github.com/example/pizzaria/pkg/checkout"
	"github.com/example/pizzaria/pkg/config"
	"github.com/example/pizzaria/pkg/coupon"
	"github.com/example/pizzaria/pkg/discovery"
	"github.com/example/pizzaria/pkg/grpc"
	"github.com/example/pizzaria/pkg/notify"
	"github.com/example/pizzaria/pkg/orders"
	"github.com/example/pizzaria/pkg/repository"
	"github.com/example/pizzaria/pkg/tracking"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	healthInterval  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(cfg, logger)
		},
	}
}

func serve(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting storefront",
		zap.String("name", cfg.Server.Name),
		zap.String("gateway", cfg.GatewayAddr()),
		zap.String("grpc", cfg.Server.GRPCAddr()))

	db, err := repository.OpenDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	if err := repository.Migrate(db); err != nil {
		return err
	}

	ctx := context.Background()

	redis := repository.NewRedisRepository(&cfg.Redis)
	defer redis.Close()
	if err := redis.Ping(ctx); err != nil {
		logger.Warn("Redis connection failed", zap.Error(err))
	} else {
		logger.Info("Redis connected successfully")
	}

	var mongo *repository.MongoRepository
	if cfg.MongoDB.Enabled {
		mongo, err = repository.NewMongoRepository(&cfg.MongoDB)
		if err != nil {
			logger.Warn("MongoDB unavailable, audit log disabled", zap.Error(err))
		} else {
			defer mongo.Close(context.Background())
		}
	}

	notifier := notify.Disabled()
	if cfg.Webhook.Enabled && cfg.Webhook.URL != "" {
		notifier, err = notify.NewNotifier(notify.NewWebhookClient(cfg.Webhook.URL, cfg.Webhook.Timeout), cfg.Webhook.Timeout, logger)
		if err != nil {
			return err
		}
	} else {
		logger.Info("Order webhook disabled")
	}
	defer notifier.Stop()

	services, err := buildServices(cfg, logger, db, redis, mongo, notifier)
	if err != nil {
		return err
	}
	gw := gateway.NewGateway(cfg, logger, services)

	health := grpc.NewHealthServer(cfg.Server.GRPCAddr(), map[string]grpc.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": redis.Ping,
	}, healthInterval, logger)

	errCh := make(chan error, 2)
	go func() {
		if err := gw.Start(); err != nil {
			errCh <- fmt.Errorf("gateway: %w", err)
		}
	}()
	go func() {
		if err := health.Start(); err != nil {
			errCh <- fmt.Errorf("grpc health: %w", err)
		}
	}()

	sd, instance := register(ctx, cfg, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case runErr = <-errCh:
		logger.Error("Server error", zap.Error(runErr))
	}

	if sd != nil {
		if err := sd.Deregister(ctx, instance); err != nil {
			logger.Error("Failed to deregister service", zap.Error(err))
		}
		sd.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := gw.Shutdown(shutdownCtx); err != nil {
		logger.Error("Gateway shutdown failed", zap.Error(err))
	}
	health.Stop()

	logger.Info("Storefront stopped")
	return runErr
}

func buildServices(cfg *config.Config, logger *zap.Logger, db *gorm.DB, redis *repository.RedisRepository, mongo *repository.MongoRepository, notifier *notify.Notifier) (gateway.Services, error) {
	orderRepo := repository.NewOrderRepository(db)

	deps := checkout.Deps{
		Orders:   orderRepo,
		Coupons:  coupon.NewService(repository.NewCouponRepository(db)),
		Sequence: redis,
		Notifier: notifier,
	}
	// A nil *MongoRepository must not reach the interfaces.
	var orderAudit orders.AuditLogger
	if mongo != nil {
		deps.Audit = mongo
		orderAudit = mongo
	}

	checkoutSvc, err := checkout.NewService(deps, &cfg.Checkout, logger)
	if err != nil {
		return gateway.Services{}, err
	}

	services := gateway.Services{
		Carts:     cart.NewRegistry(),
		Catalog:   catalog.NewService(repository.NewProductRepository(db), redis, logger),
		Checkout:  checkoutSvc,
		Orders:    orders.NewService(orderRepo, redis, notifier, orderAudit, logger),
		Tracking:  tracking.NewProjector(redis),
		CEP:       cep.NewClient(cfg.CEP.BaseURL, cfg.CEP.Timeout, redis, cfg.Redis.CEPTTL, logger),
		Favorites: account.NewFavorites(repository.NewFavoriteRepository(db)),
		Addresses: account.NewAddresses(repository.NewAddressRepository(db)),
		TimeClock: account.NewTimeClock(repository.NewTimeClockRepository(db)),
	}
	if mongo != nil {
		services.History = mongo
	}
	return services, nil
}

// register announces the gRPC health endpoint in etcd when enabled. Failures
// are logged and the storefront keeps running unregistered.
func register(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*discovery.ServiceDiscovery, *discovery.ServiceInstance) {
	if !cfg.Etcd.Enabled {
		return nil, nil
	}

	sd, err := discovery.NewServiceDiscovery(&cfg.Etcd, logger)
	if err != nil {
		logger.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		return nil, nil
	}

	instance := &discovery.ServiceInstance{
		Name: cfg.Server.Name,
		Host: cfg.Server.Host,
		Port: cfg.Server.GRPCPort,
	}
	if err := sd.Register(ctx, instance); err != nil {
		logger.Warn("Failed to register service", zap.Error(err))
		sd.Close()
		return nil, nil
	}

	logger.Info("Service registered in etcd",
		zap.String("name", instance.Name),
		zap.String("address", instance.Addr()))
	return sd, instance
}
