package main

import (
	"context"
	"fmt"

	"github.com/example/pizzaria/pkg/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := repository.OpenDatabase(&cfg.Database)
			if err != nil {
				return err
			}
			if err := repository.Migrate(db); err != nil {
				return err
			}
			logger.Info("Schema migrated", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate, then load the menu and the welcome coupon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := repository.OpenDatabase(&cfg.Database)
			if err != nil {
				return err
			}
			if err := repository.Migrate(db); err != nil {
				return err
			}
			if err := repository.Seed(context.Background(), db); err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}

			redis := repository.NewRedisRepository(&cfg.Redis)
			defer redis.Close()
			if err := redis.InvalidateProducts(context.Background()); err != nil {
				logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
			}

			logger.Info("Database seeded")
			return nil
		},
	}
}
