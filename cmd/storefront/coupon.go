package main

import (
	"context"
	"fmt"
	"time"

	"github.com/example/pizzaria/pkg/coupon"
	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type couponOptions struct {
	kind        string
	value       string
	minimum     string
	maxUses     int
	expires     string
	description string
	inactive    bool
}

func (o *couponOptions) build(code string) (*models.Coupon, error) {
	value, err := decimal.NewFromString(o.value)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", o.value, err)
	}
	c, err := coupon.New(code, o.kind, value)
	if err != nil {
		return nil, err
	}
	c.Description = o.description
	c.Active = !o.inactive

	if o.minimum != "" {
		minimum, err := decimal.NewFromString(o.minimum)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum %q: %w", o.minimum, err)
		}
		c.MinimumOrder = decimal.NewNullDecimal(minimum)
	}
	if o.maxUses > 0 {
		limit := o.maxUses
		c.MaxUses = &limit
	}
	if o.expires != "" {
		at, err := time.Parse("2006-01-02", o.expires)
		if err != nil {
			return nil, fmt.Errorf("invalid expiry %q: %w", o.expires, err)
		}
		c.ExpiresAt = &at
	}
	return c, nil
}

func couponCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupon",
		Short: "Manage discount coupons",
	}
	cmd.AddCommand(couponAddCmd())
	return cmd
}

func couponAddCmd() *cobra.Command {
	opts := &couponOptions{}
	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Store a new coupon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.build(args[0])
			if err != nil {
				return err
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := repository.OpenDatabase(&cfg.Database)
			if err != nil {
				return err
			}
			if err := repository.NewCouponRepository(db).Create(context.Background(), c); err != nil {
				return fmt.Errorf("failed to create coupon: %w", err)
			}

			logger.Info("Coupon created",
				zap.String("code", c.Code),
				zap.String("type", c.Type),
				zap.String("value", c.Value.String()),
				zap.Bool("active", c.Active))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.kind, "type", models.CouponPercentage, "percentual or fixo")
	cmd.Flags().StringVar(&opts.value, "value", "", "percentage or fixed amount off")
	cmd.Flags().StringVar(&opts.minimum, "min", "", "minimum order subtotal")
	cmd.Flags().IntVar(&opts.maxUses, "max-uses", 0, "redemption limit, 0 for unlimited")
	cmd.Flags().StringVar(&opts.expires, "expires", "", "expiry date as YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.description, "description", "", "text shown to buyers")
	cmd.Flags().BoolVar(&opts.inactive, "inactive", false, "store the coupon switched off")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
