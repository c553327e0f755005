package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/pizzaria/pkg/catalog"
	"github.com/example/pizzaria/pkg/config"
	"github.com/example/pizzaria/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrStatusConflict = errors.New("order status does not allow this transition")
)

// OpenDatabase connects to the configured SQL database.
func OpenDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	dsn := cfg.DSNFor()
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Seed inserts the menu and the welcome coupon. Rows that already exist are
// left alone.
func Seed(ctx context.Context, db *gorm.DB) error {
	products := make([]models.Product, len(catalog.Products))
	copy(products, catalog.Products)

	err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	welcome := models.Coupon{
		ID:           "00000000-0000-0000-0000-000000000001",
		Code:         "BEMVINDO10",
		Description:  "10% de desconto no primeiro pedido",
		Type:         models.CouponPercentage,
		Value:        decimal.NewFromInt(10),
		MinimumOrder: decimal.NewNullDecimal(decimal.NewFromInt(50)),
		Active:       true,
	}
	err = db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&welcome).Error
	if err != nil {
		return fmt.Errorf("failed to seed coupons: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
