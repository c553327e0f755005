package repository

import (
	"context"
	"errors"

	"github.com/example/pizzaria/pkg/coupon"
	"github.com/example/pizzaria/pkg/models"
	"gorm.io/gorm"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// IncrementUsage counts one redemption in a single UPDATE so concurrent
// checkouts do not lose increments.
func (r *CouponRepository) IncrementUsage(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ?", code).
		UpdateColumn("uses", gorm.Expr("uses + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return coupon.ErrNotFound
	}
	return nil
}

func (r *CouponRepository) Create(ctx context.Context, c *models.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}
