package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CouponPercentage = "percentual"
	CouponFixed      = "fixo"
)

type Coupon struct {
	ID           string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code         string              `gorm:"type:varchar(40);uniqueIndex;not null" json:"code"`
	Description  string              `gorm:"type:varchar(255)" json:"description"`
	Type         string              `gorm:"type:varchar(20);not null" json:"type"`
	Value        decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"value"`
	MinimumOrder decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"minimum_order"`
	MaxUses      *int                `json:"max_uses"`
	Uses         int                 `gorm:"default:0;not null" json:"uses"`
	ExpiresAt    *time.Time          `json:"expires_at"`
	Active       bool                `gorm:"not null" json:"active"`
	CreatedAt    time.Time           `json:"created_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}
