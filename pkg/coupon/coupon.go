// Package coupon validates discount codes against an order subtotal.
package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/pizzaria/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("coupon not found")
	ErrInactive     = errors.New("coupon is inactive")
	ErrExpired      = errors.New("coupon has expired")
	ErrExhausted    = errors.New("coupon usage limit reached")
	ErrBelowMinimum = errors.New("order subtotal below coupon minimum")
	ErrMalformed    = errors.New("malformed coupon")
)

// Validate returns the first rule c breaks for the given subtotal, or nil.
func Validate(c *models.Coupon, subtotal decimal.Decimal, now time.Time) error {
	if !c.Active {
		return ErrInactive
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return ErrExpired
	}
	if c.MaxUses != nil && c.Uses >= *c.MaxUses {
		return ErrExhausted
	}
	if c.MinimumOrder.Valid && subtotal.LessThan(c.MinimumOrder.Decimal) {
		return fmt.Errorf("%w: minimum is %s", ErrBelowMinimum, c.MinimumOrder.Decimal.StringFixed(2))
	}
	return nil
}

// Discount is the fixed value for "fixo" coupons and a percentage of the
// subtotal for everything else.
func Discount(c *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if c.Type == models.CouponFixed {
		return c.Value
	}
	return subtotal.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
}

// Normalize is the canonical form codes are stored and looked up in.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// New builds an active coupon ready to be stored. Percentages must lie in
// (0, 100]; fixed values must be positive.
func New(code, kind string, value decimal.Decimal) (*models.Coupon, error) {
	code = Normalize(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrMalformed)
	}
	switch kind {
	case models.CouponPercentage:
		if value.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: percentage above 100", ErrMalformed)
		}
	case models.CouponFixed:
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformed, kind)
	}
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: value must be positive", ErrMalformed)
	}
	return &models.Coupon{
		ID:     uuid.NewString(),
		Code:   code,
		Type:   kind,
		Value:  value,
		Active: true,
	}, nil
}

type Repository interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	IncrementUsage(ctx context.Context, code string) error
}

// Applied is a coupon that passed validation for a subtotal.
type Applied struct {
	Coupon   *models.Coupon  `json:"coupon"`
	Discount decimal.Decimal `json:"discount"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Apply looks the code up and validates it against subtotal. Lookups always
// go to the repository so usage counts are current.
func (s *Service) Apply(ctx context.Context, code string, subtotal decimal.Decimal) (*Applied, error) {
	code = Normalize(code)
	if code == "" {
		return nil, ErrNotFound
	}

	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := Validate(c, subtotal, s.now()); err != nil {
		return nil, err
	}
	return &Applied{Coupon: c, Discount: Discount(c, subtotal)}, nil
}

// Redeem counts one use of code. Called only once the order is stored.
func (s *Service) Redeem(ctx context.Context, code string) error {
	return s.repo.IncrementUsage(ctx, Normalize(code))
}
