// Package checkout turns a session cart into a stored order.
//
// The order of side effects is fixed: the order row is written first, the
// coupon redemption is counted only after that insert succeeds, and the
// webhook notification is queued only after both. Nothing after the insert
// can fail the checkout.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/pizzaria/pkg/cart"
	"github.com/example/pizzaria/pkg/config"
	"github.com/example/pizzaria/pkg/coupon"
	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/notify"
	"github.com/example/pizzaria/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError names the first required field that was left empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

type Request struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	CEP           string  `json:"cep"`
	State         string  `json:"state"`
	Neighborhood  string  `json:"neighborhood"`
	Street        string  `json:"street"`
	Number        string  `json:"number"`
	Complement    string  `json:"complement"`
	PaymentMethod string  `json:"payment_method"`
	CouponCode    string  `json:"coupon_code"`
	UserID        *string `json:"user_id,omitempty"`
}

func (r *Request) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"phone", r.Phone},
		{"cep", r.CEP},
		{"state", r.State},
		{"neighborhood", r.Neighborhood},
		{"street", r.Street},
		{"number", r.Number},
		{"payment_method", r.PaymentMethod},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field}
		}
	}
	return nil
}

type Cart interface {
	Items() []cart.Item
	Total() decimal.Decimal
	Subtract(items []cart.Item)
}

type Coupons interface {
	Apply(ctx context.Context, code string, subtotal decimal.Decimal) (*coupon.Applied, error)
	Redeem(ctx context.Context, code string) error
}

type Sequence interface {
	NextOrderNumber(ctx context.Context, prefix string) (string, error)
}

type OrderWriter interface {
	Create(ctx context.Context, order *models.Order) error
}

type Notifier interface {
	Notify(payload interface{})
}

type AuditLogger interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
}

// Deps are the collaborators of a Service. Audit is optional.
type Deps struct {
	Orders   OrderWriter
	Coupons  Coupons
	Sequence Sequence
	Notifier Notifier
	Audit    AuditLogger
}

type Result struct {
	Order        *models.Order `json:"order"`
	TrackingPath string        `json:"tracking_path"`
	HandoffURL   string        `json:"handoff_url"`
}

type Service struct {
	deps        Deps
	deliveryFee decimal.Decimal
	prefix      string
	handoff     Handoff
	logger      *zap.Logger
}

func NewService(deps Deps, cfg *config.CheckoutConfig, logger *zap.Logger) (*Service, error) {
	fee, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("invalid delivery fee %q: %w", cfg.DeliveryFee, err)
	}
	return &Service{
		deps:        deps,
		deliveryFee: fee,
		prefix:      cfg.OrderNumberPrefix,
		handoff:     Handoff{StoreName: cfg.StoreName, WhatsAppNumber: cfg.WhatsAppNumber},
		logger:      logger.Named("checkout"),
	}, nil
}

func (s *Service) DeliveryFee() decimal.Decimal {
	return s.deliveryFee
}

// Quote is what the buyer would pay for the cart with an optional coupon,
// without storing anything.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    decimal.Decimal `json:"discount"`
	CouponCode  *string         `json:"coupon_code,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

func (s *Service) Quote(ctx context.Context, c Cart, couponCode string) (*Quote, error) {
	return s.quote(ctx, c.Total(), couponCode)
}

func (s *Service) quote(ctx context.Context, subtotal decimal.Decimal, couponCode string) (*Quote, error) {
	q := &Quote{
		Subtotal:    subtotal,
		DeliveryFee: s.deliveryFee,
		Discount:    decimal.Zero,
	}

	if strings.TrimSpace(couponCode) != "" {
		applied, err := s.deps.Coupons.Apply(ctx, couponCode, q.Subtotal)
		if err != nil {
			return nil, err
		}
		q.Discount = applied.Discount
		q.CouponCode = &applied.Coupon.Code
	}

	q.Total = q.Subtotal.Add(q.DeliveryFee).Sub(q.Discount)
	if q.Total.IsNegative() {
		q.Total = decimal.Zero
	}
	return q, nil
}

func (s *Service) Checkout(ctx context.Context, c Cart, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Everything is priced from the same snapshot that becomes the order lines.
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	quote, err := s.quote(ctx, subtotal, req.CouponCode)
	if err != nil {
		return nil, err
	}

	number, err := s.deps.Sequence.NextOrderNumber(ctx, s.prefix)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		ID:            uuid.NewString(),
		OrderNumber:   number,
		UserID:        req.UserID,
		CustomerName:  strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		CEP:           strings.TrimSpace(req.CEP),
		State:         strings.TrimSpace(req.State),
		Neighborhood:  strings.TrimSpace(req.Neighborhood),
		Street:        strings.TrimSpace(req.Street),
		Number:        strings.TrimSpace(req.Number),
		Complement:    strings.TrimSpace(req.Complement),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Items:         snapshot(items),
		Subtotal:      quote.Subtotal,
		DeliveryFee:   quote.DeliveryFee,
		Discount:      quote.Discount,
		CouponCode:    quote.CouponCode,
		Total:         quote.Total,
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.deps.Orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", zap.String("order_number", number), zap.Error(err))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if order.CouponCode != nil {
		if err := s.deps.Coupons.Redeem(ctx, *order.CouponCode); err != nil {
			s.logger.Warn("Failed to count coupon usage",
				zap.String("order_number", number),
				zap.String("coupon", *order.CouponCode),
				zap.Error(err))
		}
	}

	if s.deps.Notifier != nil {
		s.deps.Notifier.Notify(notify.NewOrderCreated(order))
	}

	if s.deps.Audit != nil {
		err := s.deps.Audit.CreateAuditLog(ctx, &repository.AuditLog{
			Service:  "storefront",
			Action:   repository.AuditOrderCreated,
			EntityID: order.ID,
			Data: bson.M{
				"order_number": order.OrderNumber,
				"phone":        order.Phone,
				"total":        order.Total.String(),
			},
		})
		if err != nil {
			s.logger.Warn("Failed to write audit log", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	c.Subtract(items)

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.StringFixed(2)))

	return &Result{
		Order:        order,
		TrackingPath: TrackingPath(order.OrderNumber),
		HandoffURL:   s.handoff.URL(order),
	}, nil
}

func TrackingPath(orderNumber string) string {
	return "/order-tracking/" + orderNumber
}

func snapshot(items []cart.Item) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	for i, it := range items {
		out[i] = models.OrderItem{
			ProductID:    it.ProductID,
			Name:         it.Name,
			Size:         it.Size,
			Quantity:     it.Quantity,
			UnitPrice:    it.Price,
			Observations: it.Observations,
			Extras:       it.Extras,
		}
	}
	return out
}
