// Package orders serves order lookups, staff status changes and customer
// cancellation.
package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/notify"
	"github.com/example/pizzaria/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	ErrCannotCancel = errors.New("cannot cancel: order already in progress")
	ErrEmptyStatus  = errors.New("status is required")
)

// cancellable lists the statuses a customer may still cancel from.
var cancellable = []string{models.StatusPending, models.StatusPreparing}

type Store interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string, from ...string) (*models.Order, error)
}

type Publisher interface {
	PublishStatus(ctx context.Context, event models.StatusEvent) error
}

type Notifier interface {
	Notify(payload interface{})
}

type AuditLogger interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
}

type Service struct {
	store     Store
	publisher Publisher
	notifier  Notifier
	audit     AuditLogger
	logger    *zap.Logger
}

// NewService wires the order service. publisher and audit may be nil.
func NewService(store Store, publisher Publisher, notifier Notifier, audit AuditLogger, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		notifier:  notifier,
		audit:     audit,
		logger:    logger.Named("orders"),
	}
}

func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	return s.store.GetByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
}

func (s *Service) ListByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	return s.store.ListByPhone(ctx, strings.TrimSpace(phone))
}

// UpdateStatus moves an order to status on behalf of staff or automation.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, ErrEmptyStatus
	}

	order, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", status))
	s.announce(ctx, order, repository.AuditStatusChanged)
	return order, nil
}

// Cancel is the customer-initiated cancellation, allowed only before the
// kitchen starts.
func (s *Service) Cancel(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.UpdateStatus(ctx, id, models.StatusCancelled, cancellable...)
	if errors.Is(err, repository.ErrStatusConflict) {
		return nil, ErrCannotCancel
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled by customer",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber))
	s.announce(ctx, order, repository.AuditOrderCancelled)
	return order, nil
}

// announce runs the best-effort side effects of a status change.
func (s *Service) announce(ctx context.Context, order *models.Order, action string) {
	now := time.Now()

	if s.publisher != nil {
		err := s.publisher.PublishStatus(ctx, models.StatusEvent{OrderID: order.ID, Status: order.Status, UpdatedAt: now})
		if err != nil {
			s.logger.Warn("Failed to publish status", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	if s.notifier != nil {
		s.notifier.Notify(notify.NewStatusChanged(order, now))
	}

	if s.audit != nil {
		err := s.audit.CreateAuditLog(ctx, &repository.AuditLog{
			Service:  "storefront",
			Action:   action,
			EntityID: order.ID,
			Data:     bson.M{"order_number": order.OrderNumber, "status": order.Status},
		})
		if err != nil {
			s.logger.Warn("Failed to write audit log", zap.String("order_id", order.ID), zap.Error(err))
		}
	}
}
