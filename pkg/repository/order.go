package repository

import (
	"context"
	"time"

	"github.com/example/pizzaria/pkg/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	return r.first(ctx, "order_number = ?", number)
}

// ListByPhone returns the customer's orders, newest first.
func (r *OrderRepository) ListByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus writes status to the order. When from is given the update
// only applies while the current status is one of them, and
// ErrStatusConflict is returned otherwise.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string, from ...string) (*models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id)
	if len(from) > 0 {
		query = query.Where("status IN ?", from)
	}

	result := query.Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return nil, result.Error
	}

	order, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 && order.Status != status {
		return order, ErrStatusConflict
	}
	return order, nil
}

func (r *OrderRepository) first(ctx context.Context, cond string, arg string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&order).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}
