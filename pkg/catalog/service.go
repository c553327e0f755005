package catalog

import (
	"context"

	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductStore interface {
	List(ctx context.Context, category models.Category) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
}

// Cache holds the full available menu.
type Cache interface {
	CacheProducts(ctx context.Context, products []models.Product) error
	CachedProducts(ctx context.Context) ([]models.Product, error)
}

type Service struct {
	store  ProductStore
	cache  Cache
	logger *zap.Logger
}

// NewService builds the menu service. cache may be nil.
func NewService(store ProductStore, cache Cache, logger *zap.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logger.Named("catalog")}
}

// List returns the available menu, optionally for one category. The full
// menu is served from the cache when possible.
func (s *Service) List(ctx context.Context, category models.Category) ([]models.Product, error) {
	products, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) all(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		if products, err := s.cache.CachedProducts(ctx); err == nil && len(products) > 0 {
			return products, nil
		}
	}

	products, err := s.store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheProducts(ctx, products); err != nil {
			s.logger.Warn("Failed to cache products", zap.Error(err))
		}
	}
	return products, nil
}

// SizedPrice is the unit price of a menu product at size. Pizzas scale with
// the size multiplier; desserts, drinks and combos keep their list price.
func SizedPrice(p *models.Product, size models.Size) decimal.Decimal {
	if !pricing.IsFlavor(*p) {
		return p.Price
	}
	return p.Price.Mul(pricing.Multiplier(size)).Round(2)
}
