package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/example/pizzaria/pkg/config"
	"github.com/example/pizzaria/pkg/models"
	"github.com/go-redis/redis/v8"
)

const (
	orderSequenceKey = "orders:sequence"
	catalogKey       = "catalog:products"
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

// GetJSON decodes the value at key into dest. A missing key yields redis.Nil.
func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// NextOrderNumber draws the next value of the shared order sequence and
// formats it as prefix plus five digits, e.g. IZI00042.
func (r *RedisRepository) NextOrderNumber(ctx context.Context, prefix string) (string, error) {
	n, err := r.client.Incr(ctx, orderSequenceKey).Result()
	if err != nil {
		return "", fmt.Errorf("failed to draw order number: %w", err)
	}
	return FormatOrderNumber(prefix, n), nil
}

func FormatOrderNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s%05d", prefix, n)
}

func StatusChannel(orderID string) string {
	return "orders:status:" + orderID
}

func (r *RedisRepository) PublishStatus(ctx context.Context, event models.StatusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, StatusChannel(event.OrderID), data).Err()
}

// SubscribeStatus streams the status events published for one order until
// ctx ends or the returned cancel func is called.
func (r *RedisRepository) SubscribeStatus(ctx context.Context, orderID string) (<-chan models.StatusEvent, func(), error) {
	pubsub := r.client.Subscribe(ctx, StatusChannel(orderID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to order %s: %w", orderID, err)
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() { pubsub.Close() })
	}

	out := make(chan models.StatusEvent)
	go func() {
		defer close(out)
		defer cancel()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event models.StatusEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, cancel, nil
}

func (r *RedisRepository) CacheProducts(ctx context.Context, products []models.Product) error {
	return r.SetJSON(ctx, catalogKey, products, r.config.CatalogTTL)
}

func (r *RedisRepository) CachedProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.GetJSON(ctx, catalogKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RedisRepository) InvalidateProducts(ctx context.Context) error {
	return r.Del(ctx, catalogKey)
}
