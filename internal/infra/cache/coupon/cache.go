package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const keyPrefix = "coupon:"

// Cache кэш купонов в Redis для предпросмотра скидки
// Счетчики использований не кэшируются: они читаются из БД в транзакции
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш; nil client означает выключенный кэш
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает купон из кэша, (nil, nil) при промахе
func (c *Cache) Get(ctx context.Context, code string) (*domain.Coupon, error) {
	if c.client == nil {
		return nil, nil
	}

	val, err := c.client.Get(ctx, key(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get %s: %v", ErrCacheRead, code, err)
	}

	var cached cachedCoupon
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, fmt.Errorf("%w: Get %s: %v", ErrDecode, code, err)
	}

	return cached.toDomain(), nil
}

// Set кладет купон в кэш с TTL
func (c *Cache) Set(ctx context.Context, coupon *domain.Coupon) error {
	if c.client == nil || coupon == nil {
		return nil
	}

	data, err := json.Marshal(fromDomain(coupon))
	if err != nil {
		return fmt.Errorf("%w: Set %s - marshal: %v", ErrCacheWrite, coupon.Code, err)
	}

	if err := c.client.Set(ctx, key(coupon.Code), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set %s: %v", ErrCacheWrite, coupon.Code, err)
	}

	return nil
}

// Invalidate удаляет купон из кэша
func (c *Cache) Invalidate(ctx context.Context, code string) error {
	if c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, key(code)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate %s: %v", ErrCacheWrite, code, err)
	}

	return nil
}

func key(code string) string {
	return keyPrefix + code
}
