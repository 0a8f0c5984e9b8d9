package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

const cartKeyPrefix = "cart:"

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed session store. Carts expire with the
// session TTL; every save refreshes it.
func NewRedis(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

func (r *redisRepo) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{}, nil
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return cart, nil
}

func (r *redisRepo) SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKeyPrefix+sessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (r *redisRepo) DeleteCart(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}
