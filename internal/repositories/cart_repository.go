package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/takeariz/storefront/internal/cart"
)

// CartRepository persists the session cart in Redis, one key per user, with a
// TTL so abandoned carts age out. The cart is single-owner, single-writer, so
// a plain read-modify-write cycle is safe.
type CartRepository interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*cart.State, error)
	SaveCart(ctx context.Context, userID uuid.UUID, state *cart.State) error
	DeleteCart(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepo(client *redis.Client, ttl time.Duration) CartRepository {
	return &cartRepository{client: client, ttl: ttl}
}

func cartKey(userID uuid.UUID) string {
	return "cart:" + userID.String()
}

// GetCart returns the stored cart, or a fresh empty one when none exists.
func (r *cartRepository) GetCart(ctx context.Context, userID uuid.UUID) (*cart.State, error) {

	data, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return cart.New(), nil
		}

		return nil, fmt.Errorf("failed to get cart from redis: %w", err)
	}

	state := cart.New()

	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return state, nil
}

func (r *cartRepository) SaveCart(ctx context.Context, userID uuid.UUID, state *cart.State) error {

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(userID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart in redis: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, userID uuid.UUID) error {

	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart from redis: %w", err)
	}

	return nil
}
