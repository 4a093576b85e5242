package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vkarpenko/storefront/internal/cart"
	"github.com/vkarpenko/storefront/internal/favorites"
	"github.com/vkarpenko/storefront/internal/models"
)

// RedisCartStore keeps one JSON blob per session under cart:<session>.
// TTL zero means the blob never expires.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (r *RedisCartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &c, nil
}

func (r *RedisCartStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// RedisFavoritesStore keeps one JSON array blob per session under
// favorites:<session>, independent of the cart blob.
type RedisFavoritesStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFavoritesStore(client *redis.Client, ttl time.Duration) *RedisFavoritesStore {
	return &RedisFavoritesStore{client: client, ttl: ttl}
}

func (r *RedisFavoritesStore) Load(ctx context.Context, sessionID string) ([]models.Product, error) {
	data, err := r.client.Get(ctx, favoritesKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, favorites.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []models.Product
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal favorites failed: %w", err)
	}
	return items, nil
}

func (r *RedisFavoritesStore) Save(ctx context.Context, sessionID string, items []models.Product) error {
	if items == nil {
		items = []models.Product{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal favorites failed: %w", err)
	}
	if err := r.client.Set(ctx, favoritesKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisFavoritesStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, favoritesKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func favoritesKey(sessionID string) string {
	return fmt.Sprintf("favorites:%s", sessionID)
}
