package storage

import (
	"context"
	"sync"

	"github.com/vkarpenko/storefront/internal/cart"
	"github.com/vkarpenko/storefront/internal/favorites"
	"github.com/vkarpenko/storefront/internal/models"
)

// MemoryCartStore is a map-backed cart.Store for tests and single-node runs
// without Redis. Carts are copied on the way in and out so callers never
// alias stored state.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]cart.Cart)}
}

func (m *MemoryCartStore) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.carts[sessionID]
	if !ok {
		return nil, cart.ErrNotFound
	}
	c := stored
	c.Items = stored.Snapshot()
	if stored.ShippingAddress != nil {
		addr := *stored.ShippingAddress
		c.ShippingAddress = &addr
	}
	return &c, nil
}

func (m *MemoryCartStore) Save(_ context.Context, sessionID string, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *c
	stored.Items = c.Snapshot()
	if c.ShippingAddress != nil {
		addr := *c.ShippingAddress
		stored.ShippingAddress = &addr
	}
	m.carts[sessionID] = stored
	return nil
}

func (m *MemoryCartStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, sessionID)
	return nil
}

// MemoryFavoritesStore is the favorites counterpart of MemoryCartStore.
type MemoryFavoritesStore struct {
	mu    sync.RWMutex
	items map[string][]models.Product
}

func NewMemoryFavoritesStore() *MemoryFavoritesStore {
	return &MemoryFavoritesStore{items: make(map[string][]models.Product)}
}

func (m *MemoryFavoritesStore) Load(_ context.Context, sessionID string) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.items[sessionID]
	if !ok {
		return nil, favorites.ErrNotFound
	}
	out := make([]models.Product, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *MemoryFavoritesStore) Save(_ context.Context, sessionID string, items []models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]models.Product, len(items))
	copy(stored, items)
	m.items[sessionID] = stored
	return nil
}

func (m *MemoryFavoritesStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, sessionID)
	return nil
}
