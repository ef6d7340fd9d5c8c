package storage

import (
	"context"
	"sync"

	"github.com/gymkart/storefront/internal/cart/domain"
)

// MemoryStore holds state for a single process lifetime. Used in tests and
// when no durable storage path is configured.
type MemoryStore struct {
	mu     sync.Mutex
	cart   domain.Cart
	saved  bool
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(ctx context.Context) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return domain.Cart{}, nil
	}
	return m.cart, nil
}

func (m *MemoryStore) Save(ctx context.Context, cart domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cart
	m.saved = true
	return nil
}

func (m *MemoryStore) GetValue(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) SetValue(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) DeleteValue(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
