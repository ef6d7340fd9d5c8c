package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gymkart/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Service is a read-through product cache over the backend catalog. Product
// pages and add-to-cart hit the same products within a session, so reads are
// served from a short-lived cache to keep the UI snappy.
type Service struct {
	reader ProductReader
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	product domain.Product
	expires time.Time
}

func NewService(reader ProductReader, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Service{
		reader: reader,
		ttl:    ttl,
		cache:  make(map[string]cached),
	}
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}

	s.mu.Lock()
	if c, ok := s.cache[id]; ok && time.Now().Before(c.expires) {
		s.mu.Unlock()
		return c.product, nil
	}
	s.mu.Unlock()

	p, err := s.reader.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	s.cache[id] = cached{product: p, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.reader.List(ctx, query, limit)
}
