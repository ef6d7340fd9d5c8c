package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gymkart/storefront/internal/cart/domain"
	"golang.org/x/sync/errgroup"
)

// Store is the single source of truth for cart contents. State transitions
// are the pure reducers in the domain package; the store adds locking,
// subscriber notification and the persistence side effect on top.
type Store struct {
	mu      sync.Mutex
	cart    domain.Cart
	storage Storage
	log     *slog.Logger

	subMu   sync.Mutex
	subs    map[int]func(domain.Cart)
	nextSub int

	maxConcurrent int
}

func NewStore(storage Storage, maxConcurrent int) *Store {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Store{
		storage:       storage,
		log:           slog.Default(),
		subs:          make(map[int]func(domain.Cart)),
		maxConcurrent: maxConcurrent,
	}
}

// Load rehydrates the cart from storage. A missing or corrupt saved cart is
// an empty cart; only I/O failures are returned.
func (s *Store) Load(ctx context.Context) error {
	cart, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()

	s.notify(cart)
	return nil
}

// Get returns the current cart snapshot.
func (s *Store) Get() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *Store) ItemCount() int32 {
	return s.Get().ItemCount()
}

func (s *Store) Subtotal() int64 {
	return s.Get().Subtotal()
}

// Add puts the item in the cart, merging into an existing line for the same
// product. It reports whether an existing line was updated rather than a new
// one added, so callers can acknowledge the two cases differently.
func (s *Store) Add(ctx context.Context, item domain.LineItem) bool {
	s.mu.Lock()
	next, updated := domain.Add(s.cart, item)
	s.cart = next
	s.mu.Unlock()

	s.afterMutation(ctx, next)
	return updated
}

// Remove deletes the line for productID. Absent products are a no-op.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	next := domain.Remove(s.cart, productID)
	s.cart = next
	s.mu.Unlock()

	s.afterMutation(ctx, next)
}

// SetQuantity sets a line's quantity; zero or less removes the line. The
// store does not clamp to the stock ceiling, that belongs to the surface
// driving it.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int32) {
	s.mu.Lock()
	next := domain.SetQuantity(s.cart, productID, quantity)
	s.cart = next
	s.mu.Unlock()

	s.afterMutation(ctx, next)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	next := domain.Clear(s.cart)
	s.cart = next
	s.mu.Unlock()

	s.afterMutation(ctx, next)
}

// Subscribe registers fn to run after every state change, with the new
// snapshot. The returned func cancels the subscription.
func (s *Store) Subscribe(fn func(domain.Cart)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// RefreshSnapshots re-reads every cart line's product from the catalog and
// updates the captured stock ceiling and display data. Unit prices are left
// as captured at add time. Lines whose product is gone are kept unchanged.
func (s *Store) RefreshSnapshots(ctx context.Context, catalog CatalogReader) error {
	cart := s.Get()
	if len(cart.Items) == 0 {
		return nil
	}

	products := make([]*Product, len(cart.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range cart.Items {
		g.Go(func() error {
			p, err := catalog.GetProduct(gctx, cart.Items[idx].ProductID)
			if err != nil {
				s.log.Warn("snapshot refresh skipped",
					slog.String("product_id", cart.Items[idx].ProductID),
					slog.Any("err", err))
				return nil
			}
			products[idx] = &p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh snapshots: %w", err)
	}

	s.mu.Lock()
	items := make([]domain.LineItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	for idx, p := range products {
		if p == nil {
			continue
		}
		if i := indexOf(items, cart.Items[idx].ProductID); i >= 0 {
			items[i].Name = p.Name
			items[i].ImageURL = p.ImageURL
			items[i].Snapshot = domain.ProductSnapshot{
				Stock:    p.Stock,
				Category: p.Category,
				ImageURL: p.ImageURL,
			}
		}
	}
	next := domain.Cart{Items: items}
	s.cart = next
	s.mu.Unlock()

	s.afterMutation(ctx, next)
	return nil
}

func indexOf(items []domain.LineItem, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// afterMutation runs the persistence side effect and notifies subscribers.
// Persistence is fire-and-forget with respect to callers: a failed write is
// logged, never returned.
func (s *Store) afterMutation(ctx context.Context, cart domain.Cart) {
	if err := s.storage.Save(ctx, cart); err != nil {
		s.log.Error("cart save failed", slog.Any("err", err))
	}
	s.notify(cart)
}

func (s *Store) notify(cart domain.Cart) {
	s.subMu.Lock()
	fns := make([]func(domain.Cart), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(cart)
	}
}
