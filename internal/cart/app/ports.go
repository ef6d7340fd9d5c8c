package app

import (
	"context"

	"github.com/gymkart/storefront/internal/cart/domain"
)

// Storage persists the cart between runs. Load must report a missing or
// unreadable saved cart as an empty cart, not as an error; only I/O failures
// surface.
type Storage interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}

// CatalogReader resolves current product data, used to refresh the stock
// ceilings captured in line snapshots.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID       string
	Name     string
	Amount   int64
	Stock    int32
	Category string
	ImageURL string
}
